package browserimpl

// LinkedIn composer selectors.
// They are isolated here because LinkedIn changes their DOM without notice;
// when a run fails with an ElementNotFoundError naming one of these chains,
// update the chain, not the state machine.
//
// Each chain is ordered most-stable-first. Icon markers (data-test-icon)
// have survived more UI revisions than aria-labels or generated class names.

var startPostStrategies = []Strategy{
	// The feed's "Start a post" control carries no machine-readable
	// attribute at all; text content is the only reliable hook.
	{Name: "start-post-text", Selector: "button.artdeco-button", Text: "Start a post"},
}

var addMediaStrategies = []Strategy{
	{Name: "add-media-label", Selector: `button[aria-label="Add media"]`},
	{Name: "image-icon", Selector: `svg[data-test-icon="image-medium"]`, Closest: "button"},
}

var moreOptionsStrategies = []Strategy{
	{Name: "more-label", Selector: `button[aria-label="More"]`},
	{Name: "add-icon", Selector: `svg[data-test-icon="add-medium"]`, Closest: "button"},
}

var addDocumentStrategies = []Strategy{
	{Name: "add-document-label", Selector: `button[aria-label="Add a document"]`},
	{Name: "sticky-note-icon", Selector: `svg[data-test-icon="sticky-note-medium"]`, Closest: "button"},
}

var fileInputStrategies = []Strategy{
	{Name: "file-input", Selector: `input[type="file"]`},
	{Name: "file-input-image", Selector: `input[accept*="image"]`},
	{Name: "file-input-pdf", Selector: `input[accept*="pdf"]`},
}

var captionEditorStrategies = []Strategy{
	{Name: "ql-editor", Selector: `div.ql-editor[contenteditable="true"]`},
	{Name: "editor-placeholder", Selector: `div[data-placeholder*="What do you want to talk about"]`},
	{Name: "ql-editor-any", Selector: "div.ql-editor"},
}

var nextButtonStrategies = []Strategy{
	{Name: "next-label", Selector: `button[aria-label="Next"]`},
	{Name: "footer-primary", Selector: "button.share-box-footer__primary-btn"},
	{Name: "next-text", Selector: "button.artdeco-button--primary", Text: "Next"},
}

var scheduleToggleStrategies = []Strategy{
	{Name: "schedule-label", Selector: `button[aria-label="Schedule post"]`},
	{Name: "schedule-class", Selector: "button.share-actions__scheduled-post-btn"},
	{Name: "clock-icon", Selector: `svg[data-test-icon="clock-medium"]`, Closest: "button"},
}

var dateInputStrategies = []Strategy{
	{Name: "date-id", Selector: "input#share-post__scheduled-date"},
	{Name: "date-name", Selector: `input[name="artdeco-date"]`},
	{Name: "date-placeholder", Selector: `input[placeholder="mm/dd/yyyy"]`},
}

var timeInputStrategies = []Strategy{
	{Name: "time-id", Selector: "input#share-post__scheduled-time"},
	{Name: "time-name", Selector: `input[name="timepicker"]`},
	{Name: "time-label", Selector: `input.artdeco-typeahead__input[aria-label="Time"]`},
}

var confirmScheduleStrategies = []Strategy{
	{Name: "primary-action", Selector: "button.share-actions__primary-action"},
	{Name: "schedule-text", Selector: "button.artdeco-button--primary", Text: "Schedule"},
}
