package browserimpl

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
	"github.com/content-composer/linkedin-autopilot/internal/browser"
	"github.com/content-composer/linkedin-autopilot/internal/domain"
	"github.com/content-composer/linkedin-autopilot/pkg/formatter"
)

// Automation states, in execution order. A failing state aborts the run and
// is named in the resulting StateError so a stale selector chain can be
// traced without reading this file.
const (
	stateOpenComposer  = "OpenComposer"
	stateAttachMedia   = "AttachMedia"
	stateFillCaption   = "FillCaption"
	stateOpenScheduler = "OpenScheduler"
	stateSetDateTime   = "SetDateTime"
	stateConfirm       = "Confirm"
)

// SchedulePost runs the composer choreography for one post: open the
// composer, optionally attach media, fill the caption, open the schedule
// dialog, set date and time, confirm. States run strictly in order, each
// followed by its settle delay; there is no retry and no rollback.
func (c *ChromeImpl) SchedulePost(ctx context.Context, post domain.Post, scheduledDate time.Time, attachment *domain.BinaryAsset) error {
	d := c.cfg.Automation
	c.logger.Info("Starting composer run",
		"post_id", post.ID,
		"scheduled_date", scheduledDate.Format(time.RFC3339),
		"has_attachment", attachment != nil,
	)

	type step struct {
		state  string
		settle time.Duration
		fn     func(context.Context) error
	}

	steps := []step{
		{stateOpenComposer, d.ComposerSettle, c.openComposer},
	}
	if attachment != nil {
		steps = append(steps, step{stateAttachMedia, d.DialogSettle, func(ctx context.Context) error {
			return c.attachMedia(ctx, attachment)
		}})
	}
	steps = append(steps,
		step{stateFillCaption, d.CaptionSettle, func(ctx context.Context) error {
			return c.fillCaption(ctx, post.Caption)
		}},
		step{stateOpenScheduler, d.SchedulerSettle, c.openScheduler},
		step{stateSetDateTime, d.FieldSettle, func(ctx context.Context) error {
			return c.setDateTime(ctx, scheduledDate)
		}},
		step{stateConfirm, d.ConfirmSettle, c.confirm},
	)

	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			return &browser.StateError{State: s.state, Err: err}
		}
		if err := c.sleep(ctx, s.settle); err != nil {
			return &browser.StateError{State: s.state, Err: err}
		}
		c.logger.Debug("State complete", "state", s.state)
	}

	c.logger.Info("Composer run complete", "post_id", post.ID)
	return nil
}

func (c *ChromeImpl) openComposer(ctx context.Context) error {
	m, err := c.find(ctx, startPostStrategies)
	if err != nil {
		return err
	}
	return c.click(ctx, m)
}

func (c *ChromeImpl) attachMedia(ctx context.Context, a *domain.BinaryAsset) error {
	switch classifyAttachment(a.MimeType) {
	case attachmentImage:
		m, err := c.find(ctx, addMediaStrategies)
		if err != nil {
			return err
		}
		if err := c.click(ctx, m); err != nil {
			return err
		}
	case attachmentDocument:
		// Documents hide behind the overflow menu.
		more, err := c.find(ctx, moreOptionsStrategies)
		if err != nil {
			return err
		}
		if err := c.click(ctx, more); err != nil {
			return err
		}
		if err := c.sleep(ctx, c.cfg.Automation.MenuSettle); err != nil {
			return err
		}
		doc, err := c.find(ctx, addDocumentStrategies)
		if err != nil {
			return err
		}
		if err := c.click(ctx, doc); err != nil {
			return err
		}
	default:
		return &browser.UnsupportedAttachmentError{MimeType: a.MimeType}
	}

	if err := c.sleep(ctx, c.cfg.Automation.MenuSettle); err != nil {
		return err
	}

	input, err := c.find(ctx, fileInputStrategies)
	if err != nil {
		return err
	}
	if err := c.setFileInput(ctx, input, a); err != nil {
		return err
	}

	// Let LinkedIn's own upload/preview pipeline settle before moving on.
	if err := c.sleep(ctx, c.cfg.Automation.UploadSettle); err != nil {
		return err
	}

	// Some upload flows insert a "Next" interstitial before returning to the
	// editor. Its absence is not an error.
	next, err := c.find(ctx, nextButtonStrategies)
	if err != nil {
		var notFound *browser.ElementNotFoundError
		if errors.As(err, &notFound) {
			c.logger.Debug("No upload interstitial, continuing")
			return nil
		}
		return err
	}
	return c.click(ctx, next)
}

// setFileInput assigns the materialized asset to the page's file input and
// dispatches the change event the upload pipeline listens for.
func (c *ChromeImpl) setFileInput(ctx context.Context, input Match, a *domain.BinaryAsset) error {
	path, err := materialize(a)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	err = c.run(ctx, evalTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
		var nodes []*cdp.Node
		if err := chromedp.Nodes(input.Selector, &nodes, chromedp.ByQuery).Do(ctx); err != nil {
			return err
		}
		return dom.SetFileInputFiles([]string{path}).WithNodeID(nodes[0].NodeID).Do(ctx)
	}))
	if err != nil {
		return err
	}
	return c.eval(ctx, dispatchChangeScript(input.Selector), "dispatch file change")
}

func (c *ChromeImpl) fillCaption(ctx context.Context, caption string) error {
	m, err := c.find(ctx, captionEditorStrategies)
	if err != nil {
		return err
	}
	return c.eval(ctx, fillEditorScript(m.Selector, captionLines(caption)), "fill caption")
}

func (c *ChromeImpl) openScheduler(ctx context.Context) error {
	m, err := c.find(ctx, scheduleToggleStrategies)
	if err != nil {
		return err
	}
	return c.click(ctx, m)
}

func (c *ChromeImpl) setDateTime(ctx context.Context, scheduledDate time.Time) error {
	// The schedule dialog renders asynchronously after the toggle click.
	if err := c.sleep(ctx, c.cfg.Automation.DialogSettle); err != nil {
		return err
	}

	dateInput, err := c.find(ctx, dateInputStrategies)
	if err != nil {
		return err
	}
	dateValue := formatter.ComposerDate(scheduledDate)
	if err := c.eval(ctx, setValueScript(dateInput.Selector, dateValue), "set date field"); err != nil {
		return err
	}
	c.logger.Debug("Date set", "value", dateValue)

	if err := c.sleep(ctx, c.cfg.Automation.FieldSettle); err != nil {
		return err
	}

	timeInput, err := c.find(ctx, timeInputStrategies)
	if err != nil {
		return err
	}
	timeValue := formatter.ComposerTime(scheduledDate)
	if err := c.eval(ctx, setValueScript(timeInput.Selector, timeValue), "set time field"); err != nil {
		return err
	}
	c.logger.Debug("Time set", "value", timeValue)
	return nil
}

func (c *ChromeImpl) confirm(ctx context.Context) error {
	// "Next" closes the schedule dialog on newer composer revisions; older
	// ones go straight to the schedule action.
	next, err := c.find(ctx, nextButtonStrategies)
	if err == nil {
		if err := c.click(ctx, next); err != nil {
			return err
		}
		if err := c.sleep(ctx, c.cfg.Automation.DialogSettle); err != nil {
			return err
		}
	} else {
		var notFound *browser.ElementNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	m, err := c.find(ctx, confirmScheduleStrategies)
	if err != nil {
		return err
	}
	return c.click(ctx, m)
}
