package domain

import "time"

type ScheduleStatus string

const (
	// ScheduleStatusDraft means a record exists but no date was committed.
	ScheduleStatusDraft ScheduleStatus = "draft"
	// ScheduleStatusScheduled means a publish date has been assigned and the
	// post is waiting for a batch run.
	ScheduleStatusScheduled ScheduleStatus = "scheduled"
	// ScheduleStatusPublished means the post was handed to LinkedIn's own
	// scheduler by a successful automation run.
	ScheduleStatusPublished ScheduleStatus = "published"
)

// ScheduledPost is the append-only schedule record for one post. Records are
// looked up by PostID to detect "already scheduled".
type ScheduledPost struct {
	ID            string
	PostID        string
	ScheduledDate time.Time
	Status        ScheduleStatus
	Platform      string
	CreatedAt     time.Time
}

// SchedulePreview pairs a post with its computed publish date. Produced by
// the dry-run preview path; never persisted.
type SchedulePreview struct {
	Post          Post
	ScheduledDate time.Time
}

// AutomationOutcome is the per-post result of one composer run.
type AutomationOutcome struct {
	PostID      string
	Success     bool
	FailedState string // automation state that aborted the run, if any
	ErrorDetail string
}
