package domain

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
)

// Post is one pre-authored unit of content. The automation core consumes it
// exactly once per run and never mutates it; status transitions are owned by
// the orchestrator.
type Post struct {
	ID        string
	Day       int    // position in the content plan, 1-based
	Caption   string // newline-delimited paragraphs
	Hook      string
	CTA       string
	Pillar    string
	Format    string
	AssetID   string // optional reference into the asset store
	Status    PostStatus
	CreatedAt time.Time
}
