package scheduledpost

import (
	"context"
	"errors"
	"time"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("schedule record already exists")
	ErrNotFound      = errors.New("schedule record not found")
)

//go:generate go run go.uber.org/mock/mockgen -source=scheduledpost.go -destination=mocks/mock.go
type Repository interface {
	// Create appends a new schedule record
	Create(ctx context.Context, record domain.ScheduledPost) error

	// GetByPostID returns the record for a post, used to detect "already scheduled"
	GetByPostID(ctx context.Context, postID string) (*domain.ScheduledPost, error)

	// ListDueBetween returns records with status "scheduled" whose publish
	// date falls inside [from, to], ordered by publish date ascending
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduledPost, error)

	// UpdateStatus transitions a record
	UpdateStatus(ctx context.Context, id string, status domain.ScheduleStatus) error

	// CountByStatus returns the number of records per status
	CountByStatus(ctx context.Context) (map[domain.ScheduleStatus]int, error)

	// CleanupOldRecords deletes published records older than the specified duration
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
