package post

import (
	"context"
	"errors"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("post already exists")
	ErrNotFound      = errors.New("post not found")
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// Create adds a new post
	Create(ctx context.Context, post domain.Post) error

	// GetByID returns a single post
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// ListByStatus returns posts with the given status, oldest first
	ListByStatus(ctx context.Context, status domain.PostStatus) ([]*domain.Post, error)

	// UpdateStatus moves a post through its lifecycle
	UpdateStatus(ctx context.Context, id string, status domain.PostStatus) error

	// CountByStatus returns the number of posts per status
	CountByStatus(ctx context.Context) (map[domain.PostStatus]int, error)
}
