package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
)

// ErrNotConnected is returned by Ping when the attached Chrome tab is not a
// loaded LinkedIn page. A batch must never start in that situation.
var ErrNotConnected = errors.New("linkedin page is not ready")

//go:generate go run go.uber.org/mock/mockgen -source=browser.go -destination=mocks/mock.go

// Client drives the LinkedIn composer in an already-authenticated browser.
type Client interface {
	// Ping is the liveness probe: it succeeds only when the automation
	// context is attached to a fully loaded LinkedIn page.
	Ping(ctx context.Context) error

	// SchedulePost runs the six-step composer choreography for one post.
	// It never retries; the first failing step aborts with a *StateError.
	// A failed run may leave the composer in a partially filled state.
	SchedulePost(ctx context.Context, post domain.Post, scheduledDate time.Time, attachment *domain.BinaryAsset) error
}

// StateError identifies which automation state aborted a run.
type StateError struct {
	State string
	Err   error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("automation state %s failed: %v", e.State, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }

// ElementNotFoundError means a locator exhausted its timeout. Almost always
// caused by a LinkedIn UI change; the attempted strategies are kept so an
// operator can diagnose which selector chain went stale.
type ElementNotFoundError struct {
	Strategies []string
	Timeout    time.Duration
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("no visible element matched [%s] within %s",
		strings.Join(e.Strategies, ", "), e.Timeout)
}

// UnsupportedAttachmentError means a post carried an attachment that is
// neither an image nor a PDF.
type UnsupportedAttachmentError struct {
	MimeType string
}

func (e *UnsupportedAttachmentError) Error() string {
	return fmt.Sprintf("unsupported attachment type %q (want image/* or application/pdf)", e.MimeType)
}
