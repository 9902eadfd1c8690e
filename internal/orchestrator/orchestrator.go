package orchestrator

import (
	"context"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
)

// PostOutcome is one post's result within a batch.
type PostOutcome struct {
	Record  domain.ScheduledPost
	Outcome domain.AutomationOutcome
}

// BatchResult summarizes a batch run. Outcomes appear in processing order,
// which is scheduled-date order.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Outcomes  []PostOutcome
}

//go:generate go run go.uber.org/mock/mockgen -source=orchestrator.go -destination=mocks/mock.go
type Client interface {
	// RunBatch pushes every due post through the composer, strictly in
	// scheduled-date order, one at a time. The liveness probe gates the
	// batch: if it fails nothing is attempted. A single post's failure is
	// recorded and the batch moves on.
	RunBatch(ctx context.Context) (*BatchResult, error)

	// ScheduleBatchRuns registers the daily automatic batch job.
	ScheduleBatchRuns(ctx context.Context) error
}
