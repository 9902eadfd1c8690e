package orchestratorimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/content-composer/linkedin-autopilot/internal/browser"
	"github.com/content-composer/linkedin-autopilot/internal/domain"
	"github.com/content-composer/linkedin-autopilot/internal/orchestrator"
	assetRepo "github.com/content-composer/linkedin-autopilot/internal/repositories/asset"
	postRepo "github.com/content-composer/linkedin-autopilot/internal/repositories/post"
	scheduledPostRepo "github.com/content-composer/linkedin-autopilot/internal/repositories/scheduledpost"
	"github.com/content-composer/linkedin-autopilot/internal/telegram"
	"github.com/content-composer/linkedin-autopilot/pkg/config"
	"github.com/content-composer/linkedin-autopilot/pkg/formatter"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

// recordRetention is how long published schedule records are kept around for
// /status bookkeeping before the daily job deletes them.
const recordRetention = 90 * 24 * time.Hour

type Opts struct {
	fx.In

	Config            *config.Config
	Logger            logger.Logger
	Clock             clockwork.Clock
	Browser           browser.Client
	Telegram          telegram.Client
	PostRepo          postRepo.Repository
	AssetRepo         assetRepo.Repository
	ScheduledPostRepo scheduledPostRepo.Repository
}

type OrchestratorImpl struct {
	Config            *config.Config
	Logger            logger.Logger
	Clock             clockwork.Clock
	Browser           browser.Client
	Telegram          telegram.Client
	PostRepo          postRepo.Repository
	AssetRepo         assetRepo.Repository
	ScheduledPostRepo scheduledPostRepo.Repository
}

func New(opts Opts) *OrchestratorImpl {
	return &OrchestratorImpl{
		Config:            opts.Config,
		Logger:            opts.Logger.WithComponent("Orchestrator"),
		Clock:             opts.Clock,
		Browser:           opts.Browser,
		Telegram:          opts.Telegram,
		PostRepo:          opts.PostRepo,
		AssetRepo:         opts.AssetRepo,
		ScheduledPostRepo: opts.ScheduledPostRepo,
	}
}

var _ orchestrator.Client = (*OrchestratorImpl)(nil)

// RunBatch drives every due post through the composer, one at a time.
//
// The liveness probe runs first and gates the whole batch. Records are
// processed in scheduled-date order; one post's failure is recorded in the
// result and the batch carries on with the next post.
func (o *OrchestratorImpl) RunBatch(ctx context.Context) (*orchestrator.BatchResult, error) {
	if err := o.Browser.Ping(ctx); err != nil {
		o.Logger.Error("Liveness probe failed, aborting batch", "error", err)
		return nil, fmt.Errorf("browser liveness probe: %w", err)
	}

	now := o.Clock.Now()
	until := now.AddDate(0, 0, o.Config.Batch.DaysAhead)

	records, err := o.ScheduledPostRepo.ListDueBetween(ctx, now, until)
	if err != nil {
		return nil, fmt.Errorf("list due posts: %w", err)
	}

	result := &orchestrator.BatchResult{Total: len(records)}
	if len(records) == 0 {
		o.Logger.Info("No posts due in the look-ahead window", "days_ahead", o.Config.Batch.DaysAhead)
		return result, nil
	}

	o.Logger.Info("Starting batch run", "due", len(records), "window_end", until)

	for i, record := range records {
		if i > 0 {
			if err := o.pause(ctx, o.Config.Batch.PostDelay); err != nil {
				return result, err
			}
		}
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		outcome := o.processRecord(ctx, record)
		result.Outcomes = append(result.Outcomes, orchestrator.PostOutcome{
			Record:  *record,
			Outcome: outcome,
		})
		if outcome.Success {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	o.Logger.Info("Batch run finished",
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", result.Failed)
	o.Telegram.SendMessageToUser(summarize(result))

	return result, nil
}

// processRecord runs one post end to end and folds any failure into the
// returned outcome. Repository errors around a successful composer run are
// logged loudly: the post is live on LinkedIn but our bookkeeping is stale.
func (o *OrchestratorImpl) processRecord(ctx context.Context, record *domain.ScheduledPost) domain.AutomationOutcome {
	outcome := domain.AutomationOutcome{PostID: record.PostID}

	post, err := o.PostRepo.GetByID(ctx, record.PostID)
	if err != nil {
		o.Logger.Error("Failed to load post for schedule record",
			"record_id", record.ID, "post_id", record.PostID, "error", err)
		outcome.ErrorDetail = err.Error()
		return outcome
	}

	var attachment *domain.BinaryAsset
	if post.AssetID != "" {
		attachment, err = o.AssetRepo.Get(ctx, post.AssetID)
		if err != nil {
			o.Logger.Error("Failed to load attachment",
				"post_id", post.ID, "asset_id", post.AssetID, "error", err)
			outcome.ErrorDetail = err.Error()
			return outcome
		}
	}

	o.Logger.Info("Scheduling post",
		"post_id", post.ID,
		"day", post.Day,
		"publish_at", record.ScheduledDate,
		"has_attachment", attachment != nil)

	if err := o.Browser.SchedulePost(ctx, *post, record.ScheduledDate, attachment); err != nil {
		var stateErr *browser.StateError
		if errors.As(err, &stateErr) {
			outcome.FailedState = stateErr.State
		}
		outcome.ErrorDetail = err.Error()
		o.Logger.Error("Automation run failed",
			"post_id", post.ID,
			"state", outcome.FailedState,
			"error", err)
		return outcome
	}

	if err := o.ScheduledPostRepo.UpdateStatus(ctx, record.ID, domain.ScheduleStatusPublished); err != nil {
		o.Logger.Error("Post scheduled on LinkedIn but record update failed",
			"record_id", record.ID, "error", err)
	}
	if err := o.PostRepo.UpdateStatus(ctx, post.ID, domain.PostStatusScheduled); err != nil {
		o.Logger.Error("Post scheduled on LinkedIn but post update failed",
			"post_id", post.ID, "error", err)
	}

	outcome.Success = true
	return outcome
}

// ScheduleBatchRuns registers the daily automatic run at the configured
// wall-clock time and keeps the job scheduler alive until ctx ends.
func (o *OrchestratorImpl) ScheduleBatchRuns(ctx context.Context) error {
	loc, err := time.LoadLocation(o.Config.Batch.Timezone)
	if err != nil {
		loc = time.Local
		o.Logger.Warn("Failed to load batch timezone, using local timezone",
			"timezone", o.Config.Batch.Timezone, "error", err)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(
			gocron.NewAtTime(uint(o.Config.Batch.RunHour), uint(o.Config.Batch.RunMinute), 0),
		)),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				o.Logger.Info("Context cancelled, stopping batch schedule")
				return
			}
			taskCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
			defer cancel()

			o.Logger.Info("Starting scheduled batch run")
			if _, err := o.RunBatch(taskCtx); err != nil {
				o.Logger.Error("Scheduled batch run failed", "error", err)
				o.Telegram.SendMessageToUser(fmt.Sprintf("Batch run failed: %v", err))
			}

			deleted, err := o.ScheduledPostRepo.CleanupOldRecords(taskCtx, recordRetention)
			if err != nil {
				o.Logger.Error("Failed to clean up old schedule records", "error", err)
			} else if deleted > 0 {
				o.Logger.Info("Cleaned up old schedule records", "deleted", deleted)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule batch runs: %w", err)
	}

	scheduler.Start()
	o.Logger.Info("Daily batch run scheduled",
		"hour", o.Config.Batch.RunHour,
		"minute", o.Config.Batch.RunMinute,
		"timezone", loc.String())

	go func() {
		<-ctx.Done()
		if err := scheduler.Shutdown(); err != nil {
			o.Logger.Error("Failed to shut down batch scheduler", "error", err)
		}
	}()

	return nil
}

// pause waits out the inter-post delay but wakes immediately on cancellation.
func (o *OrchestratorImpl) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-o.Clock.After(d):
		return nil
	}
}

func summarize(result *orchestrator.BatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Batch run finished: %s scheduled, %s failed (of %s due)\n",
		formatter.FormatNumber(result.Succeeded),
		formatter.FormatNumber(result.Failed),
		formatter.FormatNumber(result.Total))

	for _, po := range result.Outcomes {
		if po.Outcome.Success {
			continue
		}
		if po.Outcome.FailedState != "" {
			fmt.Fprintf(&b, "- post %s failed at %s: %s\n",
				po.Outcome.PostID, po.Outcome.FailedState, po.Outcome.ErrorDetail)
		} else {
			fmt.Fprintf(&b, "- post %s failed: %s\n",
				po.Outcome.PostID, po.Outcome.ErrorDetail)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
