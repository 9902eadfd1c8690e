package orchestratorimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/content-composer/linkedin-autopilot/internal/browser"
	"github.com/content-composer/linkedin-autopilot/internal/domain"
	assetRepo "github.com/content-composer/linkedin-autopilot/internal/repositories/asset"
	postRepo "github.com/content-composer/linkedin-autopilot/internal/repositories/post"
	scheduledPostRepo "github.com/content-composer/linkedin-autopilot/internal/repositories/scheduledpost"
	"github.com/content-composer/linkedin-autopilot/pkg/config"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"
	"github.com/jonboulle/clockwork"
)

type fakeBrowser struct {
	pingErr   error
	failPosts map[string]error // post id -> SchedulePost error
	scheduled []string
}

func (b *fakeBrowser) Ping(context.Context) error { return b.pingErr }

func (b *fakeBrowser) SchedulePost(_ context.Context, post domain.Post, _ time.Time, _ *domain.BinaryAsset) error {
	if err := b.failPosts[post.ID]; err != nil {
		return err
	}
	b.scheduled = append(b.scheduled, post.ID)
	return nil
}

type fakeTelegram struct {
	userMessages []string
}

func (t *fakeTelegram) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return nil }
func (t *fakeTelegram) StopReceivingUpdates()                                        {}
func (t *fakeTelegram) SendMessage(int64, string) (int, error)                       { return 0, nil }
func (t *fakeTelegram) EditMessageText(int64, int, string) error                     { return nil }
func (t *fakeTelegram) SendMessageToUser(msg string) {
	t.userMessages = append(t.userMessages, msg)
}

type fakePostRepo struct {
	postRepo.Repository

	posts    map[string]*domain.Post
	statuses map[string]domain.PostStatus
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, postRepo.ErrNotFound
	}
	return p, nil
}

func (r *fakePostRepo) UpdateStatus(_ context.Context, id string, status domain.PostStatus) error {
	if r.statuses == nil {
		r.statuses = make(map[string]domain.PostStatus)
	}
	r.statuses[id] = status
	return nil
}

type fakeAssetRepo struct {
	assetRepo.Repository

	assets map[string]*domain.BinaryAsset
}

func (r *fakeAssetRepo) Get(_ context.Context, id string) (*domain.BinaryAsset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, assetRepo.ErrNotFound
	}
	return a, nil
}

type fakeScheduleRepo struct {
	scheduledPostRepo.Repository

	due      []*domain.ScheduledPost
	statuses map[string]domain.ScheduleStatus
}

func (r *fakeScheduleRepo) ListDueBetween(_ context.Context, _, _ time.Time) ([]*domain.ScheduledPost, error) {
	return r.due, nil
}

func (r *fakeScheduleRepo) UpdateStatus(_ context.Context, id string, status domain.ScheduleStatus) error {
	if r.statuses == nil {
		r.statuses = make(map[string]domain.ScheduleStatus)
	}
	r.statuses[id] = status
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Batch.DaysAhead = 7
	cfg.Batch.PostDelay = 0
	return cfg
}

func newTestOrchestrator(b *fakeBrowser, tg *fakeTelegram, posts *fakePostRepo,
	assets *fakeAssetRepo, schedules *fakeScheduleRepo) *OrchestratorImpl {
	return &OrchestratorImpl{
		Config:            testConfig(),
		Logger:            logger.New(logger.Opts{}),
		Clock:             clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)),
		Browser:           b,
		Telegram:          tg,
		PostRepo:          posts,
		AssetRepo:         assets,
		ScheduledPostRepo: schedules,
	}
}

func dueRecord(id, postID string, day int) *domain.ScheduledPost {
	return &domain.ScheduledPost{
		ID:            id,
		PostID:        postID,
		ScheduledDate: time.Date(2026, 1, day, 9, 0, 0, 0, time.UTC),
		Status:        domain.ScheduleStatusScheduled,
		Platform:      "linkedin",
	}
}

func TestRunBatchAbortsWhenPingFails(t *testing.T) {
	b := &fakeBrowser{pingErr: browser.ErrNotConnected}
	schedules := &fakeScheduleRepo{due: []*domain.ScheduledPost{dueRecord("r1", "p1", 2)}}
	o := newTestOrchestrator(b, &fakeTelegram{}, &fakePostRepo{}, &fakeAssetRepo{}, schedules)

	_, err := o.RunBatch(context.Background())
	if !errors.Is(err, browser.ErrNotConnected) {
		t.Fatalf("RunBatch() error = %v, want ErrNotConnected", err)
	}
	if len(b.scheduled) != 0 {
		t.Errorf("posts were scheduled despite a failed probe: %v", b.scheduled)
	}
}

func TestRunBatchContinuesPastOneFailure(t *testing.T) {
	b := &fakeBrowser{
		failPosts: map[string]error{
			"p2": &browser.StateError{State: "OpenScheduler", Err: errors.New("dialog never appeared")},
		},
	}
	posts := &fakePostRepo{posts: map[string]*domain.Post{
		"p1": {ID: "p1", Day: 1, Caption: "one"},
		"p2": {ID: "p2", Day: 2, Caption: "two"},
		"p3": {ID: "p3", Day: 3, Caption: "three"},
	}}
	schedules := &fakeScheduleRepo{due: []*domain.ScheduledPost{
		dueRecord("r1", "p1", 2),
		dueRecord("r2", "p2", 3),
		dueRecord("r3", "p3", 4),
	}}
	tg := &fakeTelegram{}
	o := newTestOrchestrator(b, tg, posts, &fakeAssetRepo{}, schedules)

	result, err := o.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}

	if result.Total != 3 || result.Succeeded != 2 || result.Failed != 1 {
		t.Errorf("result = %d/%d/%d, want total 3, succeeded 2, failed 1",
			result.Total, result.Succeeded, result.Failed)
	}
	if len(b.scheduled) != 2 {
		t.Errorf("scheduled posts = %v, want p1 and p3", b.scheduled)
	}

	failed := result.Outcomes[1].Outcome
	if failed.Success {
		t.Error("second outcome should be a failure")
	}
	if failed.FailedState != "OpenScheduler" {
		t.Errorf("failed state = %q, want OpenScheduler", failed.FailedState)
	}

	if schedules.statuses["r1"] != domain.ScheduleStatusPublished {
		t.Errorf("r1 status = %q, want published", schedules.statuses["r1"])
	}
	if _, ok := schedules.statuses["r2"]; ok {
		t.Error("failed record r2 must keep its status")
	}
	if posts.statuses["p1"] != domain.PostStatusScheduled {
		t.Errorf("p1 status = %q, want scheduled", posts.statuses["p1"])
	}

	if len(tg.userMessages) != 1 {
		t.Fatalf("got %d summary messages, want 1", len(tg.userMessages))
	}
}

func TestRunBatchLoadsAttachment(t *testing.T) {
	b := &fakeBrowser{}
	posts := &fakePostRepo{posts: map[string]*domain.Post{
		"p1": {ID: "p1", Day: 1, Caption: "one", AssetID: "a1"},
	}}
	assets := &fakeAssetRepo{assets: map[string]*domain.BinaryAsset{
		"a1": {Name: "visual.png", MimeType: "image/png", Bytes: []byte{1}},
	}}
	schedules := &fakeScheduleRepo{due: []*domain.ScheduledPost{dueRecord("r1", "p1", 2)}}
	o := newTestOrchestrator(b, &fakeTelegram{}, posts, assets, schedules)

	result, err := o.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if result.Succeeded != 1 {
		t.Fatalf("succeeded = %d, want 1", result.Succeeded)
	}
}

func TestRunBatchRecordsMissingAttachment(t *testing.T) {
	b := &fakeBrowser{}
	posts := &fakePostRepo{posts: map[string]*domain.Post{
		"p1": {ID: "p1", Day: 1, Caption: "one", AssetID: "gone"},
	}}
	schedules := &fakeScheduleRepo{due: []*domain.ScheduledPost{dueRecord("r1", "p1", 2)}}
	o := newTestOrchestrator(b, &fakeTelegram{}, posts, &fakeAssetRepo{}, schedules)

	result, err := o.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if result.Failed != 1 {
		t.Fatalf("failed = %d, want 1", result.Failed)
	}
	if len(b.scheduled) != 0 {
		t.Error("post with a missing attachment must not reach the composer")
	}
}

func TestRunBatchEmptyWindow(t *testing.T) {
	o := newTestOrchestrator(&fakeBrowser{}, &fakeTelegram{}, &fakePostRepo{}, &fakeAssetRepo{}, &fakeScheduleRepo{})

	result, err := o.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if result.Total != 0 {
		t.Errorf("total = %d, want 0", result.Total)
	}
}
