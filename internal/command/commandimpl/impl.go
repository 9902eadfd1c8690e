package commandimpl

import (
	"github.com/content-composer/linkedin-autopilot/internal/command"
	"github.com/content-composer/linkedin-autopilot/internal/importer"
	"github.com/content-composer/linkedin-autopilot/internal/orchestrator"
	"github.com/content-composer/linkedin-autopilot/internal/ratelimit"
	assetRepo "github.com/content-composer/linkedin-autopilot/internal/repositories/asset"
	postRepo "github.com/content-composer/linkedin-autopilot/internal/repositories/post"
	scheduledPostRepo "github.com/content-composer/linkedin-autopilot/internal/repositories/scheduledpost"
	"github.com/content-composer/linkedin-autopilot/internal/scheduler"
	"github.com/content-composer/linkedin-autopilot/internal/telegram"
	"github.com/content-composer/linkedin-autopilot/pkg/config"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Telegram          telegram.Client
	Scheduler         scheduler.Client
	Orchestrator      orchestrator.Client
	Importer          importer.Client
	Logger            logger.Logger
	Config            *config.Config
	Clock             clockwork.Clock
	Limiter           ratelimit.Limiter
	PostRepo          postRepo.Repository
	AssetRepo         assetRepo.Repository
	ScheduledPostRepo scheduledPostRepo.Repository
}

type CommandImpl struct {
	Telegram          telegram.Client
	Scheduler         scheduler.Client
	Orchestrator      orchestrator.Client
	Importer          importer.Client
	Logger            logger.Logger
	Config            *config.Config
	Clock             clockwork.Clock
	Limiter           ratelimit.Limiter
	PostRepo          postRepo.Repository
	AssetRepo         assetRepo.Repository
	ScheduledPostRepo scheduledPostRepo.Repository
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Telegram:          opts.Telegram,
		Scheduler:         opts.Scheduler,
		Orchestrator:      opts.Orchestrator,
		Importer:          opts.Importer,
		Logger:            opts.Logger.WithComponent("Command"),
		Config:            opts.Config,
		Clock:             opts.Clock,
		Limiter:           opts.Limiter,
		PostRepo:          opts.PostRepo,
		AssetRepo:         opts.AssetRepo,
		ScheduledPostRepo: opts.ScheduledPostRepo,
	}
}

var _ command.Client = (*CommandImpl)(nil)
