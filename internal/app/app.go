package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"github.com/content-composer/linkedin-autopilot/internal/browser"
	"github.com/content-composer/linkedin-autopilot/internal/browser/browserimpl"
	"github.com/content-composer/linkedin-autopilot/internal/command"
	"github.com/content-composer/linkedin-autopilot/internal/command/commandimpl"
	"github.com/content-composer/linkedin-autopilot/internal/importer"
	"github.com/content-composer/linkedin-autopilot/internal/importer/importerimpl"
	_ "github.com/content-composer/linkedin-autopilot/internal/migrations"
	"github.com/content-composer/linkedin-autopilot/internal/orchestrator"
	"github.com/content-composer/linkedin-autopilot/internal/orchestrator/orchestratorimpl"
	"github.com/content-composer/linkedin-autopilot/internal/ratelimit"
	repositories "github.com/content-composer/linkedin-autopilot/internal/repositories/fx"
	"github.com/content-composer/linkedin-autopilot/internal/scheduler"
	"github.com/content-composer/linkedin-autopilot/internal/scheduler/schedulerimpl"
	"github.com/content-composer/linkedin-autopilot/internal/telegram"
	"github.com/content-composer/linkedin-autopilot/internal/telegram/telegramimpl"
	"github.com/content-composer/linkedin-autopilot/pkg/config"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"
	"github.com/content-composer/linkedin-autopilot/pkg/pgx"
	"github.com/jonboulle/clockwork"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		func() clockwork.Clock { return clockwork.NewRealClock() },
		func() ratelimit.Limiter { return ratelimit.NewInMemoryLimiter(1, 3*time.Second, 3) },
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			browserimpl.New,
			fx.As(new(browser.Client)),
		),
		fx.Annotate(
			schedulerimpl.New,
			fx.As(new(scheduler.Client)),
		),
		fx.Annotate(
			orchestratorimpl.New,
			fx.As(new(orchestrator.Client)),
		),
		fx.Annotate(
			importerimpl.New,
			fx.As(new(importer.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
	),
	repositories.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func migrate(c *config.Config) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", c.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	return goose.Up(db, ".")
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, tgClient telegram.Client,
	cmdClient command.Client, orchClient orchestrator.Client) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg)

			if err := orchClient.ScheduleBatchRuns(ctx); err != nil {
				log.Error("Failed to schedule batch runs", "error", err)
				tgClient.SendMessageToUser("Failed to schedule batch runs: " + err.Error())
			}

			go func() {
				for {
					if err := cmdClient.HandleCommand(ctx); err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Error("Command handler stopped, restarting", "error", err)
						time.Sleep(5 * time.Second)
					}
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start", "error", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
