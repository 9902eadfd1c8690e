package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		User  int64  `env:"TELEGRAM_USER"`
		Token string `env:"TELEGRAM_TOKEN"`
	}
	Browser struct {
		// DevToolsURL points at a Chrome instance started with
		// --remote-debugging-port that is already logged in to LinkedIn.
		DevToolsURL string `env:"BROWSER_DEVTOOLS_URL" env-default:"ws://127.0.0.1:9222"`
		FeedURL     string `env:"BROWSER_FEED_URL" env-default:"https://www.linkedin.com/feed/"`
	}
	// Automation delays are empirically tuned against the live LinkedIn UI.
	// The page gives no "done re-rendering" signal, so every pause is a
	// named knob that can be adjusted without a rebuild.
	Automation struct {
		LocatorTimeout  time.Duration `env:"AUTOMATION_LOCATOR_TIMEOUT" env-default:"5s"`
		LocatorPoll     time.Duration `env:"AUTOMATION_LOCATOR_POLL" env-default:"200ms"`
		ComposerSettle  time.Duration `env:"AUTOMATION_COMPOSER_SETTLE" env-default:"2s"`
		UploadSettle    time.Duration `env:"AUTOMATION_UPLOAD_SETTLE" env-default:"3s"`
		CaptionSettle   time.Duration `env:"AUTOMATION_CAPTION_SETTLE" env-default:"1s"`
		SchedulerSettle time.Duration `env:"AUTOMATION_SCHEDULER_SETTLE" env-default:"1500ms"`
		DialogSettle    time.Duration `env:"AUTOMATION_DIALOG_SETTLE" env-default:"1s"`
		MenuSettle      time.Duration `env:"AUTOMATION_MENU_SETTLE" env-default:"500ms"`
		FieldSettle     time.Duration `env:"AUTOMATION_FIELD_SETTLE" env-default:"500ms"`
		ConfirmSettle   time.Duration `env:"AUTOMATION_CONFIRM_SETTLE" env-default:"2s"`
	}
	Batch struct {
		DaysAhead int           `env:"BATCH_DAYS_AHEAD" env-default:"7"`
		PostDelay time.Duration `env:"BATCH_POST_DELAY" env-default:"30s"`
		RunHour   int           `env:"BATCH_RUN_HOUR" env-default:"8"`
		RunMinute int           `env:"BATCH_RUN_MINUTE" env-default:"30"`
		Timezone  string        `env:"BATCH_TIMEZONE" env-default:"Local"`
	}
}

// GetDSN renders the postgres connection string in the key=value form the
// database/sql driver expects.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode)
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
