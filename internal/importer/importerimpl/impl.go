package importerimpl

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
	"github.com/content-composer/linkedin-autopilot/internal/importer"
	postRepo "github.com/content-composer/linkedin-autopilot/internal/repositories/post"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

const importWorkers = 5

type Opts struct {
	fx.In

	Logger   logger.Logger
	Clock    clockwork.Clock
	PostRepo postRepo.Repository
}

type ImporterImpl struct {
	Logger   logger.Logger
	Clock    clockwork.Clock
	PostRepo postRepo.Repository
}

func New(opts Opts) *ImporterImpl {
	return &ImporterImpl{
		Logger:   opts.Logger.WithComponent("Importer"),
		Clock:    opts.Clock,
		PostRepo: opts.PostRepo,
	}
}

var _ importer.Client = (*ImporterImpl)(nil)

// ImportCSV parses the file sequentially, then fans row inserts out over a
// small worker pool. Rows are independent so insert order does not matter.
func (im *ImporterImpl) ImportCSV(ctx context.Context, path string) (*importer.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	posts, err := im.parse(f)
	if err != nil {
		return nil, err
	}

	result := &importer.Result{Total: len(posts)}
	if len(posts) == 0 {
		return result, nil
	}

	var imported, skipped, failed atomic.Int64
	var wg sync.WaitGroup
	pool, _ := ants.NewPool(importWorkers, ants.WithPreAlloc(true))
	defer pool.Release()

	for _, post := range posts {
		wg.Add(1)
		postToInsert := post

		err := pool.Submit(func() {
			defer wg.Done()
			select {
			case <-ctx.Done():
				failed.Add(1)
				return
			default:
			}

			if err := im.PostRepo.Create(ctx, postToInsert); err != nil {
				if errors.Is(err, postRepo.ErrAlreadyExists) {
					skipped.Add(1)
					return
				}
				im.Logger.Error("Failed to insert imported post", "day", postToInsert.Day, "error", err)
				failed.Add(1)
				return
			}
			imported.Add(1)
		})
		if err != nil {
			wg.Done()
			failed.Add(1)
			im.Logger.Error("Failed to submit import job", "error", err)
		}
	}

	wg.Wait()

	result.Imported = int(imported.Load())
	result.Skipped = int(skipped.Load())
	result.Failed = int(failed.Load())

	im.Logger.Info("CSV import finished",
		"total", result.Total,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result, nil
}

// parse reads every row up front so a malformed file fails before any insert.
func (im *ImporterImpl) parse(r io.Reader) ([]domain.Post, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"day", "caption"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv is missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var posts []domain.Post
	now := im.Clock.Now()
	line := 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}

		day, err := strconv.Atoi(field(row, "day"))
		if err != nil || day < 1 {
			return nil, fmt.Errorf("csv row %d: invalid day %q", line, field(row, "day"))
		}
		caption := field(row, "caption")
		if caption == "" {
			return nil, fmt.Errorf("csv row %d: caption is empty", line)
		}

		posts = append(posts, domain.Post{
			ID:        uuid.NewString(),
			Day:       day,
			Caption:   caption,
			Hook:      field(row, "hook"),
			CTA:       field(row, "cta"),
			Pillar:    field(row, "pillar"),
			Format:    field(row, "format"),
			AssetID:   field(row, "asset_id"),
			Status:    domain.PostStatusDraft,
			CreatedAt: now,
		})
	}

	return posts, nil
}
