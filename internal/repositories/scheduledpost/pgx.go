package scheduledpost

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
	"github.com/content-composer/linkedin-autopilot/internal/repositories"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("ScheduledPostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

const recordColumns = "id, post_id, scheduled_date, status, platform, created_at"

// Create appends a new schedule record
func (p *Pgx) Create(ctx context.Context, record domain.ScheduledPost) error {
	query, args, err := repositories.SqBuilder.
		Insert("scheduled_posts").
		Columns("id", "post_id", "scheduled_date", "status", "platform", "created_at").
		Values(record.ID, record.PostID, record.ScheduledDate, record.Status, record.Platform, time.Now()).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByPostID returns the record for a post, used to detect "already scheduled"
func (p *Pgx) GetByPostID(ctx context.Context, postID string) (*domain.ScheduledPost, error) {
	query, args, err := repositories.SqBuilder.
		Select(recordColumns).
		From("scheduled_posts").
		Where(sq.Eq{"post_id": postID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var record domain.ScheduledPost
	err = p.pg.QueryRow(ctx, query, args...).Scan(
		&record.ID, &record.PostID, &record.ScheduledDate,
		&record.Status, &record.Platform, &record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListDueBetween returns records with status "scheduled" inside [from, to],
// ordered by publish date ascending
func (p *Pgx) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduledPost, error) {
	query, args, err := repositories.SqBuilder.
		Select(recordColumns).
		From("scheduled_posts").
		Where(sq.Eq{"status": domain.ScheduleStatusScheduled}).
		Where(sq.GtOrEq{"scheduled_date": from}).
		Where(sq.LtOrEq{"scheduled_date": to}).
		OrderBy("scheduled_date ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.ScheduledPost
	for rows.Next() {
		var record domain.ScheduledPost
		if err := rows.Scan(
			&record.ID, &record.PostID, &record.ScheduledDate,
			&record.Status, &record.Platform, &record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// UpdateStatus transitions a record
func (p *Pgx) UpdateStatus(ctx context.Context, id string, status domain.ScheduleStatus) error {
	query, args, err := repositories.SqBuilder.
		Update("scheduled_posts").
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of records per status
func (p *Pgx) CountByStatus(ctx context.Context) (map[domain.ScheduleStatus]int, error) {
	query, args, err := repositories.SqBuilder.
		Select("status", "COUNT(*)").
		From("scheduled_posts").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ScheduleStatus]int)
	for rows.Next() {
		var status domain.ScheduleStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// CleanupOldRecords deletes published records older than the specified duration
func (p *Pgx) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	query, args, err := repositories.SqBuilder.
		Delete("scheduled_posts").
		Where(sq.Eq{"status": domain.ScheduleStatusPublished}).
		Where(sq.Lt{"scheduled_date": cutoff}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
