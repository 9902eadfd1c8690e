package post

import (
	"context"
	"errors"

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
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

const postColumns = "id, day, caption, hook, cta, pillar, format, asset_id, status, created_at"

// Create adds a new post
func (p *Pgx) Create(ctx context.Context, post domain.Post) error {
	query, args, err := repositories.SqBuilder.
		Insert("posts").
		Columns("id", "day", "caption", "hook", "cta", "pillar", "format", "asset_id", "status", "created_at").
		Values(post.ID, post.Day, post.Caption, post.Hook, post.CTA, post.Pillar, post.Format, post.AssetID, post.Status, post.CreatedAt).
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

// GetByID returns a single post
func (p *Pgx) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var post domain.Post
	err = p.pg.QueryRow(ctx, query, args...).Scan(
		&post.ID, &post.Day, &post.Caption, &post.Hook, &post.CTA,
		&post.Pillar, &post.Format, &post.AssetID, &post.Status, &post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListByStatus returns posts with the given status, oldest first
func (p *Pgx) ListByStatus(ctx context.Context, status domain.PostStatus) ([]*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(sq.Eq{"status": status}).
		OrderBy("day ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID, &post.Day, &post.Caption, &post.Hook, &post.CTA,
			&post.Pillar, &post.Format, &post.AssetID, &post.Status, &post.CreatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// UpdateStatus moves a post through its lifecycle
func (p *Pgx) UpdateStatus(ctx context.Context, id string, status domain.PostStatus) error {
	query, args, err := repositories.SqBuilder.
		Update("posts").
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

// CountByStatus returns the number of posts per status
func (p *Pgx) CountByStatus(ctx context.Context) (map[domain.PostStatus]int, error) {
	query, args, err := repositories.SqBuilder.
		Select("status", "COUNT(*)").
		From("posts").
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

	counts := make(map[domain.PostStatus]int)
	for rows.Next() {
		var status domain.PostStatus
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
