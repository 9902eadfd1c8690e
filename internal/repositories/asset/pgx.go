package asset

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
		logger: logger.WithComponent("AssetRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Create stores a fully materialized asset under the given id
func (p *Pgx) Create(ctx context.Context, id string, a domain.BinaryAsset) error {
	query, args, err := repositories.SqBuilder.
		Insert("assets").
		Columns("id", "name", "mime_type", "byte_length", "data", "created_at").
		Values(id, a.Name, a.MimeType, a.ByteLength, a.Bytes, time.Now()).
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

// Get returns the asset payload for one automation run
func (p *Pgx) Get(ctx context.Context, id string) (*domain.BinaryAsset, error) {
	query, args, err := repositories.SqBuilder.
		Select("name", "mime_type", "byte_length", "data").
		From("assets").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var a domain.BinaryAsset
	err = p.pg.QueryRow(ctx, query, args...).Scan(&a.Name, &a.MimeType, &a.ByteLength, &a.Bytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns asset metadata without payloads
func (p *Pgx) List(ctx context.Context) ([]*domain.AssetInfo, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "name", "mime_type", "byte_length", "created_at").
		From("assets").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []*domain.AssetInfo
	for rows.Next() {
		var info domain.AssetInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.MimeType, &info.ByteLength, &info.CreatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, &info)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return infos, nil
}

// Delete removes an asset
func (p *Pgx) Delete(ctx context.Context, id string) error {
	query, args, err := repositories.SqBuilder.
		Delete("assets").
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
