package asset

import (
	"context"
	"errors"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("asset already exists")
	ErrNotFound      = errors.New("asset not found")
)

//go:generate go run go.uber.org/mock/mockgen -source=asset.go -destination=mocks/mock.go
type Repository interface {
	// Create stores a fully materialized asset under the given id
	Create(ctx context.Context, id string, a domain.BinaryAsset) error

	// Get returns the asset payload for one automation run
	Get(ctx context.Context, id string) (*domain.BinaryAsset, error)

	// List returns asset metadata without payloads
	List(ctx context.Context) ([]*domain.AssetInfo, error)

	// Delete removes an asset
	Delete(ctx context.Context, id string) error
}
