package ports

import (
	"context"

	"github.com/bnema/mst-orders/internal/domain"
)

type ManifestRepository interface {
	Record(ctx context.Context, entries []domain.OrderEntry) error
	List(ctx context.Context) ([]domain.OrderEntry, error)
}
