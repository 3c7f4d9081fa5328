package ports

import (
	"context"

	"github.com/bnema/mst-orders/internal/domain"
)

type BinSource interface {
	LoadBins(ctx context.Context, path string) (domain.BinLabels, error)
}

type OrderSource interface {
	ReadOrder(ctx context.Context, path string, expectedRows int) ([]domain.WireRecord, error)
}
