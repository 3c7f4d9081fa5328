package ports

import "github.com/bnema/mst-orders/internal/domain"

type OrderEncoder interface {
	EncodeOrder(records []domain.WireRecord) ([]byte, error)
	EncodeDebug(sequence domain.Sequence) ([]byte, error)
}

type PresentationEncoder interface {
	EncodePresentation(descriptors []domain.Descriptor) ([]byte, error)
}
