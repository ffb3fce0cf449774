package ports

import (
	"context"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
)

// Service exposes the exercise wizard use cases to adapters.
type Service interface {
	Create(ctx context.Context) (*domain.Exercise, error)
	Get(ctx context.Context, id string) (*domain.Exercise, error)
	Discard(ctx context.Context, id string) error
	Start(ctx context.Context, id string) (*domain.Exercise, error)
	SelectOffer(ctx context.Context, id, offerID string) (*domain.Exercise, error)
	AddItem(ctx context.Context, id, itemID string) (*domain.Exercise, error)
	RemoveItem(ctx context.Context, id, itemID string) (*domain.Exercise, error)
	UpdateQuantity(ctx context.Context, id, itemID string, quantity int) (*domain.Exercise, error)
	SetCondition(ctx context.Context, id, field, value string) (*domain.Exercise, error)
	SetSignature(ctx context.Context, id, signature string) (*domain.Exercise, error)
	Finish(ctx context.Context, id string) (*domain.Exercise, error)
	Review(ctx context.Context, id string) (*domain.Review, error)
	TogglePreview(ctx context.Context, id string) (*domain.Exercise, error)
	Restart(ctx context.Context, id string) (*domain.Exercise, error)
}
