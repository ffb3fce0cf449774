package ports

import (
	"context"

	catalog "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
)

// ReviewInput is the finished order together with the offer it came from.
type ReviewInput struct {
	ExerciseID string
	Order      domain.PurchaseOrder
	Offer      catalog.Offer
}

// ReviewOrchestrator evaluates a finished order, inline or as a durable workflow.
type ReviewOrchestrator interface {
	ReviewOrder(ctx context.Context, input ReviewInput) (*domain.Review, error)
}
