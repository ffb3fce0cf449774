package ports

import (
	"context"
	"errors"

	"github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
)

// ErrOfferNotFound is returned when an offer id is not part of the catalog.
var ErrOfferNotFound = errors.New("offer not found")

// Catalog abstracts the source of offers, buyer profile and vocabularies.
type Catalog interface {
	ListOffers(ctx context.Context) ([]domain.Offer, error)
	GetOffer(ctx context.Context, id string) (*domain.Offer, error)
	Buyer(ctx context.Context) (domain.Buyer, error)
	Vocabularies(ctx context.Context) (domain.Vocabularies, error)
}

// Service exposes the offer comparison use cases to adapters.
type Service interface {
	ListOffers(ctx context.Context) ([]domain.Offer, error)
	SelectOffer(ctx context.Context, id string) (*domain.Offer, error)
	Buyer(ctx context.Context) (domain.Buyer, error)
	Options(ctx context.Context) (domain.Vocabularies, error)
}
