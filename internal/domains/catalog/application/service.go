package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/catalog/ports"
)

// Service backs the offer comparison view.
type Service struct {
	catalog ports.Catalog
}

func NewService(catalog ports.Catalog) *Service {
	return &Service{catalog: catalog}
}

func (s *Service) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	return s.catalog.ListOffers(ctx)
}

// SelectOffer resolves the offer the student picked.
func (s *Service) SelectOffer(ctx context.Context, id string) (*domain.Offer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("offer id is required")
	}
	return s.catalog.GetOffer(ctx, id)
}

func (s *Service) Buyer(ctx context.Context) (domain.Buyer, error) {
	return s.catalog.Buyer(ctx)
}

// Options returns the vocabularies offered by the condition selectors.
func (s *Service) Options(ctx context.Context) (domain.Vocabularies, error) {
	return s.catalog.Vocabularies(ctx)
}

var _ ports.Service = (*Service)(nil)
