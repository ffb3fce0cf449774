package static

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/catalog/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog serves the bundled exercise dataset. It never changes at runtime,
// so reads hand out copies without locking.
type Catalog struct {
	buyer  domain.Buyer
	offers []domain.Offer
	vocab  domain.Vocabularies
}

// NewCatalog returns the dataset used by every exercise session.
func NewCatalog() *Catalog {
	return &Catalog{
		buyer:  defaultBuyer,
		offers: defaultOffers(),
		vocab:  defaultVocabularies,
	}
}

// NewCatalogWith builds a catalog from caller-provided data, mainly for tests.
func NewCatalogWith(buyer domain.Buyer, vocab domain.Vocabularies, offers ...domain.Offer) *Catalog {
	return &Catalog{buyer: buyer, offers: offers, vocab: vocab}
}

func (c *Catalog) ListOffers(_ context.Context) ([]domain.Offer, error) {
	list := make([]domain.Offer, 0, len(c.offers))
	for _, offer := range c.offers {
		list = append(list, offer.Clone())
	}
	return list, nil
}

func (c *Catalog) GetOffer(_ context.Context, id string) (*domain.Offer, error) {
	for _, offer := range c.offers {
		if offer.ID == id {
			clone := offer.Clone()
			return &clone, nil
		}
	}
	return nil, ports.ErrOfferNotFound
}

func (c *Catalog) Buyer(_ context.Context) (domain.Buyer, error) {
	return c.buyer, nil
}

func (c *Catalog) Vocabularies(_ context.Context) (domain.Vocabularies, error) {
	return domain.Vocabularies{
		DeliveryModes:  append([]string(nil), c.vocab.DeliveryModes...),
		DeliveryDelays: append([]string(nil), c.vocab.DeliveryDelays...),
		PaymentModes:   append([]string(nil), c.vocab.PaymentModes...),
		PaymentDelays:  append([]string(nil), c.vocab.PaymentDelays...),
	}, nil
}

var defaultBuyer = domain.Buyer{
	Name:          "TECHSTORE SRL",
	Address:       "Rue du Commerce 15, 7000 MONS",
	VATNumber:     "BE0456.789.012",
	CompanyNumber: "0456.789.012",
	IBAN:          "BE68 0017 1234 5678",
}

var defaultVocabularies = domain.Vocabularies{
	DeliveryModes:  []string{"Franco de port", "Livraison payante (15€)", "Retrait en magasin", "Bpost Express"},
	DeliveryDelays: []string{"3 jours", "5 jours", "7 jours", "15 jours", "30 jours"},
	PaymentModes:   []string{"Virement bancaire", "Carte de crédit", "Espèces", "Domiciliation"},
	PaymentDelays:  []string{"Au comptant", "15 jours", "30 jours fin de mois", "60 jours"},
}

func defaultOffers() []domain.Offer {
	return []domain.Offer{
		{
			ID:          "off-001",
			Supplier:    domain.Supplier{Name: "MediaMarkt", Address: "Drève Richelle 161, 1410 Waterloo"},
			IsBestOffer: true,
			Items: []domain.Item{
				item("it-1", "IPAD10-64", "iPad 10e gén. 64GB", 1, "449.00", 3),
				item("it-2", "COQ-IPAD", "Coque protection iPad", 1, "29.99", 5),
				item("it-3", "STY-LOT3", "Lot 3 stylets compatibles", 3, "15.00", 2),
			},
			Conditions: domain.SalesConditions{
				DeliveryDelay: "7 jours",
				DeliveryMode:  "Franco de port",
				PaymentDelay:  "30 jours fin de mois",
				PaymentMode:   "Virement bancaire",
			},
		},
		{
			ID:          "off-002",
			Supplier:    domain.Supplier{Name: "Fnac Pro", Address: "Place de la Monnaie, 1000 Bruxelles"},
			IsBestOffer: false,
			Items: []domain.Item{
				item("it-4", "IPAD10-64-F", "iPad 10e gén. 64GB", 1, "455.00", 3),
				item("it-5", "COQ-IPAD-F", "Coque protection iPad", 1, "25.00", 5),
				item("it-6", "STY-LOT3-F", "Lot 3 stylets compatibles", 1, "18.00", 6),
			},
			Conditions: domain.SalesConditions{
				DeliveryDelay: "15 jours",
				DeliveryMode:  "Livraison payante (15€)",
				PaymentDelay:  "Au comptant",
				PaymentMode:   "Carte de crédit",
			},
		},
	}
}

func item(id, reference, designation string, lotSize int, price string, recommended int) domain.Item {
	return domain.Item{
		ID:                  id,
		Reference:           reference,
		Designation:         designation,
		Unit:                domain.Unit{LotSize: lotSize},
		UnitPrice:           decimal.RequireFromString(price),
		RecommendedQuantity: recommended,
	}
}
