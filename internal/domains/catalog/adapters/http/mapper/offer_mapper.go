package mapper

import (
	"github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
)

// Item is the HTTP representation of a catalog line.
type Item struct {
	ID                  string `json:"id"`
	Reference           string `json:"reference"`
	Designation         string `json:"designation"`
	LotSize             int    `json:"lotSize,omitempty"`
	Unit                string `json:"unit"`
	UnitPrice           string `json:"unitPrice"`
	RecommendedQuantity int    `json:"recommendedQuantity"`
}

// Conditions is the HTTP representation of the four sales conditions.
type Conditions struct {
	DeliveryDelay string `json:"deliveryDelay"`
	DeliveryMode  string `json:"deliveryMode"`
	PaymentDelay  string `json:"paymentDelay"`
	PaymentMode   string `json:"paymentMode"`
}

// Supplier is the HTTP representation of an offer's issuer.
type Supplier struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Offer is the HTTP representation of a supplier offer.
type Offer struct {
	ID               string     `json:"id"`
	Supplier         Supplier   `json:"supplier"`
	Items            []Item     `json:"items"`
	Conditions       Conditions `json:"conditions"`
	IsBestOffer      bool       `json:"isBestOffer"`
	RecommendedTotal string     `json:"recommendedTotal"`
}

// OfferList is the comparison screen payload.
type OfferList struct {
	Offers []Offer `json:"offers"`
	Tip    string  `json:"tip"`
}

// Buyer is the HTTP representation of the ordering company.
type Buyer struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	VATNumber     string `json:"vatNumber"`
	CompanyNumber string `json:"companyNumber"`
	IBAN          string `json:"iban"`
}

// Options lists the allowed values of each condition field.
type Options struct {
	DeliveryDelays []string `json:"deliveryDelay"`
	DeliveryModes  []string `json:"deliveryMode"`
	PaymentDelays  []string `json:"paymentDelay"`
	PaymentModes   []string `json:"paymentMode"`
}

// FromDomainItem maps a catalog item.
func FromDomainItem(item domain.Item) Item {
	return Item{
		ID:                  item.ID,
		Reference:           item.Reference,
		Designation:         item.Designation,
		LotSize:             item.Unit.LotSize,
		Unit:                item.Unit.Display(),
		UnitPrice:           item.UnitPrice.StringFixed(2),
		RecommendedQuantity: item.RecommendedQuantity,
	}
}

// FromDomainConditions maps sales conditions.
func FromDomainConditions(c domain.SalesConditions) Conditions {
	return Conditions{
		DeliveryDelay: c.DeliveryDelay,
		DeliveryMode:  c.DeliveryMode,
		PaymentDelay:  c.PaymentDelay,
		PaymentMode:   c.PaymentMode,
	}
}

// FromDomainSupplier maps a supplier.
func FromDomainSupplier(s domain.Supplier) Supplier {
	return Supplier{Name: s.Name, Address: s.Address}
}

// FromDomainOffer maps an offer including its recommended total.
func FromDomainOffer(o domain.Offer) Offer {
	items := make([]Item, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, FromDomainItem(item))
	}
	return Offer{
		ID:               o.ID,
		Supplier:         FromDomainSupplier(o.Supplier),
		Items:            items,
		Conditions:       FromDomainConditions(o.Conditions),
		IsBestOffer:      o.IsBestOffer,
		RecommendedTotal: o.RecommendedTotal().StringFixed(2),
	}
}

// FromDomainOffers builds the comparison payload.
func FromDomainOffers(offers []domain.Offer) OfferList {
	list := OfferList{Offers: make([]Offer, 0, len(offers)), Tip: domain.ComparisonTip}
	for _, offer := range offers {
		list.Offers = append(list.Offers, FromDomainOffer(offer))
	}
	return list
}

// FromDomainBuyer maps the buyer profile.
func FromDomainBuyer(b domain.Buyer) Buyer {
	return Buyer{
		Name:          b.Name,
		Address:       b.Address,
		VATNumber:     b.VATNumber,
		CompanyNumber: b.CompanyNumber,
		IBAN:          b.IBAN,
	}
}

// FromDomainVocabularies maps the condition vocabularies.
func FromDomainVocabularies(v domain.Vocabularies) Options {
	return Options{
		DeliveryDelays: cloneStrings(v.DeliveryDelays),
		DeliveryModes:  cloneStrings(v.DeliveryModes),
		PaymentDelays:  cloneStrings(v.PaymentDelays),
		PaymentModes:   cloneStrings(v.PaymentModes),
	}
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
