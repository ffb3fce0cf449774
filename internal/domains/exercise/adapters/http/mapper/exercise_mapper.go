package mapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	catalogmapper "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/adapters/http/mapper"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
)

var errQuantityType = errors.New("quantity must be a number or a string")

// SelectOfferRequest picks one offer on the comparison screen.
type SelectOfferRequest struct {
	OfferID string `json:"offerId" binding:"required"`
}

// AddItemRequest places an offer line on the order.
type AddItemRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

// QuantityRequest carries raw quantity input. Numbers and strings are both
// accepted, as a form field would send either.
type QuantityRequest struct {
	Quantity json.RawMessage `json:"quantity" binding:"required"`
}

// ConditionRequest sets one condition field. An empty value clears it.
type ConditionRequest struct {
	Value *string `json:"value" binding:"required"`
}

// SignatureRequest sets the signature text.
type SignatureRequest struct {
	Signature *string `json:"signature" binding:"required"`
}

// ParseQuantity turns raw quantity input into an integer.
func (r QuantityRequest) ParseQuantity() (int, error) {
	raw := bytes.TrimSpace(r.Quantity)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errQuantityType
	}
	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
		return domain.ParseQuantity(text), nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return domain.ParseQuantity(string(raw)), nil
	}
	return 0, errQuantityType
}

// OrderItem is a line of the purchase order.
type OrderItem struct {
	ItemID      string `json:"itemId"`
	Reference   string `json:"reference"`
	Designation string `json:"designation"`
	Unit        string `json:"unit"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	Total       string `json:"total"`
}

// Order is the HTTP representation of the draft purchase order.
type Order struct {
	Number     string                   `json:"number"`
	Date       string                   `json:"date"`
	Buyer      catalogmapper.Buyer      `json:"buyer"`
	Supplier   catalogmapper.Supplier   `json:"supplier"`
	Items      []OrderItem              `json:"items"`
	Conditions catalogmapper.Conditions `json:"conditions"`
	Signature  string                   `json:"signature"`
	Subtotal   string                   `json:"subtotal"`
	Missing    []string                 `json:"missing"`
}

// Criterion is one line of the review checklist.
type Criterion struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Passed   bool   `json:"passed"`
	Expected string `json:"expected,omitempty"`
	Tip      string `json:"tip,omitempty"`
}

// Review is the HTTP representation of the checklist.
type Review struct {
	SupplierName string      `json:"supplierName"`
	Subtotal     string      `json:"subtotal"`
	Passed       bool        `json:"passed"`
	FailedCount  int         `json:"failedCount"`
	Criteria     []Criterion `json:"criteria"`
}

// Exercise is the HTTP representation of a session.
type Exercise struct {
	ID        string               `json:"id"`
	Step      string               `json:"step"`
	CanFinish bool                 `json:"canFinish"`
	Preview   bool                 `json:"preview"`
	Offer     *catalogmapper.Offer `json:"offer,omitempty"`
	Order     *Order               `json:"order,omitempty"`
	Review    *Review              `json:"review,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// FromDomainExercise maps a session into its transport form.
func FromDomainExercise(e *domain.Exercise) Exercise {
	out := Exercise{
		ID:        e.ID,
		Step:      string(e.Step),
		CanFinish: e.CanFinish(),
		Preview:   e.Preview,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.Offer != nil {
		offer := catalogmapper.FromDomainOffer(*e.Offer)
		out.Offer = &offer
	}
	if e.Order != nil {
		order := FromDomainOrder(e.Order)
		out.Order = &order
	}
	if e.Review != nil {
		review := FromDomainReview(*e.Review)
		out.Review = &review
	}
	return out
}

// FromDomainOrder maps the draft order with its derived subtotal.
func FromDomainOrder(o *domain.PurchaseOrder) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, line := range o.Items {
		items = append(items, OrderItem{
			ItemID:      line.Item.ID,
			Reference:   line.Item.Reference,
			Designation: line.Item.Designation,
			Unit:        line.Item.Unit.Display(),
			UnitPrice:   line.Item.UnitPrice.StringFixed(2),
			Quantity:    line.Quantity,
			Total:       line.Total.StringFixed(2),
		})
	}
	missing := o.Missing()
	if missing == nil {
		missing = []string{}
	}
	return Order{
		Number:     o.Number,
		Date:       o.Date(),
		Buyer:      catalogmapper.FromDomainBuyer(o.Buyer),
		Supplier:   catalogmapper.FromDomainSupplier(o.Supplier),
		Items:      items,
		Conditions: catalogmapper.FromDomainConditions(o.Conditions),
		Signature:  o.Signature,
		Subtotal:   o.Subtotal().StringFixed(2),
		Missing:    missing,
	}
}

// FromDomainReview maps the checklist.
func FromDomainReview(r domain.Review) Review {
	criteria := make([]Criterion, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		criteria = append(criteria, Criterion{
			Key:      string(c.Key),
			Label:    c.Label,
			Passed:   c.Passed,
			Expected: c.Expected,
			Tip:      c.Tip,
		})
	}
	return Review{
		SupplierName: r.SupplierName,
		Subtotal:     r.Subtotal.StringFixed(2),
		Passed:       r.Passed(),
		FailedCount:  r.FailedCount(),
		Criteria:     criteria,
	}
}
