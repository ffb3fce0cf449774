package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownConditionField = errors.New("unknown sales condition field")
	ErrConditionNotAllowed   = errors.New("value is not part of the condition vocabulary")
)

// ComparisonTip is shown next to the offers while the student compares them.
const ComparisonTip = "Conseil : Vérifie si la livraison est \"Franco de port\". Cela signifie que les frais de port sont gratuits pour toi !"

// Unit describes how an item is sold: per lot of N units or per single unit.
type Unit struct {
	LotSize int
}

// Display renders the unit the way the offer sheet shows it.
func (u Unit) Display() string {
	if u.LotSize > 1 {
		return fmt.Sprintf("Lot de %d", u.LotSize)
	}
	return "Unité"
}

// Item is an immutable catalog line of an offer.
type Item struct {
	ID                  string
	Reference           string
	Designation         string
	Unit                Unit
	UnitPrice           decimal.Decimal
	RecommendedQuantity int
}

// LineTotal prices the item for the given quantity.
func (i Item) LineTotal(quantity int) decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ConditionField names one of the four sales condition categories.
type ConditionField string

const (
	FieldDeliveryDelay ConditionField = "deliveryDelay"
	FieldDeliveryMode  ConditionField = "deliveryMode"
	FieldPaymentDelay  ConditionField = "paymentDelay"
	FieldPaymentMode   ConditionField = "paymentMode"
)

// ConditionFields lists the fields in display order.
var ConditionFields = []ConditionField{FieldDeliveryDelay, FieldDeliveryMode, FieldPaymentDelay, FieldPaymentMode}

// ParseConditionField resolves a field name coming from an adapter.
func ParseConditionField(raw string) (ConditionField, error) {
	field := ConditionField(strings.TrimSpace(raw))
	switch field {
	case FieldDeliveryDelay, FieldDeliveryMode, FieldPaymentDelay, FieldPaymentMode:
		return field, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownConditionField, raw)
	}
}

// SalesConditions groups the four categorical terms of an offer or order.
// An empty value means the field has not been chosen.
type SalesConditions struct {
	DeliveryDelay string
	DeliveryMode  string
	PaymentDelay  string
	PaymentMode   string
}

// Get returns the value of a single field.
func (c SalesConditions) Get(field ConditionField) string {
	switch field {
	case FieldDeliveryDelay:
		return c.DeliveryDelay
	case FieldDeliveryMode:
		return c.DeliveryMode
	case FieldPaymentDelay:
		return c.PaymentDelay
	case FieldPaymentMode:
		return c.PaymentMode
	default:
		return ""
	}
}

// With returns a copy where only the given field is replaced.
func (c SalesConditions) With(field ConditionField, value string) SalesConditions {
	switch field {
	case FieldDeliveryDelay:
		c.DeliveryDelay = value
	case FieldDeliveryMode:
		c.DeliveryMode = value
	case FieldPaymentDelay:
		c.PaymentDelay = value
	case FieldPaymentMode:
		c.PaymentMode = value
	}
	return c
}

// Complete reports whether all four fields carry a value.
func (c SalesConditions) Complete() bool {
	return c.DeliveryDelay != "" && c.DeliveryMode != "" && c.PaymentDelay != "" && c.PaymentMode != ""
}

// Supplier identifies the seller behind an offer.
type Supplier struct {
	Name    string
	Address string
}

// Buyer is the fixed purchasing company of the exercise.
type Buyer struct {
	Name          string
	Address       string
	VATNumber     string
	CompanyNumber string
	IBAN          string
}

// Offer is a supplier quotation the student can pick.
type Offer struct {
	ID          string
	Supplier    Supplier
	Items       []Item
	Conditions  SalesConditions
	IsBestOffer bool
}

// ItemByID looks up an item of the offer.
func (o Offer) ItemByID(id string) (Item, bool) {
	for _, item := range o.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// RecommendedTotal prices every item at its recommended quantity.
func (o Offer) RecommendedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal(item.RecommendedQuantity))
	}
	return total
}

// Clone returns a deep copy so callers can hand offers out safely.
func (o Offer) Clone() Offer {
	clone := o
	clone.Items = append([]Item(nil), o.Items...)
	return clone
}

// Vocabularies holds the allowed values of each condition field.
type Vocabularies struct {
	DeliveryModes  []string
	DeliveryDelays []string
	PaymentModes   []string
	PaymentDelays  []string
}

// For returns the vocabulary of a field.
func (v Vocabularies) For(field ConditionField) ([]string, error) {
	switch field {
	case FieldDeliveryDelay:
		return v.DeliveryDelays, nil
	case FieldDeliveryMode:
		return v.DeliveryModes, nil
	case FieldPaymentDelay:
		return v.PaymentDelays, nil
	case FieldPaymentMode:
		return v.PaymentModes, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConditionField, field)
	}
}

// Validate accepts the empty value or any member of the field vocabulary.
func (v Vocabularies) Validate(field ConditionField, value string) error {
	allowed, err := v.For(field)
	if err != nil {
		return err
	}
	if value == "" {
		return nil
	}
	for _, candidate := range allowed {
		if candidate == value {
			return nil
		}
	}
	return fmt.Errorf("%w: %s=%q", ErrConditionNotAllowed, field, value)
}
