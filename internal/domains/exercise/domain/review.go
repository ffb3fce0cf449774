package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	catalog "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
)

// CriterionKey identifies one line of the review checklist.
type CriterionKey string

const (
	CriterionItems         CriterionKey = "items"
	CriterionDeliveryMode  CriterionKey = "deliveryMode"
	CriterionDeliveryDelay CriterionKey = "deliveryDelay"
	CriterionPayment       CriterionKey = "payment"
	CriterionSignature     CriterionKey = "signature"
)

// Criterion is a pass/fail check with the hint shown when it fails.
type Criterion struct {
	Key      CriterionKey
	Label    string
	Passed   bool
	Expected string
	Tip      string
}

// Review is the checklist comparing a finished order with its offer.
type Review struct {
	SupplierName string
	Subtotal     decimal.Decimal
	Criteria     []Criterion
}

// Passed reports whether every criterion holds.
func (r Review) Passed() bool {
	return r.FailedCount() == 0
}

// FailedCount returns the number of failing criteria.
func (r Review) FailedCount() int {
	failed := 0
	for _, c := range r.Criteria {
		if !c.Passed {
			failed++
		}
	}
	return failed
}

// Criterion returns the criterion for a key.
func (r Review) Criterion(key CriterionKey) (Criterion, bool) {
	for _, c := range r.Criteria {
		if c.Key == key {
			return c, true
		}
	}
	return Criterion{}, false
}

// Evaluate compares the order with the offer it was drafted from. It is a
// pure function: equal inputs always produce the same checklist.
func Evaluate(order PurchaseOrder, offer catalog.Offer) Review {
	expected := offer.Conditions
	got := order.Conditions

	paymentExpected := fmt.Sprintf("%s / %s", expected.PaymentDelay, expected.PaymentMode)
	criteria := []Criterion{
		newCriterion(CriterionItems, "Transcription des articles",
			len(order.Items) == len(offer.Items),
			fmt.Sprintf("%d", len(offer.Items)),
			"As-tu oublié des articles de l'offre ?"),
		newCriterion(CriterionDeliveryMode, "Mode de livraison",
			got.DeliveryMode == expected.DeliveryMode,
			expected.DeliveryMode,
			"Tu devais choisir : "+expected.DeliveryMode),
		newCriterion(CriterionDeliveryDelay, "Délai de livraison",
			got.DeliveryDelay == expected.DeliveryDelay,
			expected.DeliveryDelay,
			"Tu devais choisir : "+expected.DeliveryDelay),
		newCriterion(CriterionPayment, "Conditions de paiement",
			got.PaymentMode == expected.PaymentMode && got.PaymentDelay == expected.PaymentDelay,
			paymentExpected,
			"L'offre prévoyait : "+paymentExpected),
		newCriterion(CriterionSignature, "Signature du document",
			order.Signature != "",
			"",
			""),
	}
	return Review{
		SupplierName: offer.Supplier.Name,
		Subtotal:     order.Subtotal(),
		Criteria:     criteria,
	}
}

func newCriterion(key CriterionKey, label string, passed bool, expected, tip string) Criterion {
	c := Criterion{Key: key, Label: label, Passed: passed, Expected: expected}
	if !passed {
		c.Tip = tip
	}
	return c
}
