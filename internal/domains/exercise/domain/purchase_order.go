package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	catalog "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
)

// DateLayout is the DD/MM/YYYY format printed on the order.
const DateLayout = "02/01/2006"

// MinSignatureLength is the number of characters a trimmed signature must exceed.
const MinSignatureLength = 2

// PurchaseOrderItem is a catalog item placed on the order.
// Total always equals Quantity x Item.UnitPrice.
type PurchaseOrderItem struct {
	Item     catalog.Item
	Quantity int
	Total    decimal.Decimal
}

func newPurchaseOrderItem(item catalog.Item, quantity int) PurchaseOrderItem {
	quantity = clampQuantity(quantity)
	return PurchaseOrderItem{Item: item, Quantity: quantity, Total: item.LineTotal(quantity)}
}

// PurchaseOrder is the draft the student fills in from the chosen offer.
type PurchaseOrder struct {
	Number     string
	IssuedAt   time.Time
	Buyer      catalog.Buyer
	Supplier   catalog.Supplier
	Items      []PurchaseOrderItem
	Conditions catalog.SalesConditions
	Signature  string
}

// NewPurchaseOrder seeds an empty draft for the given offer.
func NewPurchaseOrder(number string, issuedAt time.Time, buyer catalog.Buyer, offer catalog.Offer) *PurchaseOrder {
	return &PurchaseOrder{
		Number:   number,
		IssuedAt: issuedAt,
		Buyer:    buyer,
		Supplier: offer.Supplier,
		Items:    []PurchaseOrderItem{},
	}
}

// Date renders the issue date as printed on the document.
func (o *PurchaseOrder) Date() string {
	if o.IssuedAt.IsZero() {
		return ""
	}
	return o.IssuedAt.Format(DateLayout)
}

// HasItem reports whether an item is already on the order.
func (o *PurchaseOrder) HasItem(itemID string) bool {
	return o.indexOf(itemID) >= 0
}

// AddItem appends the item at its recommended quantity. Adding an item that
// is already present leaves the order unchanged.
func (o *PurchaseOrder) AddItem(item catalog.Item) {
	if o.HasItem(item.ID) {
		return
	}
	o.Items = append(o.Items, newPurchaseOrderItem(item, item.RecommendedQuantity))
}

// RemoveItem deletes the line if present.
func (o *PurchaseOrder) RemoveItem(itemID string) {
	idx := o.indexOf(itemID)
	if idx < 0 {
		return
	}
	o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
}

// UpdateQuantity sets the quantity of a line, clamped to at least 1, and
// recomputes its total. Unknown ids are ignored.
func (o *PurchaseOrder) UpdateQuantity(itemID string, quantity int) {
	idx := o.indexOf(itemID)
	if idx < 0 {
		return
	}
	o.Items[idx] = newPurchaseOrderItem(o.Items[idx].Item, quantity)
}

// SetCondition overwrites exactly one condition field.
func (o *PurchaseOrder) SetCondition(field catalog.ConditionField, value string) {
	o.Conditions = o.Conditions.With(field, value)
}

// SetSignature stores the signature verbatim.
func (o *PurchaseOrder) SetSignature(text string) {
	o.Signature = text
}

// Subtotal sums the line totals.
func (o *PurchaseOrder) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Items {
		total = total.Add(line.Total)
	}
	return total
}

// IsValid holds once there is at least one line, every condition is chosen
// and the trimmed signature is longer than two characters.
func (o *PurchaseOrder) IsValid() bool {
	return len(o.Missing()) == 0
}

// Missing names what still blocks the order: "items", each unset condition
// field, and "signature".
func (o *PurchaseOrder) Missing() []string {
	var missing []string
	if len(o.Items) == 0 {
		missing = append(missing, "items")
	}
	for _, field := range catalog.ConditionFields {
		if o.Conditions.Get(field) == "" {
			missing = append(missing, string(field))
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(o.Signature)) <= MinSignatureLength {
		missing = append(missing, "signature")
	}
	return missing
}

// Clone returns a deep copy of the order.
func (o *PurchaseOrder) Clone() *PurchaseOrder {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]PurchaseOrderItem{}, o.Items...)
	return &clone
}

func (o *PurchaseOrder) indexOf(itemID string) int {
	for i, line := range o.Items {
		if line.Item.ID == itemID {
			return i
		}
	}
	return -1
}

func clampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}
