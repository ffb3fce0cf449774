package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
)

func mediaMarktOffer() catalog.Offer {
	return catalog.Offer{
		ID:       "off-001",
		Supplier: catalog.Supplier{Name: "MediaMarkt", Address: "Drève Richelle 161, 1410 Waterloo"},
		Items: []catalog.Item{
			{ID: "it-1", Reference: "IPAD10-64", Designation: "iPad 10e gén. 64GB", Unit: catalog.Unit{LotSize: 1}, UnitPrice: decimal.RequireFromString("449.00"), RecommendedQuantity: 3},
			{ID: "it-2", Reference: "COQ-IPAD", Designation: "Coque protection iPad", Unit: catalog.Unit{LotSize: 1}, UnitPrice: decimal.RequireFromString("29.99"), RecommendedQuantity: 5},
			{ID: "it-3", Reference: "STY-LOT3", Designation: "Lot 3 stylets compatibles", Unit: catalog.Unit{LotSize: 3}, UnitPrice: decimal.RequireFromString("15.00"), RecommendedQuantity: 2},
		},
		Conditions: catalog.SalesConditions{
			DeliveryDelay: "7 jours",
			DeliveryMode:  "Franco de port",
			PaymentDelay:  "30 jours fin de mois",
			PaymentMode:   "Virement bancaire",
		},
		IsBestOffer: true,
	}
}

func newDraft(offer catalog.Offer) *PurchaseOrder {
	issued := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	return NewPurchaseOrder("BC-2025-ABC123", issued, catalog.Buyer{Name: "TECHSTORE SRL"}, offer)
}

func TestNewPurchaseOrder_SeedsFromOffer(t *testing.T) {
	order := newDraft(mediaMarktOffer())

	require.Equal(t, "MediaMarkt", order.Supplier.Name)
	require.Equal(t, "TECHSTORE SRL", order.Buyer.Name)
	require.Empty(t, order.Items)
	require.Empty(t, order.Signature)
	require.Equal(t, catalog.SalesConditions{}, order.Conditions)
	require.Equal(t, "04/03/2025", order.Date())
	require.True(t, order.Subtotal().IsZero())
}

func TestAddItem_IsIdempotent(t *testing.T) {
	offer := mediaMarktOffer()
	order := newDraft(offer)

	order.AddItem(offer.Items[0])
	order.AddItem(offer.Items[0])

	require.Len(t, order.Items, 1)
	require.Equal(t, 3, order.Items[0].Quantity)
	require.Equal(t, "1347.00", order.Items[0].Total.StringFixed(2))
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	offer := mediaMarktOffer()
	order := newDraft(offer)
	order.AddItem(offer.Items[0])
	order.AddItem(offer.Items[1])

	order.RemoveItem("it-404")
	require.Len(t, order.Items, 2)

	order.RemoveItem("it-1")
	require.Len(t, order.Items, 1)
	require.Equal(t, "it-2", order.Items[0].Item.ID)
}

func TestUpdateQuantity_ClampsAndRecomputes(t *testing.T) {
	offer := mediaMarktOffer()
	price := offer.Items[1].UnitPrice

	cases := []struct {
		name     string
		quantity int
		want     int
	}{
		{name: "zero clamps to one", quantity: 0, want: 1},
		{name: "negative clamps to one", quantity: -4, want: 1},
		{name: "non-numeric parses to zero", quantity: ParseQuantity("abc"), want: 1},
		{name: "positive kept", quantity: 7, want: 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := newDraft(offer)
			order.AddItem(offer.Items[1])

			order.UpdateQuantity("it-2", tc.quantity)

			line := order.Items[0]
			assert.Equal(t, tc.want, line.Quantity)
			assert.True(t, price.Mul(decimal.NewFromInt(int64(tc.want))).Equal(line.Total))
		})
	}
}

func TestUpdateQuantity_UnknownItemIsNoop(t *testing.T) {
	offer := mediaMarktOffer()
	order := newDraft(offer)
	order.AddItem(offer.Items[0])

	order.UpdateQuantity("it-3", 10)

	require.Len(t, order.Items, 1)
	require.Equal(t, 3, order.Items[0].Quantity)
}

func TestSubtotal_MediaMarktScenario(t *testing.T) {
	offer := mediaMarktOffer()
	order := newDraft(offer)
	for _, item := range offer.Items {
		order.AddItem(item)
	}

	require.Equal(t, "1347.00", order.Items[0].Total.StringFixed(2))
	require.Equal(t, "149.95", order.Items[1].Total.StringFixed(2))
	require.Equal(t, "30.00", order.Items[2].Total.StringFixed(2))
	require.Equal(t, "1526.95", order.Subtotal().StringFixed(2))
	require.True(t, order.Subtotal().Equal(order.Subtotal()))
}

func TestIsValid(t *testing.T) {
	offer := mediaMarktOffer()
	complete := func() *PurchaseOrder {
		order := newDraft(offer)
		order.AddItem(offer.Items[0])
		for _, field := range catalog.ConditionFields {
			order.SetCondition(field, offer.Conditions.Get(field))
		}
		order.SetSignature("Jean Dupont")
		return order
	}

	require.True(t, complete().IsValid())

	noItems := complete()
	noItems.RemoveItem("it-1")
	require.False(t, noItems.IsValid())

	for _, field := range catalog.ConditionFields {
		missing := complete()
		missing.SetCondition(field, "")
		require.False(t, missing.IsValid(), "field %s", field)
	}

	shortSignature := complete()
	shortSignature.SetSignature("  ab  ")
	require.False(t, shortSignature.IsValid())

	accented := complete()
	accented.SetSignature("Zoé")
	require.True(t, accented.IsValid())
}

func TestMissing_ListsBlockers(t *testing.T) {
	offer := mediaMarktOffer()
	order := newDraft(offer)
	require.Equal(t, []string{"items", "deliveryDelay", "deliveryMode", "paymentDelay", "paymentMode", "signature"}, order.Missing())

	order.AddItem(offer.Items[0])
	order.SetCondition(catalog.FieldDeliveryMode, offer.Conditions.DeliveryMode)
	order.SetSignature("Jean")
	require.Equal(t, []string{"deliveryDelay", "paymentDelay", "paymentMode"}, order.Missing())
}

func TestSetSignature_StoredVerbatim(t *testing.T) {
	order := newDraft(mediaMarktOffer())
	order.SetSignature("  J. Dupont ")
	require.Equal(t, "  J. Dupont ", order.Signature)
}

func TestClone_IsIndependent(t *testing.T) {
	offer := mediaMarktOffer()
	order := newDraft(offer)
	order.AddItem(offer.Items[0])

	clone := order.Clone()
	clone.UpdateQuantity("it-1", 9)
	clone.AddItem(offer.Items[1])

	require.Len(t, order.Items, 1)
	require.Equal(t, 3, order.Items[0].Quantity)
}

func TestParseQuantity(t *testing.T) {
	cases := map[string]int{
		"5":             5,
		"  12":          12,
		"3.7":           3,
		"42abc":         42,
		"-2":            -2,
		"+8":            8,
		"":              0,
		"abc":           0,
		"-":             0,
		"1e3":           1,
		"9999999999999": 2147483647,
	}
	for raw, want := range cases {
		require.Equal(t, want, ParseQuantity(raw), "input %q", raw)
	}
}
