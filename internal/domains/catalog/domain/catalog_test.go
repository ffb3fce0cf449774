package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestUnitDisplay(t *testing.T) {
	require.Equal(t, "Lot de 3", Unit{LotSize: 3}.Display())
	require.Equal(t, "Unité", Unit{LotSize: 1}.Display())
	require.Equal(t, "Unité", Unit{}.Display())
	require.Equal(t, "Unité", Unit{LotSize: -2}.Display())
}

func TestParseConditionField(t *testing.T) {
	field, err := ParseConditionField("deliveryMode")
	require.NoError(t, err)
	require.Equal(t, FieldDeliveryMode, field)

	_, err = ParseConditionField("shippingMode")
	require.ErrorIs(t, err, ErrUnknownConditionField)
}

func TestSalesConditions_WithOnlyTouchesOneField(t *testing.T) {
	base := SalesConditions{DeliveryDelay: "7 jours", PaymentMode: "Espèces"}
	updated := base.With(FieldDeliveryMode, "Franco de port")

	require.Equal(t, "Franco de port", updated.DeliveryMode)
	require.Equal(t, "7 jours", updated.DeliveryDelay)
	require.Equal(t, "Espèces", updated.PaymentMode)
	require.Empty(t, base.DeliveryMode)
	require.False(t, updated.Complete())
	require.True(t, updated.With(FieldPaymentDelay, "60 jours").Complete())
}

func TestVocabularies_Validate(t *testing.T) {
	vocab := Vocabularies{DeliveryModes: []string{"Franco de port", "Bpost Express"}}

	require.NoError(t, vocab.Validate(FieldDeliveryMode, "Bpost Express"))
	require.NoError(t, vocab.Validate(FieldDeliveryMode, ""))
	require.ErrorIs(t, vocab.Validate(FieldDeliveryMode, "Drone"), ErrConditionNotAllowed)
	require.ErrorIs(t, vocab.Validate(ConditionField("colour"), "red"), ErrUnknownConditionField)
}

func TestOffer_RecommendedTotal(t *testing.T) {
	offer := Offer{Items: []Item{
		{ID: "a", UnitPrice: decimal.RequireFromString("29.99"), RecommendedQuantity: 5},
		{ID: "b", UnitPrice: decimal.RequireFromString("15.00"), RecommendedQuantity: 2},
	}}
	require.Equal(t, "179.95", offer.RecommendedTotal().StringFixed(2))

	item, ok := offer.ItemByID("b")
	require.True(t, ok)
	require.Equal(t, "b", item.ID)
	_, ok = offer.ItemByID("zzz")
	require.False(t, ok)
}
