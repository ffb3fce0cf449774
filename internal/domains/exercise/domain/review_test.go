package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	catalog "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
)

func filledOrder(offer catalog.Offer) PurchaseOrder {
	order := newDraft(offer)
	for _, item := range offer.Items {
		order.AddItem(item)
	}
	for _, field := range catalog.ConditionFields {
		order.SetCondition(field, offer.Conditions.Get(field))
	}
	order.SetSignature("Jean Dupont")
	return *order
}

func TestEvaluate_AllCriteriaPass(t *testing.T) {
	offer := mediaMarktOffer()
	review := Evaluate(filledOrder(offer), offer)

	require.True(t, review.Passed())
	require.Len(t, review.Criteria, 5)
	require.Equal(t, "MediaMarkt", review.SupplierName)
	require.Equal(t, "1526.95", review.Subtotal.StringFixed(2))
	for _, c := range review.Criteria {
		require.Empty(t, c.Tip, c.Key)
	}
}

func TestEvaluate_DeliveryModeMismatch(t *testing.T) {
	offer := mediaMarktOffer()
	order := filledOrder(offer)
	order.SetCondition(catalog.FieldDeliveryMode, "Livraison payante (15€)")

	review := Evaluate(order, offer)

	criterion, ok := review.Criterion(CriterionDeliveryMode)
	require.True(t, ok)
	require.False(t, criterion.Passed)
	require.Equal(t, "Franco de port", criterion.Expected)
	require.Contains(t, criterion.Tip, "Franco de port")
	require.Equal(t, 1, review.FailedCount())
}

func TestEvaluate_PaymentIsOneCombinedCriterion(t *testing.T) {
	offer := mediaMarktOffer()
	order := filledOrder(offer)
	order.SetCondition(catalog.FieldPaymentDelay, "60 jours")

	review := Evaluate(order, offer)

	criterion, _ := review.Criterion(CriterionPayment)
	require.False(t, criterion.Passed)
	require.Equal(t, "L'offre prévoyait : 30 jours fin de mois / Virement bancaire", criterion.Tip)
	require.Equal(t, 1, review.FailedCount())
}

func TestEvaluate_ItemCountOnly(t *testing.T) {
	offer := mediaMarktOffer()
	order := filledOrder(offer)
	order.RemoveItem("it-3")

	review := Evaluate(order, offer)
	criterion, _ := review.Criterion(CriterionItems)
	require.False(t, criterion.Passed)
	require.Equal(t, "As-tu oublié des articles de l'offre ?", criterion.Tip)

	// Quantities do not matter, only the number of lines.
	order = filledOrder(offer)
	order.UpdateQuantity("it-1", 40)
	criterion, _ = Evaluate(order, offer).Criterion(CriterionItems)
	require.True(t, criterion.Passed)
}

func TestEvaluate_SignaturePresence(t *testing.T) {
	offer := mediaMarktOffer()
	order := filledOrder(offer)
	order.SetSignature("")

	criterion, _ := Evaluate(order, offer).Criterion(CriterionSignature)
	require.False(t, criterion.Passed)
	require.Empty(t, criterion.Tip)
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	offer := mediaMarktOffer()
	order := filledOrder(offer)
	order.SetCondition(catalog.FieldDeliveryDelay, "3 jours")

	require.Equal(t, Evaluate(order, offer), Evaluate(order, offer))
}
