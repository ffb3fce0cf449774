package mapper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/purchase-order-exercise/internal/domains/catalog/adapters/static"
	"github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
)

func TestFromDomainOffers(t *testing.T) {
	offers, err := static.NewCatalog().ListOffers(context.Background())
	require.NoError(t, err)

	list := FromDomainOffers(offers)
	require.Len(t, list.Offers, 2)
	assert.Equal(t, domain.ComparisonTip, list.Tip)

	first := list.Offers[0]
	assert.Equal(t, "off-001", first.ID)
	assert.Equal(t, "1526.95", first.RecommendedTotal)
	assert.Equal(t, "449.00", first.Items[0].UnitPrice)
	assert.Equal(t, "Franco de port", first.Conditions.DeliveryMode)
}

func TestFromDomainItem_UnitDisplay(t *testing.T) {
	lot := FromDomainItem(domain.Item{ID: "x", Unit: domain.Unit{LotSize: 5}})
	assert.Equal(t, "Lot de 5", lot.Unit)
	assert.Equal(t, 5, lot.LotSize)

	single := FromDomainItem(domain.Item{ID: "y", Unit: domain.Unit{LotSize: 1}})
	assert.Equal(t, "Unité", single.Unit)
}

func TestFromDomainVocabularies_Copies(t *testing.T) {
	vocab := domain.Vocabularies{DeliveryModes: []string{"Franco de port"}}
	options := FromDomainVocabularies(vocab)
	options.DeliveryModes[0] = "changed"
	assert.Equal(t, "Franco de port", vocab.DeliveryModes[0])
	assert.NotNil(t, options.PaymentModes)
}
