package exerciseserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/ports"
)

// CatalogAPI serves the offer comparison data.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the catalog service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /v1/catalog/offers
// Lists the offers to compare
func (api *CatalogAPI) ListOffers(c *gin.Context) {
	offers, err := api.service.ListOffers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainOffers(offers))
}

// Get /v1/catalog/offers/:offerId
// Returns one offer
func (api *CatalogAPI) GetOffer(c *gin.Context) {
	offer, err := api.service.SelectOffer(c.Request.Context(), c.Param("offerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainOffer(*offer))
}

// Get /v1/catalog/options
// Lists the allowed sales condition values and the buyer profile
func (api *CatalogAPI) ListOptions(c *gin.Context) {
	ctx := c.Request.Context()
	vocab, err := api.service.Options(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	buyer, err := api.service.Buyer(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conditions": catalogmapper.FromDomainVocabularies(vocab),
		"buyer":      catalogmapper.FromDomainBuyer(buyer),
	})
}
