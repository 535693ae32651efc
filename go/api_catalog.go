package storefrontserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	catalogmapper "github.com/xtremepizzaria/storefront/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	catalogports "github.com/xtremepizzaria/storefront/internal/domains/catalog/ports"
)

// CatalogAPI serves the menu and price previews.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /v1/catalog
// Lists the menu, optionally narrowed to a category tab and a search term
func (api *CatalogAPI) ListCatalog(c *gin.Context) {
	filter := catalogdomain.Filter{
		Category: catalogdomain.Category(strings.TrimSpace(c.Query("category"))),
		Query:    c.Query("q"),
	}
	items, err := api.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainItems(items))
}

// Get /v1/catalog/:itemId
// Finds a menu entry with its size and add-on choices
func (api *CatalogAPI) GetCatalogItem(c *gin.Context) {
	item, err := api.service.Get(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainItem(item))
}

// Get /v1/catalog/:itemId/price
// Prices a configuration of a menu entry without touching the cart
func (api *CatalogAPI) QuoteCatalogItem(c *gin.Context) {
	quantity := 1
	if err := runtime.BindQueryParameter("form", true, false, "quantity", c.Request.URL.Query(), &quantity); err != nil {
		respondBadRequest(c, err)
		return
	}
	options, err := catalogmapper.OptionsFromQuery(c.Query("size"), c.Query("extraCheese"))
	if err != nil {
		respondError(c, err)
		return
	}
	quote, err := api.service.Quote(c.Request.Context(), c.Param("itemId"), options, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromQuote(quote))
}
