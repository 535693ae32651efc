package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	cartmapper "github.com/xtremepizzaria/storefront/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/xtremepizzaria/storefront/internal/domains/cart/ports"
)

// CartAPI wires HTTP transport with the cart service.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// Get /v1/cart
// Shows the priced cart
func (api *CartAPI) GetCart(c *gin.Context) {
	view, err := api.service.View(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(view))
}

// Post /v1/cart/items
// Adds a configured item, merging with an identical line
func (api *CartAPI) AddCartItem(c *gin.Context) {
	var payload cartmapper.AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	view, err := api.service.Add(c.Request.Context(), cartmapper.ToAddInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(view))
}

// Patch /v1/cart/items/:index
// Changes a line quantity by a delta, clamped between one and the per-line maximum
func (api *CartAPI) ChangeCartItemQuantity(c *gin.Context) {
	index, ok := bindLineIndex(c)
	if !ok {
		return
	}
	var payload cartmapper.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	view, err := api.service.ChangeQuantity(c.Request.Context(), index, payload.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(view))
}

// Delete /v1/cart/items/:index
// Removes a line
func (api *CartAPI) RemoveCartItem(c *gin.Context) {
	index, ok := bindLineIndex(c)
	if !ok {
		return
	}
	view, err := api.service.Remove(c.Request.Context(), index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(view))
}

// Delete /v1/cart
// Empties the cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	view, err := api.service.Clear(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(view))
}

func bindLineIndex(c *gin.Context) (int, bool) {
	var index int
	if err := runtime.BindStyledParameterWithLocation("simple", false, "index", runtime.ParamLocationPath, c.Param("index"), &index); err != nil {
		respondBadRequest(c, err)
		return 0, false
	}
	return index, true
}
