package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/xtremepizzaria/storefront/internal/domains/orders/adapters/http/mapper"
	orderports "github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
)

// OrdersAPI wires HTTP transport with checkout and order history.
type OrdersAPI struct {
	service orderports.Service
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service orderports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

// Get /v1/checkout/pix
// Renders the PIX payload for the current cart total
func (api *OrdersAPI) GetPixPreview(c *gin.Context) {
	preview, err := api.service.PixPreview(c.Request.Context(), c.Query("txid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromPixPreview(preview))
}

// Post /v1/orders
// Places an order from the cart and the saved profile
func (api *OrdersAPI) PlaceOrder(c *gin.Context) {
	var payload ordermapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	selection, err := ordermapper.ToPaymentSelection(payload)
	if err != nil {
		respondError(c, err)
		return
	}
	order, err := api.service.PlaceOrder(c.Request.Context(), selection)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/v1/orders/"+order.ID)
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

// Get /v1/orders
// Lists orders, newest first
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /v1/orders/:orderId
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	order, err := api.service.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Get /v1/orders/:orderId/handoff
// Builds the WhatsApp summary and link for an order
func (api *OrdersAPI) GetOrderHandoff(c *gin.Context) {
	msg, err := api.service.Handoff(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromHandoff(msg))
}
