package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}

	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {

	// Routes for the CatalogAPI part of the API
	CatalogAPI CatalogAPI
	// Routes for the CartAPI part of the API
	CartAPI CartAPI
	// Routes for the ProfileAPI part of the API
	ProfileAPI ProfileAPI
	// Routes for the OrdersAPI part of the API
	OrdersAPI OrdersAPI
	// Routes for the HealthAPI part of the API
	HealthAPI HealthAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Healthz",
			http.MethodGet,
			"/healthz",
			handleFunctions.HealthAPI.Healthz,
		},
		{
			"Readyz",
			http.MethodGet,
			"/readyz",
			handleFunctions.HealthAPI.Readyz,
		},
		{
			"ListCatalog",
			http.MethodGet,
			"/v1/catalog",
			handleFunctions.CatalogAPI.ListCatalog,
		},
		{
			"GetCatalogItem",
			http.MethodGet,
			"/v1/catalog/:itemId",
			handleFunctions.CatalogAPI.GetCatalogItem,
		},
		{
			"QuoteCatalogItem",
			http.MethodGet,
			"/v1/catalog/:itemId/price",
			handleFunctions.CatalogAPI.QuoteCatalogItem,
		},
		{
			"GetCart",
			http.MethodGet,
			"/v1/cart",
			handleFunctions.CartAPI.GetCart,
		},
		{
			"ClearCart",
			http.MethodDelete,
			"/v1/cart",
			handleFunctions.CartAPI.ClearCart,
		},
		{
			"AddCartItem",
			http.MethodPost,
			"/v1/cart/items",
			handleFunctions.CartAPI.AddCartItem,
		},
		{
			"ChangeCartItemQuantity",
			http.MethodPatch,
			"/v1/cart/items/:index",
			handleFunctions.CartAPI.ChangeCartItemQuantity,
		},
		{
			"RemoveCartItem",
			http.MethodDelete,
			"/v1/cart/items/:index",
			handleFunctions.CartAPI.RemoveCartItem,
		},
		{
			"GetProfile",
			http.MethodGet,
			"/v1/profile",
			handleFunctions.ProfileAPI.GetProfile,
		},
		{
			"ReplaceProfile",
			http.MethodPut,
			"/v1/profile",
			handleFunctions.ProfileAPI.ReplaceProfile,
		},
		{
			"GetPixPreview",
			http.MethodGet,
			"/v1/checkout/pix",
			handleFunctions.OrdersAPI.GetPixPreview,
		},
		{
			"PlaceOrder",
			http.MethodPost,
			"/v1/orders",
			handleFunctions.OrdersAPI.PlaceOrder,
		},
		{
			"ListOrders",
			http.MethodGet,
			"/v1/orders",
			handleFunctions.OrdersAPI.ListOrders,
		},
		{
			"GetOrder",
			http.MethodGet,
			"/v1/orders/:orderId",
			handleFunctions.OrdersAPI.GetOrder,
		},
		{
			"GetOrderHandoff",
			http.MethodGet,
			"/v1/orders/:orderId/handoff",
			handleFunctions.OrdersAPI.GetOrderHandoff,
		},
	}
}
