// Package dashboardserver is the HTTP surface of the order dashboard.
package dashboardserver

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

// ApiHandleFunctions groups the handlers served by the router.
type ApiHandleFunctions struct {
	OrdersAPI   OrdersAPI
	RealtimeAPI RealtimeAPI
}

// NewRouter returns a new router. middleware runs before every route.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine adds the dashboard routes and fallbacks to router.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		responder.InternalError(c, "")
	}))
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		}
	}
	router.NoRoute(func(c *gin.Context) {
		responder.NotFound(c, "route", c.Request.Method+" "+c.Request.URL.Path)
	})
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// RobotsTxt keeps the dashboard out of search indexes.
func RobotsTxt(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"ListOrders",
			http.MethodGet,
			"/orders",
			handleFunctions.OrdersAPI.ListOrders,
		},
		{
			"NotifyOrderChanged",
			http.MethodPost,
			"/orders",
			handleFunctions.OrdersAPI.NotifyOrderChanged,
		},
		{
			"Stream",
			http.MethodGet,
			"/realtime",
			handleFunctions.RealtimeAPI.Stream,
		},
		{
			"Chat",
			http.MethodPost,
			"/chat",
			handleFunctions.RealtimeAPI.Chat,
		},
		{
			"RobotsTxt",
			http.MethodGet,
			"/robots.txt",
			RobotsTxt,
		},
	}
}
