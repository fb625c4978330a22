package dashboardserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	userports "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

const ordersView = "orders"

var errOrderIDNotString = apierrors.NewKindError(apierrors.KindValidation, "id must be a string")

// OrderChangeHandler re-assembles and broadcasts a changed order.
type OrderChangeHandler interface {
	OrderChanged(ctx context.Context, id string) (*types.OrderView, error)
}

// ViewRenderer renders a named page template.
type ViewRenderer interface {
	Render(name string, data any) ([]byte, error)
}

// OrderChangedNotification is the webhook body, JSON or form encoded.
type OrderChangedNotification struct {
	ID string `json:"id" form:"id"`
}

// OrdersAPI wires HTTP transport with the orders and users bounded contexts.
type OrdersAPI struct {
	service  ordersports.Service
	changes  OrderChangeHandler
	gate     userports.AccessGate
	renderer ViewRenderer
}

func NewOrdersAPI(service ordersports.Service, changes OrderChangeHandler, gate userports.AccessGate, renderer ViewRenderer) OrdersAPI {
	return OrdersAPI{service: service, changes: changes, gate: gate, renderer: renderer}
}

// Get /orders
// Renders the most recent orders for admin viewers.
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()
	if err := api.gate.Authorize(ctx, sessionIdentity(c)); err != nil {
		respondError(c, err)
		return
	}
	views, err := api.service.ListRecent(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := api.renderer.Render(ordersView, gin.H{"orders": views})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// Post /orders
// Accepts an order-changed notification and pushes the fresh view to viewers.
func (api *OrdersAPI) NotifyOrderChanged(c *gin.Context) {
	var payload OrderChangedNotification
	if err := c.ShouldBind(&payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "id" {
			respondError(c, errOrderIDNotString)
			return
		}
		responder.BadRequest(c, "malformed notification body")
		return
	}
	if _, err := api.changes.OrderChanged(c.Request.Context(), payload.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
