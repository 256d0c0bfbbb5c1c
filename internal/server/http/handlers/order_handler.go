package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/amvenit/amvenit/internal/domain/errors"
	"github.com/amvenit/amvenit/internal/server/http/dto"
	"github.com/amvenit/amvenit/internal/usecase"
)

// OrderHandler processes the order lifecycle endpoints.
type OrderHandler struct {
	orders   OrderFacade
	couriers CourierFacade
}

// NewOrderHandler creates OrderHandler instance.
func NewOrderHandler(orders OrderFacade, couriers CourierFacade) *OrderHandler {
	return &OrderHandler{orders: orders, couriers: couriers}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domainErrors.ErrValidation)
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), CurrentUserID(c), usecase.CreateOrderInput{
		What:    req.What,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Urgent:  req.Urgent,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SingleOrderResponse{OK: true, Order: dto.ToOrderResponse(*order, true)})
}

// List handles GET /api/orders. The listing is public with masked phones; a
// valid courier PIN in ?pin= or the X-Courier-Pin header unmasks contact
// details.
func (h *OrderHandler) List(c *gin.Context) {
	reveal := false
	pin := c.Query("pin")
	if pin == "" {
		pin = c.GetHeader("X-Courier-Pin")
	}
	if pin != "" {
		if _, err := h.couriers.ValidateCourierPIN(c.Request.Context(), pin); err != nil {
			fail(c, err)
			return
		}
		reveal = true
	}

	active, completed, err := h.orders.BrowseOrders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrdersResponse{
		Active:    dto.ToOrderResponses(active, reveal),
		Completed: dto.ToOrderResponses(completed, reveal),
	})
}

// Mine handles GET /api/my/orders. Participants see their own orders with
// phones unmasked.
func (h *OrderHandler) Mine(c *gin.Context) {
	orders, err := h.orders.MyOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "orders": dto.ToOrderResponses(orders, true)})
}

// Accept handles POST /api/orders/:id/accept.
func (h *OrderHandler) Accept(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.orders.AcceptOrder(c.Request.Context(), id, CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SingleOrderResponse{OK: true, Order: dto.ToOrderResponse(*order, true)})
}

// Deliver handles POST /api/orders/:id/deliver.
func (h *OrderHandler) Deliver(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.orders.DeliverOrder(c.Request.Context(), id, CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.CancelOrderRequest
	_ = c.ShouldBindJSON(&req) // body is optional for client cancellations

	if err := h.orders.CancelOrder(c.Request.Context(), id, CurrentUserID(c), req.Note); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// Notify handles POST /api/order-notify. The email is queued best-effort; the
// endpoint reports only whether the order exists.
func (h *OrderHandler) Notify(c *gin.Context) {
	var req dto.NotifyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domainErrors.ErrValidation)
		return
	}

	id, ok := bodyID(c, req.TargetID())
	if !ok {
		return
	}

	if err := h.orders.NotifyOrder(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}
