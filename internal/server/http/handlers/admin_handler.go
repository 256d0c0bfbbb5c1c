package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/amvenit/amvenit/internal/domain/errors"
	"github.com/amvenit/amvenit/internal/server/http/dto"
)

// AdminHandler processes key-guarded moderation endpoints. Authorization is
// done by the admin middleware; handlers only act.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Orders handles GET /api/admin/orders.
func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.facade.UnverifiedOrders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AdminOrdersResponse{OK: true, Orders: dto.ToOrderResponses(orders, true)})
}

// VerifyOrder handles POST /api/admin/orders/verify.
func (h *AdminHandler) VerifyOrder(c *gin.Context) {
	id, ok := adminActionID(c)
	if !ok {
		return
	}
	if err := h.facade.VerifyOrderPhone(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// RejectOrder handles POST /api/admin/orders/reject.
func (h *AdminHandler) RejectOrder(c *gin.Context) {
	id, ok := adminActionID(c)
	if !ok {
		return
	}
	if err := h.facade.RejectOrder(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// VerifyOrderLink handles GET /api/admin/orders/verify-link, the one-click
// variant embedded in notification emails. It redirects back to the site.
func (h *AdminHandler) VerifyOrderLink(c *gin.Context) {
	id, ok := bodyID(c, c.Query("id"))
	if !ok {
		return
	}
	if err := h.facade.VerifyOrderPhone(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// RejectOrderLink handles GET /api/admin/orders/reject-link.
func (h *AdminHandler) RejectOrderLink(c *gin.Context) {
	id, ok := bodyID(c, c.Query("id"))
	if !ok {
		return
	}
	if err := h.facade.RejectOrder(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Couriers handles GET /api/admin/couriers.
func (h *AdminHandler) Couriers(c *gin.Context) {
	requests, err := h.facade.CourierRequests(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AdminCouriersResponse{OK: true, Requests: dto.ToCourierRequestResponses(requests)})
}

// ApproveCourier handles POST /api/admin/couriers/approve.
func (h *AdminHandler) ApproveCourier(c *gin.Context) {
	id, ok := adminActionID(c)
	if !ok {
		return
	}
	pin, err := h.facade.ApproveCourierRequest(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ApproveCourierResponse{OK: true, PIN: pin})
}

// RejectCourier handles POST /api/admin/couriers/reject.
func (h *AdminHandler) RejectCourier(c *gin.Context) {
	id, ok := adminActionID(c)
	if !ok {
		return
	}
	if err := h.facade.RejectCourierRequest(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// adminActionID binds the admin action body and parses the target id.
func adminActionID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.AdminActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domainErrors.ErrValidation)
		return uuid.Nil, false
	}
	return bodyID(c, req.ID)
}
