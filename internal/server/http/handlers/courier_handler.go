package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/amvenit/amvenit/internal/domain/errors"
	"github.com/amvenit/amvenit/internal/server/http/dto"
)

// CourierHandler processes public courier applications.
type CourierHandler struct {
	facade CourierFacade
}

// NewCourierHandler creates CourierHandler instance.
func NewCourierHandler(facade CourierFacade) *CourierHandler {
	return &CourierHandler{facade: facade}
}

// Apply handles POST /api/courier-request.
func (h *CourierHandler) Apply(c *gin.Context) {
	var req dto.CourierApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domainErrors.ErrValidation)
		return
	}

	application, emailSent, emailError, err := h.facade.SubmitCourierRequest(c.Request.Context(), req.Name, req.Phone, req.Area)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CourierApplicationResponse{
		OK:         true,
		ID:         application.ID.String(),
		EmailSent:  emailSent,
		EmailError: emailError,
	})
}
