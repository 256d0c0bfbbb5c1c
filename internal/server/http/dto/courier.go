package dto

import (
	"time"

	"github.com/amvenit/amvenit/internal/domain/model"
)

// CourierApplicationRequest describes the become-a-courier payload.
type CourierApplicationRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Area  string `json:"area"`
}

// CourierApplicationResponse reports the stored application and the
// best-effort admin notification outcome.
type CourierApplicationResponse struct {
	OK         bool   `json:"ok"`
	ID         string `json:"id"`
	EmailSent  bool   `json:"email_sent"`
	EmailError string `json:"email_error,omitempty"`
}

// CourierRequestResponse is the admin view of one application.
type CourierRequestResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Area      string    `json:"area"`
	Status    string    `json:"status"`
}

// ToCourierRequestResponse maps an application to the admin API shape.
func ToCourierRequestResponse(req model.CourierRequest) CourierRequestResponse {
	return CourierRequestResponse{
		ID:        req.ID.String(),
		CreatedAt: req.CreatedAt,
		Name:      req.Name,
		Phone:     req.Phone,
		Area:      req.Area,
		Status:    string(req.Status),
	}
}

// ToCourierRequestResponses maps a list of applications.
func ToCourierRequestResponses(requests []model.CourierRequest) []CourierRequestResponse {
	result := make([]CourierRequestResponse, 0, len(requests))
	for _, req := range requests {
		result = append(result, ToCourierRequestResponse(req))
	}
	return result
}
