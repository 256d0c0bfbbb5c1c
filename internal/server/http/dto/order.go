package dto

import (
	"time"

	"github.com/amvenit/amvenit/internal/domain/model"
	"github.com/amvenit/amvenit/internal/usecase"
)

// CreateOrderRequest describes the payload for posting a delivery request.
type CreateOrderRequest struct {
	What    string `json:"what"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Urgent  bool   `json:"urgent"`
}

// CancelOrderRequest carries the optional courier cancellation reason.
type CancelOrderRequest struct {
	Note string `json:"note"`
}

// NotifyOrderRequest names the order for an admin notification email. Both
// key spellings are accepted.
type NotifyOrderRequest struct {
	ID      string `json:"id"`
	OrderID string `json:"orderId"`
}

// TargetID returns whichever id field the caller populated.
func (r NotifyOrderRequest) TargetID() string {
	if r.ID != "" {
		return r.ID
	}
	return r.OrderID
}

// OrderResponse is the public shape of an order. The phone is masked unless
// the caller proved access to contact details.
type OrderResponse struct {
	ID              string     `json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	What            string     `json:"what"`
	WhoWhere        string     `json:"who_where"`
	Phone           string     `json:"phone"`
	Urgent          bool       `json:"urgent"`
	Status          string     `json:"status"`
	PhoneVerified   bool       `json:"phone_verified"`
	AcceptedByName  *string    `json:"accepted_by_name,omitempty"`
	AcceptedByPhone *string    `json:"accepted_by_phone,omitempty"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	CancelReason    *string    `json:"cancel_reason,omitempty"`
	CancelNote      *string    `json:"cancel_note,omitempty"`
}

// OrdersResponse groups the public browse listing.
type OrdersResponse struct {
	Active    []OrderResponse `json:"active"`
	Completed []OrderResponse `json:"completed"`
}

// SingleOrderResponse wraps one order with the ok flag.
type SingleOrderResponse struct {
	OK    bool          `json:"ok"`
	Order OrderResponse `json:"order"`
}

// ToOrderResponse maps an order, masking phones unless revealed.
func ToOrderResponse(order model.Order, revealPhone bool) OrderResponse {
	phone := order.Phone
	courierPhone := order.AcceptedByPhone
	if !revealPhone {
		phone = usecase.MaskPhone(phone)
		if courierPhone != nil {
			masked := usecase.MaskPhone(*courierPhone)
			courierPhone = &masked
		}
	}
	return OrderResponse{
		ID:              order.ID.String(),
		CreatedAt:       order.CreatedAt,
		What:            order.What,
		WhoWhere:        order.WhoWhere(),
		Phone:           phone,
		Urgent:          order.Urgent,
		Status:          string(order.Status),
		PhoneVerified:   order.PhoneVerified,
		AcceptedByName:  order.AcceptedByName,
		AcceptedByPhone: courierPhone,
		AcceptedAt:      order.AcceptedAt,
		CancelReason:    order.CancelReason,
		CancelNote:      order.CancelNote,
	}
}

// ToOrderResponses maps a list of orders.
func ToOrderResponses(orders []model.Order, revealPhone bool) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, ToOrderResponse(order, revealPhone))
	}
	return result
}
