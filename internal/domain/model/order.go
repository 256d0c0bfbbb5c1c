package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus describes the delivery-request lifecycle.
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Cancel reasons persisted on cancelled orders.
const (
	CancelReasonClient  = "client"
	CancelReasonCourier = "courier"
)

// Order describes a delivery request posted by a client.
// AcceptedBy* fields are a write-once snapshot of the accepting courier,
// taken at acceptance time; they are not reconciled with later profile edits.
type Order struct {
	ID              uuid.UUID
	CreatedAt       time.Time
	What            string
	Name            string
	Address         string
	Phone           string
	Urgent          bool
	Status          OrderStatus
	ClientID        *int64
	AcceptedByID    *int64
	AcceptedByName  *string
	AcceptedByPhone *string
	AcceptedAt      *time.Time
	CancelledAt     *time.Time
	CancelReason    *string
	CancelNote      *string
	PhoneVerified   bool
	VerifyCode      string
}

// WhoWhere renders the legacy "requester • locality" display string.
func (o Order) WhoWhere() string {
	if o.Name == "" {
		return o.Address
	}
	return o.Name + " • " + o.Address
}

// CourierSnapshot is the accepting courier identity denormalized onto the order.
type CourierSnapshot struct {
	ID    int64
	Name  string
	Phone string
}
