package model

import (
	"time"

	"github.com/google/uuid"
)

// Courier is an approved delivery agent. Phone is the upsert key: re-approving
// the same phone rotates the PIN instead of duplicating the row.
type Courier struct {
	ID        int64
	Name      string
	Phone     string
	PIN       string
	Active    bool
	CreatedAt time.Time
}

// CourierRequestStatus describes the application approval flow.
type CourierRequestStatus string

const (
	CourierRequestPending  CourierRequestStatus = "pending"
	CourierRequestApproved CourierRequestStatus = "approved"
	CourierRequestRejected CourierRequestStatus = "rejected"
)

// CourierRequest is a pending application to become a courier.
type CourierRequest struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Name      string
	Phone     string
	Area      string
	Status    CourierRequestStatus
}
