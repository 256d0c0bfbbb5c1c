package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/amvenit/amvenit/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Every lifecycle
// mutation is a guarded conditional update: the WHERE clause pins the exact prior
// state, a zero-rows result means the guard no longer held at write time.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListActive(ctx context.Context) ([]model.Order, error)
	ListCompleted(ctx context.Context) ([]model.Order, error)
	ListByParticipant(ctx context.Context, userID int64) ([]model.Order, error)
	ListUnverified(ctx context.Context) ([]model.Order, error)

	// Accept claims an active, unassigned order for the courier. Returns the
	// number of rows affected; zero means the order was already claimed or is
	// no longer active.
	Accept(ctx context.Context, id uuid.UUID, courier model.CourierSnapshot) (int64, error)
	// Complete marks an accepted order delivered, only for its accepting courier.
	Complete(ctx context.Context, id uuid.UUID, courierID int64) (int64, error)
	// CancelByClient cancels an active order owned by the client.
	CancelByClient(ctx context.Context, id uuid.UUID, clientID int64) (int64, error)
	// CancelByCourier cancels an accepted order, only for its accepting courier.
	CancelByCourier(ctx context.Context, id uuid.UUID, courierID int64, note string) (int64, error)

	SetPhoneVerified(ctx context.Context, id uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
