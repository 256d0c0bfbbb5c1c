package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/amvenit/amvenit/internal/domain/model"
)

// CourierRepository describes persistence operations with approved couriers.
type CourierRepository interface {
	// Upsert inserts or, when the phone already exists, refreshes name, PIN and
	// active flag on the existing row.
	Upsert(ctx context.Context, courier *model.Courier) error
	GetActiveByPIN(ctx context.Context, pin string) (*model.Courier, error)
	GetByPhone(ctx context.Context, phone string) (*model.Courier, error)
}

// CourierRequestRepository describes persistence of courier applications.
type CourierRequestRepository interface {
	Create(ctx context.Context, req *model.CourierRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CourierRequest, error)
	List(ctx context.Context) ([]model.CourierRequest, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.CourierRequestStatus) (int64, error)
}
