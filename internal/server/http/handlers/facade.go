package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/amvenit/amvenit/internal/domain/model"
	"github.com/amvenit/amvenit/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error)
	Authenticate(ctx context.Context, login, password string) (*model.User, string, error)
	ProfileByID(ctx context.Context, userID int64) (*model.Profile, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, clientID int64, in usecase.CreateOrderInput) (*model.Order, error)
	BrowseOrders(ctx context.Context) (active, completed []model.Order, err error)
	MyOrders(ctx context.Context, userID int64) ([]model.Order, error)
	AcceptOrder(ctx context.Context, orderID uuid.UUID, courierUserID int64) (*model.Order, error)
	DeliverOrder(ctx context.Context, orderID uuid.UUID, courierUserID int64) error
	CancelOrder(ctx context.Context, orderID uuid.UUID, userID int64, note string) error
	NotifyOrder(ctx context.Context, orderID uuid.UUID) error
}

// CourierFacade covers the public courier application flow.
type CourierFacade interface {
	SubmitCourierRequest(ctx context.Context, name, phone, area string) (req *model.CourierRequest, emailSent bool, emailError string, err error)
	ValidateCourierPIN(ctx context.Context, pin string) (*model.Courier, error)
}

// AdminFacade covers key-guarded moderation operations.
type AdminFacade interface {
	UnverifiedOrders(ctx context.Context) ([]model.Order, error)
	VerifyOrderPhone(ctx context.Context, orderID uuid.UUID) error
	RejectOrder(ctx context.Context, orderID uuid.UUID) error
	CourierRequests(ctx context.Context) ([]model.CourierRequest, error)
	ApproveCourierRequest(ctx context.Context, requestID uuid.UUID) (pin string, err error)
	RejectCourierRequest(ctx context.Context, requestID uuid.UUID) error
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	OrderFacade
	CourierFacade
	AdminFacade
	ParseToken(token string) (int64, error)
}
