package test

import (
	"context"

	"github.com/google/uuid"

	"github.com/amvenit/amvenit/internal/domain/model"
	"github.com/amvenit/amvenit/internal/usecase"
)

// AuthFacadeStub lets handler tests script auth behaviour per call. Unset
// functions fall back to benign defaults.
type AuthFacadeStub struct {
	RegisterFn     func(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error)
	AuthenticateFn func(ctx context.Context, login, password string) (*model.User, string, error)
	ProfileByIDFn  func(ctx context.Context, userID int64) (*model.Profile, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: 1, Login: in.Login}, "session-token", nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.User{ID: 1, Login: login}, "session-token", nil
}

func (s AuthFacadeStub) ProfileByID(ctx context.Context, userID int64) (*model.Profile, error) {
	if s.ProfileByIDFn != nil {
		return s.ProfileByIDFn(ctx, userID)
	}
	return &model.Profile{UserID: userID, Role: model.RoleClient}, nil
}

// OrderFacadeStub lets handler tests script order behaviour per call.
type OrderFacadeStub struct {
	CreateOrderFn  func(ctx context.Context, clientID int64, in usecase.CreateOrderInput) (*model.Order, error)
	BrowseOrdersFn func(ctx context.Context) ([]model.Order, []model.Order, error)
	MyOrdersFn     func(ctx context.Context, userID int64) ([]model.Order, error)
	AcceptOrderFn  func(ctx context.Context, orderID uuid.UUID, courierUserID int64) (*model.Order, error)
	DeliverOrderFn func(ctx context.Context, orderID uuid.UUID, courierUserID int64) error
	CancelOrderFn  func(ctx context.Context, orderID uuid.UUID, userID int64, note string) error
	NotifyOrderFn  func(ctx context.Context, orderID uuid.UUID) error
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, clientID int64, in usecase.CreateOrderInput) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, clientID, in)
	}
	return &model.Order{ID: uuid.New(), Status: model.OrderStatusActive}, nil
}

func (s OrderFacadeStub) BrowseOrders(ctx context.Context) ([]model.Order, []model.Order, error) {
	if s.BrowseOrdersFn != nil {
		return s.BrowseOrdersFn(ctx)
	}
	return nil, nil, nil
}

func (s OrderFacadeStub) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.MyOrdersFn != nil {
		return s.MyOrdersFn(ctx, userID)
	}
	return nil, nil
}

func (s OrderFacadeStub) AcceptOrder(ctx context.Context, orderID uuid.UUID, courierUserID int64) (*model.Order, error) {
	if s.AcceptOrderFn != nil {
		return s.AcceptOrderFn(ctx, orderID, courierUserID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusAccepted}, nil
}

func (s OrderFacadeStub) DeliverOrder(ctx context.Context, orderID uuid.UUID, courierUserID int64) error {
	if s.DeliverOrderFn != nil {
		return s.DeliverOrderFn(ctx, orderID, courierUserID)
	}
	return nil
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID uuid.UUID, userID int64, note string) error {
	if s.CancelOrderFn != nil {
		return s.CancelOrderFn(ctx, orderID, userID, note)
	}
	return nil
}

func (s OrderFacadeStub) NotifyOrder(ctx context.Context, orderID uuid.UUID) error {
	if s.NotifyOrderFn != nil {
		return s.NotifyOrderFn(ctx, orderID)
	}
	return nil
}

// CourierFacadeStub lets handler tests script courier application behaviour.
type CourierFacadeStub struct {
	SubmitCourierRequestFn func(ctx context.Context, name, phone, area string) (*model.CourierRequest, bool, string, error)
	ValidateCourierPINFn   func(ctx context.Context, pin string) (*model.Courier, error)
}

func (s CourierFacadeStub) SubmitCourierRequest(ctx context.Context, name, phone, area string) (*model.CourierRequest, bool, string, error) {
	if s.SubmitCourierRequestFn != nil {
		return s.SubmitCourierRequestFn(ctx, name, phone, area)
	}
	return &model.CourierRequest{ID: uuid.New(), Name: name, Phone: phone, Area: area, Status: model.CourierRequestPending}, true, "", nil
}

func (s CourierFacadeStub) ValidateCourierPIN(ctx context.Context, pin string) (*model.Courier, error) {
	if s.ValidateCourierPINFn != nil {
		return s.ValidateCourierPINFn(ctx, pin)
	}
	return &model.Courier{ID: 1, PIN: pin, Active: true}, nil
}

// AdminFacadeStub lets handler tests script admin moderation behaviour.
type AdminFacadeStub struct {
	UnverifiedOrdersFn      func(ctx context.Context) ([]model.Order, error)
	VerifyOrderPhoneFn      func(ctx context.Context, orderID uuid.UUID) error
	RejectOrderFn           func(ctx context.Context, orderID uuid.UUID) error
	CourierRequestsFn       func(ctx context.Context) ([]model.CourierRequest, error)
	ApproveCourierRequestFn func(ctx context.Context, requestID uuid.UUID) (string, error)
	RejectCourierRequestFn  func(ctx context.Context, requestID uuid.UUID) error
}

func (s AdminFacadeStub) UnverifiedOrders(ctx context.Context) ([]model.Order, error) {
	if s.UnverifiedOrdersFn != nil {
		return s.UnverifiedOrdersFn(ctx)
	}
	return nil, nil
}

func (s AdminFacadeStub) VerifyOrderPhone(ctx context.Context, orderID uuid.UUID) error {
	if s.VerifyOrderPhoneFn != nil {
		return s.VerifyOrderPhoneFn(ctx, orderID)
	}
	return nil
}

func (s AdminFacadeStub) RejectOrder(ctx context.Context, orderID uuid.UUID) error {
	if s.RejectOrderFn != nil {
		return s.RejectOrderFn(ctx, orderID)
	}
	return nil
}

func (s AdminFacadeStub) CourierRequests(ctx context.Context) ([]model.CourierRequest, error) {
	if s.CourierRequestsFn != nil {
		return s.CourierRequestsFn(ctx)
	}
	return nil, nil
}

func (s AdminFacadeStub) ApproveCourierRequest(ctx context.Context, requestID uuid.UUID) (string, error) {
	if s.ApproveCourierRequestFn != nil {
		return s.ApproveCourierRequestFn(ctx, requestID)
	}
	return "123456", nil
}

func (s AdminFacadeStub) RejectCourierRequest(ctx context.Context, requestID uuid.UUID) error {
	if s.RejectCourierRequestFn != nil {
		return s.RejectCourierRequestFn(ctx, requestID)
	}
	return nil
}

// MarketplaceFacadeStub aggregates the per-area stubs into a full facade for
// router-level tests.
type MarketplaceFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	CourierFacadeStub
	AdminFacadeStub
	ParseTokenFn func(token string) (int64, error)
}

func (s MarketplaceFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return 1, nil
}
