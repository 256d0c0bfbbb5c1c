package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/amvenit/amvenit/internal/adapter/mailer"
	"github.com/amvenit/amvenit/internal/config"
	"github.com/amvenit/amvenit/internal/domain/model"
	"github.com/amvenit/amvenit/internal/notify"
	"github.com/amvenit/amvenit/internal/usecase"
)

// MarketplaceFacade aggregates use cases behind the single surface the HTTP
// layer talks to. It also owns the notification side effects: order emails go
// through the async dispatcher, courier application emails are sent inline so
// the response can report the outcome.
type MarketplaceFacade struct {
	auth       *usecase.AuthUseCase
	orders     *usecase.OrderUseCase
	couriers   *usecase.CourierUseCase
	mail       mailer.Client
	dispatcher *notify.Dispatcher

	baseURL    string
	adminKey   string
	adminEmail string
}

// NewMarketplaceFacade constructs the application facade.
func NewMarketplaceFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	couriers *usecase.CourierUseCase,
	mail mailer.Client,
	dispatcher *notify.Dispatcher,
	cfg *config.Config,
) *MarketplaceFacade {
	return &MarketplaceFacade{
		auth:       auth,
		orders:     orders,
		couriers:   couriers,
		mail:       mail,
		dispatcher: dispatcher,
		baseURL:    cfg.BaseURL,
		adminKey:   cfg.AdminKey,
		adminEmail: cfg.AdminEmail,
	}
}

func (f *MarketplaceFacade) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *MarketplaceFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) ProfileByID(ctx context.Context, userID int64) (*model.Profile, error) {
	return f.auth.ProfileByID(ctx, userID)
}

// CreateOrder persists the order and queues the admin review email.
func (f *MarketplaceFacade) CreateOrder(ctx context.Context, clientID int64, in usecase.CreateOrderInput) (*model.Order, error) {
	order, err := f.orders.Create(ctx, clientID, in)
	if err != nil {
		return nil, err
	}
	f.dispatcher.Enqueue(notify.BuildOrderReviewEmail(f.baseURL, f.adminKey, *order))
	return order, nil
}

func (f *MarketplaceFacade) BrowseOrders(ctx context.Context) ([]model.Order, []model.Order, error) {
	active, err := f.orders.ListActive(ctx)
	if err != nil {
		return nil, nil, err
	}
	completed, err := f.orders.ListCompleted(ctx)
	if err != nil {
		return nil, nil, err
	}
	return active, completed, nil
}

func (f *MarketplaceFacade) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListMine(ctx, userID)
}

func (f *MarketplaceFacade) AcceptOrder(ctx context.Context, orderID uuid.UUID, courierUserID int64) (*model.Order, error) {
	return f.orders.Accept(ctx, orderID, courierUserID)
}

func (f *MarketplaceFacade) DeliverOrder(ctx context.Context, orderID uuid.UUID, courierUserID int64) error {
	return f.orders.Deliver(ctx, orderID, courierUserID)
}

func (f *MarketplaceFacade) CancelOrder(ctx context.Context, orderID uuid.UUID, userID int64, note string) error {
	return f.orders.Cancel(ctx, orderID, userID, note)
}

// NotifyOrder re-queues the admin review email for an existing order.
func (f *MarketplaceFacade) NotifyOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	f.dispatcher.Enqueue(notify.BuildOrderReviewEmail(f.baseURL, f.adminKey, *order))
	return nil
}

// SubmitCourierRequest stores the application and emails the admin inline.
// Email failure never fails the application, it is only reported.
func (f *MarketplaceFacade) SubmitCourierRequest(ctx context.Context, name, phone, area string) (*model.CourierRequest, bool, string, error) {
	req, err := f.couriers.Apply(ctx, name, phone, area)
	if err != nil {
		return nil, false, "", err
	}

	if f.adminEmail == "" {
		return req, false, "admin email not configured", nil
	}

	msg := notify.BuildCourierRequestEmail(*req)
	msg.To = f.adminEmail
	if err := f.mail.Send(ctx, msg); err != nil {
		return req, false, err.Error(), nil
	}
	return req, true, "", nil
}

func (f *MarketplaceFacade) ValidateCourierPIN(ctx context.Context, pin string) (*model.Courier, error) {
	return f.couriers.ValidatePIN(ctx, pin)
}

func (f *MarketplaceFacade) UnverifiedOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListUnverified(ctx)
}

func (f *MarketplaceFacade) VerifyOrderPhone(ctx context.Context, orderID uuid.UUID) error {
	return f.orders.VerifyPhone(ctx, orderID)
}

func (f *MarketplaceFacade) RejectOrder(ctx context.Context, orderID uuid.UUID) error {
	return f.orders.Reject(ctx, orderID)
}

func (f *MarketplaceFacade) CourierRequests(ctx context.Context) ([]model.CourierRequest, error) {
	return f.couriers.Requests(ctx)
}

func (f *MarketplaceFacade) ApproveCourierRequest(ctx context.Context, requestID uuid.UUID) (string, error) {
	return f.couriers.Approve(ctx, requestID)
}

func (f *MarketplaceFacade) RejectCourierRequest(ctx context.Context, requestID uuid.UUID) error {
	return f.couriers.Reject(ctx, requestID)
}
