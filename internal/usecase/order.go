package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/amvenit/amvenit/internal/domain/errors"
	"github.com/amvenit/amvenit/internal/domain/model"
	"github.com/amvenit/amvenit/internal/domain/repository"
)

// CodeGenerator produces the random 6-digit codes used for order verify codes
// and courier PINs.
type CodeGenerator func() (string, error)

// OrderUseCase owns the order lifecycle state machine. It is the only path
// that mutates Order.status: every transition goes through a guarded
// conditional update in the repository, and a zero-rows outcome is classified
// here into NotFound, Conflict or Unauthorized.
//
//	active ──> accepted ──> completed
//	   │            │
//	   └────────────┴──> cancelled
type OrderUseCase struct {
	orders   repository.OrderRepository
	profiles repository.ProfileRepository
	genCode  CodeGenerator
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, profiles repository.ProfileRepository, genCode CodeGenerator) *OrderUseCase {
	return &OrderUseCase{orders: orders, profiles: profiles, genCode: genCode}
}

// CreateOrderInput carries the client-submitted request fields.
type CreateOrderInput struct {
	What    string
	Address string
	Name    string
	Phone   string
	Urgent  bool
}

// Create validates and persists a new delivery request in the active state.
// Name and phone fall back to the client's profile; when the profile lacks
// them, the submitted values are saved back onto it.
func (u *OrderUseCase) Create(ctx context.Context, clientID int64, in CreateOrderInput) (*model.Order, error) {
	what := strings.TrimSpace(in.What)
	address := strings.TrimSpace(in.Address)
	if what == "" || address == "" {
		return nil, fmt.Errorf("%w: completează câmpurile obligatorii (ce ai nevoie + adresă)", domainErrors.ErrValidation)
	}

	profile, err := u.profiles.GetByUserID(ctx, clientID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	phoneRaw := strings.TrimSpace(in.Phone)
	if profile != nil {
		if strings.TrimSpace(profile.FullName) != "" {
			name = strings.TrimSpace(profile.FullName)
		}
		if phoneRaw == "" {
			phoneRaw = strings.TrimSpace(profile.Phone)
		}
	}
	if name == "" || phoneRaw == "" {
		return nil, fmt.Errorf("%w: completează nume și telefon", domainErrors.ErrValidation)
	}

	phone, err := NormalizePhone(phoneRaw)
	if err != nil {
		return nil, err
	}

	code, err := u.genCode()
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:         uuid.New(),
		What:       what,
		Name:       name,
		Address:    address,
		Phone:      phone,
		Urgent:     in.Urgent,
		Status:     model.OrderStatusActive,
		ClientID:   &clientID,
		VerifyCode: code,
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	// Backfill profile contact details, best-effort.
	if profile != nil && (strings.TrimSpace(profile.FullName) == "" || strings.TrimSpace(profile.Phone) == "") {
		_ = u.profiles.UpdateContact(ctx, clientID, name, phone)
	}

	return order, nil
}

// Get fetches a single order.
func (u *OrderUseCase) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// ListActive returns orders waiting for a courier, newest first.
func (u *OrderUseCase) ListActive(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListActive(ctx)
}

// ListCompleted returns delivered orders, newest first.
func (u *OrderUseCase) ListCompleted(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListCompleted(ctx)
}

// ListMine returns orders the user posted or accepted.
func (u *OrderUseCase) ListMine(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByParticipant(ctx, userID)
}

// ListUnverified returns active orders whose phone awaits admin confirmation.
func (u *OrderUseCase) ListUnverified(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListUnverified(ctx)
}

// Accept claims an active order for the calling courier. The write is a
// single atomic conditional update; when the guard no longer holds the caller
// gets Conflict ("already taken"), not a generic failure.
func (u *OrderUseCase) Accept(ctx context.Context, orderID uuid.UUID, courierUserID int64) (*model.Order, error) {
	courier, err := u.requireCourier(ctx, courierUserID)
	if err != nil {
		return nil, err
	}

	rows, err := u.orders.Accept(ctx, orderID, *courier)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		if _, err := u.orders.GetByID(ctx, orderID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: comanda a fost deja acceptată de altcineva", domainErrors.ErrConflict)
	}

	return u.orders.GetByID(ctx, orderID)
}

// Deliver marks an accepted order completed. Only its accepting courier may
// trigger the transition.
func (u *OrderUseCase) Deliver(ctx context.Context, orderID uuid.UUID, courierUserID int64) error {
	rows, err := u.orders.Complete(ctx, orderID, courierUserID)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	return u.classifyCourierGuardFailure(ctx, orderID, courierUserID)
}

// Cancel routes a cancellation to the client or courier transition depending
// on the caller's relation to the order.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID uuid.UUID, userID int64, note string) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.AcceptedByID != nil && *order.AcceptedByID == userID {
		return u.CancelByCourier(ctx, orderID, userID, note)
	}
	return u.CancelByClient(ctx, orderID, userID)
}

// CancelByClient cancels an active order owned by the client. No reason is
// required.
func (u *OrderUseCase) CancelByClient(ctx context.Context, orderID uuid.UUID, clientID int64) error {
	rows, err := u.orders.CancelByClient(ctx, orderID, clientID)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.ClientID == nil || *order.ClientID != clientID {
		return fmt.Errorf("%w: doar clientul care a postat cererea o poate anula", domainErrors.ErrUnauthorized)
	}
	return fmt.Errorf("%w: comanda nu mai este activă", domainErrors.ErrConflict)
}

// CancelByCourier cancels an accepted order with a free-text reason of at
// least 3 characters. Only the accepting courier may trigger it.
func (u *OrderUseCase) CancelByCourier(ctx context.Context, orderID uuid.UUID, courierUserID int64, note string) error {
	note = strings.TrimSpace(note)
	if len(note) < 3 {
		return fmt.Errorf("%w: scrie un motiv de anulare (minim 3 caractere)", domainErrors.ErrValidation)
	}

	rows, err := u.orders.CancelByCourier(ctx, orderID, courierUserID, note)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	return u.classifyCourierGuardFailure(ctx, orderID, courierUserID)
}

// VerifyPhone marks the order's phone as confirmed by the admin.
func (u *OrderUseCase) VerifyPhone(ctx context.Context, orderID uuid.UUID) error {
	rows, err := u.orders.SetPhoneVerified(ctx, orderID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// Reject removes an order entirely (admin-only, used for unverified spam).
func (u *OrderUseCase) Reject(ctx context.Context, orderID uuid.UUID) error {
	rows, err := u.orders.Delete(ctx, orderID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (u *OrderUseCase) requireCourier(ctx context.Context, userID int64) (*model.CourierSnapshot, error) {
	profile, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: doar livratorii aprobați pot accepta comenzi", domainErrors.ErrUnauthorized)
		}
		return nil, err
	}
	if profile.Role != model.RoleCourier {
		return nil, fmt.Errorf("%w: doar livratorii aprobați pot accepta comenzi", domainErrors.ErrUnauthorized)
	}
	return &model.CourierSnapshot{ID: userID, Name: profile.FullName, Phone: profile.Phone}, nil
}

// classifyCourierGuardFailure explains a zero-rows courier transition: the
// order is missing, belongs to another courier, or left the accepted state.
func (u *OrderUseCase) classifyCourierGuardFailure(ctx context.Context, orderID uuid.UUID, courierUserID int64) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.AcceptedByID == nil || *order.AcceptedByID != courierUserID {
		return fmt.Errorf("%w: comanda nu este acceptată de tine", domainErrors.ErrUnauthorized)
	}
	return fmt.Errorf("%w: comanda nu mai este în starea acceptată", domainErrors.ErrConflict)
}
