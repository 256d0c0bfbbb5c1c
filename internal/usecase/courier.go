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

// CourierUseCase handles courier applications, admin approval and PIN checks.
type CourierUseCase struct {
	couriers repository.CourierRepository
	requests repository.CourierRequestRepository
	genPIN   CodeGenerator
}

// NewCourierUseCase constructs CourierUseCase.
func NewCourierUseCase(couriers repository.CourierRepository, requests repository.CourierRequestRepository, genPIN CodeGenerator) *CourierUseCase {
	return &CourierUseCase{couriers: couriers, requests: requests, genPIN: genPIN}
}

// Apply records a pending application to become a courier.
func (u *CourierUseCase) Apply(ctx context.Context, name, phoneRaw, area string) (*model.CourierRequest, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(phoneRaw) == "" {
		return nil, fmt.Errorf("%w: nume și telefon sunt obligatorii", domainErrors.ErrValidation)
	}

	phone, err := NormalizePhone(phoneRaw)
	if err != nil {
		return nil, err
	}

	req := &model.CourierRequest{
		ID:     uuid.New(),
		Name:   name,
		Phone:  phone,
		Area:   strings.TrimSpace(area),
		Status: model.CourierRequestPending,
	}
	if err := u.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Requests lists all applications for the admin dashboard, newest first.
func (u *CourierUseCase) Requests(ctx context.Context) ([]model.CourierRequest, error) {
	return u.requests.List(ctx)
}

// Approve generates a fresh PIN and upserts the courier keyed by phone, so
// re-approving the same phone rotates the PIN instead of duplicating the row.
// Returns the PIN for the admin to hand over out-of-band.
func (u *CourierUseCase) Approve(ctx context.Context, requestID uuid.UUID) (string, error) {
	req, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		return "", err
	}

	pin, err := u.genPIN()
	if err != nil {
		return "", err
	}

	courier := &model.Courier{
		Name:   req.Name,
		Phone:  req.Phone,
		PIN:    pin,
		Active: true,
	}
	if err := u.couriers.Upsert(ctx, courier); err != nil {
		return "", err
	}

	if _, err := u.requests.SetStatus(ctx, requestID, model.CourierRequestApproved); err != nil {
		return "", err
	}

	return pin, nil
}

// Reject flips a pending application to rejected. It never touches couriers.
func (u *CourierUseCase) Reject(ctx context.Context, requestID uuid.UUID) error {
	rows, err := u.requests.SetStatus(ctx, requestID, model.CourierRequestRejected)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// ValidatePIN resolves an active courier from a PIN presented as a bearer
// credential. Used only to unmask contact details on public listings.
func (u *CourierUseCase) ValidatePIN(ctx context.Context, pin string) (*model.Courier, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return nil, fmt.Errorf("%w: PIN invalid", domainErrors.ErrUnauthorized)
	}
	courier, err := u.couriers.GetActiveByPIN(ctx, pin)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: PIN greșit sau livrator neaprobat", domainErrors.ErrUnauthorized)
		}
		return nil, err
	}
	return courier, nil
}
