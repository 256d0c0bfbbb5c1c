package usecase_test

import (
	. "github.com/amvenit/amvenit/internal/usecase"

	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/amvenit/amvenit/internal/domain/errors"
	"github.com/amvenit/amvenit/internal/domain/model"
	pkgAuth "github.com/amvenit/amvenit/internal/pkg/auth"
	"github.com/amvenit/amvenit/internal/test"
)

func newCourierFixture(t *testing.T) (*CourierUseCase, *test.CourierRepositoryStub, *test.CourierRequestRepositoryStub) {
	t.Helper()
	couriers := test.NewCourierRepositoryStub()
	requests := test.NewCourierRequestRepositoryStub()
	uc := NewCourierUseCase(couriers, requests, pkgAuth.GeneratePIN)
	return uc, couriers, requests
}

func TestCourierUseCase_Apply(t *testing.T) {
	tests := []struct {
		name    string
		reqName string
		phone   string
		area    string
		wantErr error
	}{
		{name: "valid", reqName: "Vasile Luca", phone: "0740123456", area: "Centru"},
		{name: "missing name", phone: "0740123456", wantErr: domainErrors.ErrValidation},
		{name: "missing phone", reqName: "Vasile Luca", wantErr: domainErrors.ErrValidation},
		{name: "bad phone", reqName: "Vasile Luca", phone: "0312345678", wantErr: domainErrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, requests := newCourierFixture(t)
			req, err := uc.Apply(context.Background(), tt.reqName, tt.phone, tt.area)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Status != model.CourierRequestPending {
				t.Errorf("status = %q, want pending", req.Status)
			}
			if req.Phone != "+40740123456" {
				t.Errorf("phone = %q, want normalized", req.Phone)
			}
			if _, err := requests.GetByID(context.Background(), req.ID); err != nil {
				t.Errorf("application must be persisted: %v", err)
			}
		})
	}
}

func TestCourierUseCase_ApproveIssuesPIN(t *testing.T) {
	uc, couriers, requests := newCourierFixture(t)

	req, err := uc.Apply(context.Background(), "Vasile Luca", "0740123456", "Centru")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	pin, err := uc.Approve(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !regexp.MustCompile(`^[1-9]\d{5}$`).MatchString(pin) {
		t.Fatalf("pin %q must be six digits without leading zero", pin)
	}

	courier, err := couriers.GetByPhone(context.Background(), "+40740123456")
	if err != nil {
		t.Fatalf("courier lookup: %v", err)
	}
	if !courier.Active || courier.PIN != pin {
		t.Errorf("courier must be active with issued PIN")
	}

	stored, err := requests.GetByID(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("request lookup: %v", err)
	}
	if stored.Status != model.CourierRequestApproved {
		t.Errorf("request status = %q, want approved", stored.Status)
	}
}

func TestCourierUseCase_ReapproveRotatesPIN(t *testing.T) {
	uc, couriers, _ := newCourierFixture(t)

	first, err := uc.Apply(context.Background(), "Vasile Luca", "0740123456", "Centru")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := uc.Approve(context.Background(), first.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	second, err := uc.Apply(context.Background(), "Vasile L.", "0740123456", "Gară")
	if err != nil {
		t.Fatalf("reapply: %v", err)
	}
	pin2, err := uc.Approve(context.Background(), second.ID)
	if err != nil {
		t.Fatalf("reapprove: %v", err)
	}

	if len(couriers.ByPhone) != 1 {
		t.Fatalf("couriers = %d, want one row per phone", len(couriers.ByPhone))
	}
	courier, _ := couriers.GetByPhone(context.Background(), "+40740123456")
	if courier.PIN != pin2 {
		t.Errorf("reapproval must rotate to the fresh PIN")
	}
	if courier.Name != "Vasile L." {
		t.Errorf("reapproval must refresh the courier name")
	}
}

func TestCourierUseCase_Reject(t *testing.T) {
	uc, couriers, requests := newCourierFixture(t)

	req, err := uc.Apply(context.Background(), "Vasile Luca", "0740123456", "Centru")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if err := uc.Reject(context.Background(), req.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	stored, _ := requests.GetByID(context.Background(), req.ID)
	if stored.Status != model.CourierRequestRejected {
		t.Errorf("status = %q, want rejected", stored.Status)
	}
	if len(couriers.ByPhone) != 0 {
		t.Error("rejection must never create a courier")
	}

	if err := uc.Reject(context.Background(), uuid.New()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("reject missing: expected ErrNotFound, got %v", err)
	}
}

func TestCourierUseCase_ValidatePIN(t *testing.T) {
	uc, couriers, _ := newCourierFixture(t)

	req, err := uc.Apply(context.Background(), "Vasile Luca", "0740123456", "Centru")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	pin, err := uc.Approve(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	courier, err := uc.ValidatePIN(context.Background(), " "+pin+" ")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if courier.Phone != "+40740123456" {
		t.Errorf("courier phone = %q", courier.Phone)
	}

	if _, err := uc.ValidatePIN(context.Background(), ""); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("empty PIN: expected ErrUnauthorized, got %v", err)
	}
	if _, err := uc.ValidatePIN(context.Background(), "000000"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("wrong PIN: expected ErrUnauthorized, got %v", err)
	}

	stored := couriers.ByPhone["+40740123456"]
	stored.Active = false
	if _, err := uc.ValidatePIN(context.Background(), pin); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("inactive courier: expected ErrUnauthorized, got %v", err)
	}
}
