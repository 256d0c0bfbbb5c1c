package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"go.uber.org/fx/fxtest"

	domainErrors "github.com/amvenit/amvenit/internal/domain/errors"
	"github.com/amvenit/amvenit/internal/domain/model"
)

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}
	return storage, mock
}

func expectSchema(mock pgxmockv3.PgxPoolIface) {
	tableStatements := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE TABLE IF NOT EXISTS profiles",
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS couriers",
		"CREATE TABLE IF NOT EXISTS courier_requests",
	}
	for _, stmt := range tableStatements {
		mock.ExpectExec(stmt).WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	}
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_status").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_client").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_accepted_by").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
}

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("parse error", func(t *testing.T) {
		if _, err := New(context.Background(), ":://bad", logger); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("schema init", func(t *testing.T) {
		mock, err := pgxmockv3.NewPool()
		if err != nil {
			t.Fatalf("mock pool: %v", err)
		}
		original := newPgxPool
		newPgxPool = func(context.Context, string) (pgxPool, error) { return mock, nil }
		defer func() { newPgxPool = original }()

		expectSchema(mock)
		storage, err := New(context.Background(), "postgres://localhost/amvenit", logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if storage == nil {
			t.Fatal("expected storage")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations: %v", err)
		}
	})

	t.Run("schema failure closes pool", func(t *testing.T) {
		mock, err := pgxmockv3.NewPool()
		if err != nil {
			t.Fatalf("mock pool: %v", err)
		}
		original := newPgxPool
		newPgxPool = func(context.Context, string) (pgxPool, error) { return mock, nil }
		defer func() { newPgxPool = original }()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("boom"))
		mock.ExpectClose()
		if _, err := New(context.Background(), "postgres://localhost/amvenit", logger); err == nil {
			t.Fatal("expected error")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations: %v", err)
		}
	})
}

func TestUserRepository_Create(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Users()

	t.Run("success", func(t *testing.T) {
		rows := pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now())
		mock.ExpectQuery("INSERT INTO users").WithArgs("maria", "hash").WillReturnRows(rows)

		user, err := repo.Create(context.Background(), "maria", "hash")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != 1 || user.Login != "maria" {
			t.Errorf("unexpected user %+v", user)
		}
	})

	t.Run("duplicate login", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").WithArgs("maria", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		if _, err := repo.Create(context.Background(), "maria", "hash"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepository_GetByLogin(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Users()

	mock.ExpectQuery("SELECT id, login, password_hash, created_at FROM users WHERE login").
		WithArgs("nimeni").WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByLogin(context.Background(), "nimeni"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestProfileRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Profiles()

	t.Run("upsert", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO profiles").
			WithArgs(int64(1), model.RoleClient, "Maria", "+40745000111", nil).
			WillReturnResult(pgxmockv3.NewResult("INSERT", 1))

		err := repo.Upsert(context.Background(), &model.Profile{
			UserID: 1, Role: model.RoleClient, FullName: "Maria", Phone: "+40745000111",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("update contact missing", func(t *testing.T) {
		mock.ExpectExec("UPDATE profiles SET full_name").
			WithArgs(int64(9), "Ion", "+40740123456").
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))

		if err := repo.UpdateContact(context.Background(), 9, "Ion", "+40740123456"); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()
	id := uuid.New()
	clientID := int64(7)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(id, "pâine", "Ion", "Str. Morii 4", "+40740123456", false, model.OrderStatusActive, &clientID, "123456").
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at"}).AddRow(now))

	order := &model.Order{
		ID: id, What: "pâine", Name: "Ion", Address: "Str. Morii 4",
		Phone: "+40740123456", Status: model.OrderStatusActive,
		ClientID: &clientID, VerifyCode: "123456",
	}
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !order.CreatedAt.Equal(now) {
		t.Error("create must populate created_at")
	}

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmockv3.NewRows([]string{
			"id", "created_at", "what", "name", "address", "phone", "urgent", "status",
			"client_id", "accepted_by_id", "accepted_by_name", "accepted_by_phone",
			"accepted_at", "cancelled_at", "cancel_reason", "cancel_note",
			"phone_verified", "verify_code",
		}).AddRow(
			id, now, "pâine", "Ion", "Str. Morii 4", "+40740123456", false, model.OrderStatusActive,
			&clientID, nil, nil, nil,
			nil, nil, nil, nil,
			false, "123456",
		))

	stored, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.What != "pâine" || stored.Status != model.OrderStatusActive {
		t.Errorf("unexpected order %+v", stored)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestOrderRepository_GuardedTransitions(t *testing.T) {
	id := uuid.New()
	snapshot := model.CourierSnapshot{ID: 100, Name: "Curier", Phone: "+40740000002"}

	t.Run("accept wins", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectExec("UPDATE orders").
			WithArgs(id, snapshot.ID, snapshot.Name, snapshot.Phone).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

		rows, err := storage.Orders().Accept(context.Background(), id, snapshot)
		if err != nil {
			t.Fatalf("accept: %v", err)
		}
		if rows != 1 {
			t.Errorf("rows = %d, want 1", rows)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations: %v", err)
		}
	})

	t.Run("accept guard fails", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectExec("UPDATE orders").
			WithArgs(id, snapshot.ID, snapshot.Name, snapshot.Phone).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))

		rows, err := storage.Orders().Accept(context.Background(), id, snapshot)
		if err != nil {
			t.Fatalf("accept: %v", err)
		}
		if rows != 0 {
			t.Errorf("rows = %d, want 0", rows)
		}
	})

	t.Run("complete", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectExec("UPDATE orders").
			WithArgs(id, int64(100)).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

		rows, err := storage.Orders().Complete(context.Background(), id, 100)
		if err != nil || rows != 1 {
			t.Fatalf("complete: rows=%d err=%v", rows, err)
		}
	})

	t.Run("cancel by client", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectExec("UPDATE orders").
			WithArgs(id, int64(7)).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

		rows, err := storage.Orders().CancelByClient(context.Background(), id, 7)
		if err != nil || rows != 1 {
			t.Fatalf("cancel: rows=%d err=%v", rows, err)
		}
	})

	t.Run("cancel by courier", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectExec("UPDATE orders").
			WithArgs(id, int64(100), "client de negăsit").
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

		rows, err := storage.Orders().CancelByCourier(context.Background(), id, 100, "client de negăsit")
		if err != nil || rows != 1 {
			t.Fatalf("cancel: rows=%d err=%v", rows, err)
		}
	})

	t.Run("set phone verified", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectExec("UPDATE orders SET phone_verified").
			WithArgs(id).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

		rows, err := storage.Orders().SetPhoneVerified(context.Background(), id)
		if err != nil || rows != 1 {
			t.Fatalf("verify: rows=%d err=%v", rows, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectExec("DELETE FROM orders").
			WithArgs(id).
			WillReturnResult(pgxmockv3.NewResult("DELETE", 1))

		rows, err := storage.Orders().Delete(context.Background(), id)
		if err != nil || rows != 1 {
			t.Fatalf("delete: rows=%d err=%v", rows, err)
		}
	})
}

func TestCourierRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Couriers()
	now := time.Now()

	t.Run("upsert assigns id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO couriers").
			WithArgs("Vasile", "+40740123456", "654321", true).
			WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))

		courier := &model.Courier{Name: "Vasile", Phone: "+40740123456", PIN: "654321", Active: true}
		if err := repo.Upsert(context.Background(), courier); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if courier.ID != 5 {
			t.Errorf("id = %d, want 5", courier.ID)
		}
	})

	t.Run("get active by pin missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, phone, pin, active, created_at FROM couriers WHERE pin").
			WithArgs("000000").WillReturnError(pgx.ErrNoRows)

		if _, err := repo.GetActiveByPIN(context.Background(), "000000"); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCourierRequestRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.CourierRequests()
	id := uuid.New()
	now := time.Now()

	t.Run("create", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO courier_requests").
			WithArgs(id, "Vasile", "+40740123456", "Centru", model.CourierRequestPending).
			WillReturnRows(pgxmockv3.NewRows([]string{"created_at"}).AddRow(now))

		req := &model.CourierRequest{ID: id, Name: "Vasile", Phone: "+40740123456", Area: "Centru", Status: model.CourierRequestPending}
		if err := repo.Create(context.Background(), req); err != nil {
			t.Fatalf("create: %v", err)
		}
	})

	t.Run("set status missing", func(t *testing.T) {
		mock.ExpectExec("UPDATE courier_requests SET status").
			WithArgs(id, model.CourierRequestRejected).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))

		rows, err := repo.SetStatus(context.Background(), id, model.CourierRequestRejected)
		if err != nil {
			t.Fatalf("set status: %v", err)
		}
		if rows != 0 {
			t.Errorf("rows = %d, want 0", rows)
		}
	})

	t.Run("list", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, created_at, name, phone, area, status FROM courier_requests").
			WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at", "name", "phone", "area", "status"}).
				AddRow(id, now, "Vasile", "+40740123456", "Centru", model.CourierRequestPending))

		requests, err := repo.List(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(requests) != 1 || requests[0].Name != "Vasile" {
			t.Errorf("unexpected requests %+v", requests)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRegisterLifecycle(t *testing.T) {
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}

	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, storage)

	mock.ExpectPing()
	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	mock.ExpectClose()
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
