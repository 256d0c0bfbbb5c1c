package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/amvenit/amvenit/internal/domain/errors"
	"github.com/amvenit/amvenit/internal/domain/model"
	"github.com/amvenit/amvenit/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage needs. Tests substitute a
// pgxmock pool through it.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, dsn string) (pgxPool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return pool, nil
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type profileRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type courierRepository struct {
	storage *Storage
}

type courierRequestRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	pool, err := newPgxPool(ctx, dsn)
	if err != nil {
		return nil, err
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Profiles() repository.ProfileRepository {
	return &profileRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Couriers() repository.CourierRepository {
	return &courierRepository{storage: s}
}

func (s *Storage) CourierRequests() repository.CourierRequestRepository {
	return &courierRequestRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS profiles (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            role TEXT NOT NULL,
            full_name TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            vehicle_plate TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            what TEXT NOT NULL,
            name TEXT NOT NULL,
            address TEXT NOT NULL,
            phone TEXT NOT NULL,
            urgent BOOLEAN NOT NULL DEFAULT FALSE,
            status TEXT NOT NULL DEFAULT 'active',
            client_id BIGINT REFERENCES users(id),
            accepted_by_id BIGINT,
            accepted_by_name TEXT,
            accepted_by_phone TEXT,
            accepted_at TIMESTAMPTZ,
            cancelled_at TIMESTAMPTZ,
            cancel_reason TEXT,
            cancel_note TEXT,
            phone_verified BOOLEAN NOT NULL DEFAULT FALSE,
            verify_code TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS couriers (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            phone TEXT UNIQUE NOT NULL,
            pin TEXT NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS courier_requests (
            id UUID PRIMARY KEY,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            name TEXT NOT NULL,
            phone TEXT NOT NULL,
            area TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'pending'
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_client ON orders(client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_accepted_by ON orders(accepted_by_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- ProfileRepository implementation ---

func (r *profileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	const query = `INSERT INTO profiles (user_id, role, full_name, phone, vehicle_plate)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (user_id) DO UPDATE
                   SET role = EXCLUDED.role,
                       full_name = EXCLUDED.full_name,
                       phone = EXCLUDED.phone,
                       vehicle_plate = EXCLUDED.vehicle_plate`
	_, err := r.storage.pool.Exec(ctx, query, profile.UserID, profile.Role, profile.FullName, profile.Phone, profile.VehiclePlate)
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	const query = `SELECT user_id, role, full_name, phone, vehicle_plate FROM profiles WHERE user_id=$1`
	var p model.Profile
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.Role, &p.FullName, &p.Phone, &p.VehiclePlate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) UpdateContact(ctx context.Context, userID int64, fullName, phone string) error {
	const query = `UPDATE profiles SET full_name=$2, phone=$3 WHERE user_id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, userID, fullName, phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, created_at, what, name, address, phone, urgent, status,
                      client_id, accepted_by_id, accepted_by_name, accepted_by_phone,
                      accepted_at, cancelled_at, cancel_reason, cancel_note,
                      phone_verified, verify_code`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.CreatedAt, &o.What, &o.Name, &o.Address, &o.Phone, &o.Urgent, &o.Status,
		&o.ClientID, &o.AcceptedByID, &o.AcceptedByName, &o.AcceptedByPhone,
		&o.AcceptedAt, &o.CancelledAt, &o.CancelReason, &o.CancelNote,
		&o.PhoneVerified, &o.VerifyCode,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const query = `INSERT INTO orders (id, what, name, address, phone, urgent, status, client_id, verify_code)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING created_at`
	return r.storage.pool.QueryRow(ctx, query,
		order.ID, order.What, order.Name, order.Address, order.Phone,
		order.Urgent, order.Status, order.ClientID, order.VerifyCode,
	).Scan(&order.CreatedAt)
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListActive(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE status='active' ORDER BY created_at DESC`
	return r.listOrders(ctx, query)
}

func (r *orderRepository) ListCompleted(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE status='completed' ORDER BY created_at DESC`
	return r.listOrders(ctx, query)
}

func (r *orderRepository) ListByParticipant(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE client_id=$1 OR accepted_by_id=$1 ORDER BY created_at DESC`
	return r.listOrders(ctx, query, userID)
}

func (r *orderRepository) ListUnverified(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE status='active' AND phone_verified=FALSE ORDER BY created_at DESC`
	return r.listOrders(ctx, query)
}

func (r *orderRepository) Accept(ctx context.Context, id uuid.UUID, courier model.CourierSnapshot) (int64, error) {
	const query = `UPDATE orders
                   SET status='accepted', accepted_by_id=$2, accepted_by_name=$3,
                       accepted_by_phone=$4, accepted_at=NOW()
                   WHERE id=$1 AND status='active' AND accepted_by_id IS NULL`
	tag, err := r.storage.pool.Exec(ctx, query, id, courier.ID, courier.Name, courier.Phone)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) Complete(ctx context.Context, id uuid.UUID, courierID int64) (int64, error) {
	const query = `UPDATE orders SET status='completed'
                   WHERE id=$1 AND status='accepted' AND accepted_by_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, courierID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) CancelByClient(ctx context.Context, id uuid.UUID, clientID int64) (int64, error) {
	const query = `UPDATE orders SET status='cancelled', cancelled_at=NOW(), cancel_reason='client'
                   WHERE id=$1 AND status='active' AND client_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, clientID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) CancelByCourier(ctx context.Context, id uuid.UUID, courierID int64, note string) (int64, error) {
	const query = `UPDATE orders SET status='cancelled', cancelled_at=NOW(), cancel_reason='courier', cancel_note=$3
                   WHERE id=$1 AND status='accepted' AND accepted_by_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, courierID, note)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) SetPhoneVerified(ctx context.Context, id uuid.UUID) (int64, error) {
	const query = `UPDATE orders SET phone_verified=TRUE WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	const query = `DELETE FROM orders WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// --- CourierRepository implementation ---

func (r *courierRepository) Upsert(ctx context.Context, courier *model.Courier) error {
	const query = `INSERT INTO couriers (name, phone, pin, active)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (phone) DO UPDATE
                   SET name = EXCLUDED.name,
                       pin = EXCLUDED.pin,
                       active = EXCLUDED.active
                   RETURNING id, created_at`
	return r.storage.pool.QueryRow(ctx, query, courier.Name, courier.Phone, courier.PIN, courier.Active).
		Scan(&courier.ID, &courier.CreatedAt)
}

func (r *courierRepository) GetActiveByPIN(ctx context.Context, pin string) (*model.Courier, error) {
	const query = `SELECT id, name, phone, pin, active, created_at FROM couriers WHERE pin=$1 AND active=TRUE`
	var c model.Courier
	err := r.storage.pool.QueryRow(ctx, query, pin).Scan(&c.ID, &c.Name, &c.Phone, &c.PIN, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *courierRepository) GetByPhone(ctx context.Context, phone string) (*model.Courier, error) {
	const query = `SELECT id, name, phone, pin, active, created_at FROM couriers WHERE phone=$1`
	var c model.Courier
	err := r.storage.pool.QueryRow(ctx, query, phone).Scan(&c.ID, &c.Name, &c.Phone, &c.PIN, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// --- CourierRequestRepository implementation ---

func (r *courierRequestRepository) Create(ctx context.Context, req *model.CourierRequest) error {
	const query = `INSERT INTO courier_requests (id, name, phone, area, status)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING created_at`
	return r.storage.pool.QueryRow(ctx, query, req.ID, req.Name, req.Phone, req.Area, req.Status).
		Scan(&req.CreatedAt)
}

func (r *courierRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CourierRequest, error) {
	const query = `SELECT id, created_at, name, phone, area, status FROM courier_requests WHERE id=$1`
	var req model.CourierRequest
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&req.ID, &req.CreatedAt, &req.Name, &req.Phone, &req.Area, &req.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *courierRequestRepository) List(ctx context.Context) ([]model.CourierRequest, error) {
	const query = `SELECT id, created_at, name, phone, area, status FROM courier_requests ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CourierRequest
	for rows.Next() {
		var req model.CourierRequest
		if err := rows.Scan(&req.ID, &req.CreatedAt, &req.Name, &req.Phone, &req.Area, &req.Status); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *courierRequestRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.CourierRequestStatus) (int64, error) {
	const query = `UPDATE courier_requests SET status=$2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
