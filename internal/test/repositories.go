package test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/amvenit/amvenit/internal/domain/errors"
	"github.com/amvenit/amvenit/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProfileRepositoryStub stores profiles in-memory for tests.
type ProfileRepositoryStub struct {
	Profiles map[int64]*model.Profile
	Err      error
}

// NewProfileRepositoryStub constructs stub repository with initialized map.
func NewProfileRepositoryStub() *ProfileRepositoryStub {
	return &ProfileRepositoryStub{Profiles: make(map[int64]*model.Profile)}
}

func (s *ProfileRepositoryStub) Upsert(ctx context.Context, profile *model.Profile) error {
	if s.Err != nil {
		return s.Err
	}
	cp := *profile
	s.Profiles[profile.UserID] = &cp
	return nil
}

func (s *ProfileRepositoryStub) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProfileRepositoryStub) UpdateContact(ctx context.Context, userID int64, fullName, phone string) error {
	if s.Err != nil {
		return s.Err
	}
	if p, ok := s.Profiles[userID]; ok {
		p.FullName = fullName
		p.Phone = phone
		return nil
	}
	return domainErrors.ErrNotFound
}

// OrderRepositoryStub mimics the guarded conditional updates of the postgres
// repository in memory, including their rows-affected semantics. The mutex
// makes concurrent accept attempts behave like row-level atomic writes.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[uuid.UUID]*model.Order
	Err    error
}

// NewOrderRepositoryStub constructs stub repository with initialized map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[uuid.UUID]*model.Order)}
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *order
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	order.CreatedAt = cp.CreatedAt
	s.Orders[order.ID] = &cp
	return nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) list(filter func(*model.Order) bool) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.Orders {
		if filter(o) {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (s *OrderRepositoryStub) ListActive(ctx context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.list(func(o *model.Order) bool { return o.Status == model.OrderStatusActive }), nil
}

func (s *OrderRepositoryStub) ListCompleted(ctx context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.list(func(o *model.Order) bool { return o.Status == model.OrderStatusCompleted }), nil
}

func (s *OrderRepositoryStub) ListByParticipant(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.list(func(o *model.Order) bool {
		return (o.ClientID != nil && *o.ClientID == userID) || (o.AcceptedByID != nil && *o.AcceptedByID == userID)
	}), nil
}

func (s *OrderRepositoryStub) ListUnverified(ctx context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.list(func(o *model.Order) bool {
		return o.Status == model.OrderStatusActive && !o.PhoneVerified
	}), nil
}

func (s *OrderRepositoryStub) Accept(ctx context.Context, id uuid.UUID, courier model.CourierSnapshot) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[id]
	if !ok || o.Status != model.OrderStatusActive || o.AcceptedByID != nil {
		return 0, nil
	}
	now := time.Now()
	name, phone := courier.Name, courier.Phone
	o.Status = model.OrderStatusAccepted
	o.AcceptedByID = &courier.ID
	o.AcceptedByName = &name
	o.AcceptedByPhone = &phone
	o.AcceptedAt = &now
	return 1, nil
}

func (s *OrderRepositoryStub) Complete(ctx context.Context, id uuid.UUID, courierID int64) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[id]
	if !ok || o.Status != model.OrderStatusAccepted || o.AcceptedByID == nil || *o.AcceptedByID != courierID {
		return 0, nil
	}
	o.Status = model.OrderStatusCompleted
	return 1, nil
}

func (s *OrderRepositoryStub) CancelByClient(ctx context.Context, id uuid.UUID, clientID int64) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[id]
	if !ok || o.Status != model.OrderStatusActive || o.ClientID == nil || *o.ClientID != clientID {
		return 0, nil
	}
	now := time.Now()
	reason := model.CancelReasonClient
	o.Status = model.OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = &reason
	return 1, nil
}

func (s *OrderRepositoryStub) CancelByCourier(ctx context.Context, id uuid.UUID, courierID int64, note string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[id]
	if !ok || o.Status != model.OrderStatusAccepted || o.AcceptedByID == nil || *o.AcceptedByID != courierID {
		return 0, nil
	}
	now := time.Now()
	reason := model.CancelReasonCourier
	note = strings.TrimSpace(note)
	o.Status = model.OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = &reason
	o.CancelNote = &note
	return 1, nil
}

func (s *OrderRepositoryStub) SetPhoneVerified(ctx context.Context, id uuid.UUID) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[id]
	if !ok {
		return 0, nil
	}
	o.PhoneVerified = true
	return 1, nil
}

func (s *OrderRepositoryStub) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Orders[id]; !ok {
		return 0, nil
	}
	delete(s.Orders, id)
	return 1, nil
}

// CourierRepositoryStub stores couriers in-memory keyed by phone.
type CourierRepositoryStub struct {
	ByPhone map[string]*model.Courier
	Next    int64
	Err     error
}

// NewCourierRepositoryStub constructs stub repository with initialized map.
func NewCourierRepositoryStub() *CourierRepositoryStub {
	return &CourierRepositoryStub{ByPhone: make(map[string]*model.Courier), Next: 1}
}

func (s *CourierRepositoryStub) Upsert(ctx context.Context, courier *model.Courier) error {
	if s.Err != nil {
		return s.Err
	}
	if existing, ok := s.ByPhone[courier.Phone]; ok {
		existing.Name = courier.Name
		existing.PIN = courier.PIN
		existing.Active = courier.Active
		courier.ID = existing.ID
		return nil
	}
	cp := *courier
	cp.ID = s.Next
	cp.CreatedAt = time.Now()
	s.Next++
	s.ByPhone[courier.Phone] = &cp
	courier.ID = cp.ID
	return nil
}

func (s *CourierRepositoryStub) GetActiveByPIN(ctx context.Context, pin string) (*model.Courier, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, c := range s.ByPhone {
		if c.PIN == pin && c.Active {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CourierRepositoryStub) GetByPhone(ctx context.Context, phone string) (*model.Courier, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if c, ok := s.ByPhone[phone]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CourierRequestRepositoryStub stores applications in-memory.
type CourierRequestRepositoryStub struct {
	Requests map[uuid.UUID]*model.CourierRequest
	Err      error
}

// NewCourierRequestRepositoryStub constructs stub repository with initialized map.
func NewCourierRequestRepositoryStub() *CourierRequestRepositoryStub {
	return &CourierRequestRepositoryStub{Requests: make(map[uuid.UUID]*model.CourierRequest)}
}

func (s *CourierRequestRepositoryStub) Create(ctx context.Context, req *model.CourierRequest) error {
	if s.Err != nil {
		return s.Err
	}
	cp := *req
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	req.CreatedAt = cp.CreatedAt
	s.Requests[req.ID] = &cp
	return nil
}

func (s *CourierRequestRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.CourierRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if r, ok := s.Requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CourierRequestRepositoryStub) List(ctx context.Context) ([]model.CourierRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.CourierRequest
	for _, r := range s.Requests {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *CourierRequestRepositoryStub) SetStatus(ctx context.Context, id uuid.UUID, status model.CourierRequestStatus) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	r, ok := s.Requests[id]
	if !ok {
		return 0, nil
	}
	r.Status = status
	return 1, nil
}
