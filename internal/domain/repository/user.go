package repository

import (
	"context"

	"github.com/amvenit/amvenit/internal/domain/model"
)

// UserRepository describes persistence operations with user accounts.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash string) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// ProfileRepository describes persistence of marketplace profiles.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *model.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*model.Profile, error)
	UpdateContact(ctx context.Context, userID int64, fullName, phone string) error
}
