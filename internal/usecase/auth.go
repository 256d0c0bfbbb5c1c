package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/amvenit/amvenit/internal/domain/errors"
	"github.com/amvenit/amvenit/internal/domain/model"
	"github.com/amvenit/amvenit/internal/domain/repository"
	pkgAuth "github.com/amvenit/amvenit/internal/pkg/auth"
)

// AuthUseCase handles account lifecycle, profiles and token management.
type AuthUseCase struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, profiles repository.ProfileRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, profiles: profiles, hasher: hasher, tokens: strategy}
}

// RegisterInput carries signup fields. VehiclePlate is required for couriers.
type RegisterInput struct {
	Login        string
	Password     string
	Role         model.Role
	FullName     string
	Phone        string
	VehiclePlate string
}

// Register creates a new account with its marketplace profile and returns an
// auth token.
func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	login := strings.TrimSpace(in.Login)
	if login == "" || in.Password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if in.Role != model.RoleClient && in.Role != model.RoleCourier {
		return nil, "", fmt.Errorf("%w: rol necunoscut", domainErrors.ErrValidation)
	}

	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, "", fmt.Errorf("%w: numele este obligatoriu", domainErrors.ErrValidation)
	}

	phone, err := NormalizePhone(in.Phone)
	if err != nil {
		return nil, "", err
	}

	var plate *string
	if in.Role == model.RoleCourier {
		p := strings.TrimSpace(in.VehiclePlate)
		if p == "" {
			return nil, "", fmt.Errorf("%w: numărul de înmatriculare este obligatoriu pentru livratori", domainErrors.ErrValidation)
		}
		plate = &p
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, login, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	profile := &model.Profile{
		UserID:       usr.ID,
		Role:         in.Role,
		FullName:     fullName,
		Phone:        phone,
		VehiclePlate: plate,
	}
	if err := u.profiles.Upsert(ctx, profile); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// ProfileByID fetches the marketplace profile for an account.
func (u *AuthUseCase) ProfileByID(ctx context.Context, userID int64) (*model.Profile, error) {
	return u.profiles.GetByUserID(ctx, userID)
}
