package model

import "time"

// Role declared on a profile at registration time.
type Role string

const (
	RoleClient  Role = "client"
	RoleCourier Role = "courier"
)

// User is an authenticated account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile extends a user account with marketplace identity, one-to-one.
// VehiclePlate is filled for couriers only.
type Profile struct {
	UserID       int64
	Role         Role
	FullName     string
	Phone        string
	VehiclePlate *string
}
