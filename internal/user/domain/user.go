package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	TypeClient UserType = "Client"
	TypeAdmin  UserType = "Admin"
)

type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
	StatusDeleted   UserStatus = "deleted"
)

// User is an account. Accounts are never physically deleted; Status
// moves to deleted instead.
type User struct {
	ID           uuid.UUID
	UserID       string // public account number, USERnnnn
	Email        string
	Username     string
	PasswordHash string
	Phone        string
	City         string
	UserType     UserType
	Status       UserStatus
	CreatedAt    time.Time
	LastLogin    time.Time
}
