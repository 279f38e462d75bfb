package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines the read and password-update operations the auth
// core needs from the account table. Account records are otherwise
// read-only to this service.
type AccountStore interface {
	GetByUsername(ctx context.Context, username string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, salt string) error
}

// Account represents a stored account identity with its credential material.
// Status false means the account is locked.
type Account struct {
	ID           uuid.UUID
	Number       int
	Code         string
	Name         string
	Email        string
	Username     string
	PasswordHash string
	Salt         string
	Status       bool
	Image        string
	CreatedBy    *uuid.UUID
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountSnapshot is the projection of an account cached under a subject
// handle for the lifetime of its token chain.
type AccountSnapshot struct {
	ID       uuid.UUID `json:"id"`
	Number   int       `json:"number"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Image    string    `json:"image"`
}

// SnapshotOf builds the cached projection of an account.
func SnapshotOf(account Account) AccountSnapshot {
	return AccountSnapshot{
		ID:       account.ID,
		Number:   account.Number,
		Username: account.Username,
		Email:    account.Email,
		Image:    account.Image,
	}
}
