package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// KeyTokenStore persists one refresh-token ledger entry per account:
// the current refresh token plus the history of rotated-out tokens.
// Rotate must be atomic per account so that concurrent refreshes never
// lose a token from the history or leave two current tokens valid.
type KeyTokenStore interface {
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int, error)
	Insert(ctx context.Context, accountID uuid.UUID, refreshToken string) error
	Rotate(ctx context.Context, accountID uuid.UUID, newRefreshToken string) error
	CountValidByToken(ctx context.Context, refreshToken string) (int, error)
	IsTokenReplayed(ctx context.Context, accountID uuid.UUID, refreshToken string) (bool, error)
	GetByAccount(ctx context.Context, accountID uuid.UUID) (KeyToken, error)
	Delete(ctx context.Context, accountID uuid.UUID) error
}

// KeyToken is an account's refresh-token ledger entry.
type KeyToken struct {
	ID                uuid.UUID
	AccountID         uuid.UUID
	RefreshToken      string
	RefreshTokensUsed []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
