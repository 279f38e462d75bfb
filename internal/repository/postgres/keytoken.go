package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/phananhtu/authcore/internal/model"
)

var _ model.KeyTokenStore = (*KeyTokenRepository)(nil)

// KeyTokenRepository persists the per-account refresh-token ledger.
// Used tokens are kept as a jsonb array so rotation can run as a single
// atomic statement.
type KeyTokenRepository struct {
	db *Connection
}

func NewKeyTokenRepository(db *Connection) *KeyTokenRepository {
	return &KeyTokenRepository{db: db}
}

func (r *KeyTokenRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int, error) {
	const query = `SELECT COUNT(*) FROM keytoken WHERE account_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count key tokens by account: %w", err)
	}
	return count, nil
}

func (r *KeyTokenRepository) Insert(ctx context.Context, accountID uuid.UUID, refreshToken string) error {
	const query = `
        INSERT INTO keytoken (
            id, account_id, refresh_token, refresh_tokens_used, created_at, updated_at
        ) VALUES ($1, $2, $3, '[]'::jsonb, NOW(), NOW())
    `

	if _, err := r.db.Exec(ctx, query, uuid.New(), accountID, refreshToken); err != nil {
		return fmt.Errorf("failed to insert key token: %w", err)
	}
	return nil
}

// Rotate appends the current refresh token to the used history and
// replaces it with newRefreshToken. The single statement keeps the
// read-modify-write atomic under concurrent refresh calls.
func (r *KeyTokenRepository) Rotate(ctx context.Context, accountID uuid.UUID, newRefreshToken string) error {
	const query = `
        UPDATE keytoken
        SET refresh_tokens_used = refresh_tokens_used || to_jsonb(refresh_token),
            refresh_token = $1,
            updated_at = NOW()
        WHERE account_id = $2
    `

	tag, err := r.db.Exec(ctx, query, newRefreshToken, accountID)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// CountValidByToken counts ledger entries whose current token matches
// the presented token string. Token strings are high-entropy and signed,
// so they serve as a lookup key.
func (r *KeyTokenRepository) CountValidByToken(ctx context.Context, refreshToken string) (int, error) {
	const query = `SELECT COUNT(*) FROM keytoken WHERE refresh_token = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, refreshToken).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count key tokens by token: %w", err)
	}
	return count, nil
}

// IsTokenReplayed reports whether the token appears in the account's
// used-token history.
func (r *KeyTokenRepository) IsTokenReplayed(ctx context.Context, accountID uuid.UUID, refreshToken string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM keytoken
            WHERE account_id = $1 AND refresh_tokens_used @> to_jsonb($2::text)
        )
    `

	var replayed bool
	if err := r.db.QueryRow(ctx, query, accountID, refreshToken).Scan(&replayed); err != nil {
		return false, fmt.Errorf("failed to check replayed token: %w", err)
	}
	return replayed, nil
}

func (r *KeyTokenRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) (model.KeyToken, error) {
	const query = `
        SELECT id, account_id, refresh_token, refresh_tokens_used, created_at, updated_at
        FROM keytoken WHERE account_id = $1
    `

	var kt model.KeyToken
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&kt.ID, &kt.AccountID, &kt.RefreshToken, &kt.RefreshTokensUsed,
		&kt.CreatedAt, &kt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.KeyToken{}, model.ErrNotFound
		}
		return model.KeyToken{}, fmt.Errorf("failed to get key token by account: %w", err)
	}
	return kt, nil
}

// Delete removes the account's ledger entry. Deleting a non-existent
// entry is not an error.
func (r *KeyTokenRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	const query = `DELETE FROM keytoken WHERE account_id = $1`

	if _, err := r.db.Exec(ctx, query, accountID); err != nil {
		return fmt.Errorf("failed to delete key token: %w", err)
	}
	return nil
}
