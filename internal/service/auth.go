package service

import (
	"context"
	"errors"
	"time"

	"github.com/phananhtu/authcore/internal/apperrors"
	"github.com/phananhtu/authcore/internal/logger"
	"github.com/phananhtu/authcore/internal/model"
	"github.com/phananhtu/authcore/internal/password"
	"github.com/phananhtu/authcore/internal/revocation"
	"github.com/phananhtu/authcore/internal/session"
	"github.com/phananhtu/authcore/internal/token"
)

// Auth composes the credential verifier, token codec, session cache,
// refresh-token ledger and revocation registry into the login, logout,
// refresh and change-password flows.
type Auth struct {
	accounts    model.AccountStore
	ledger      model.KeyTokenStore
	sessions    *session.Cache
	revocations *revocation.Registry
	tokens      model.TokenManager
	hasher      *password.Hasher
	refreshTTL  time.Duration
	logger      *logger.Logger
}

func NewAuth(
	accounts model.AccountStore,
	ledger model.KeyTokenStore,
	sessions *session.Cache,
	revocations *revocation.Registry,
	tokens model.TokenManager,
	hasher *password.Hasher,
	refreshTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		accounts:    accounts,
		ledger:      ledger,
		sessions:    sessions,
		revocations: revocations,
		tokens:      tokens,
		hasher:      hasher,
		refreshTTL:  refreshTTL,
		logger:      logger,
	}
}

// Login verifies credentials and issues a fresh session: a new subject
// handle, a cached snapshot and an access/refresh token pair. The
// account's ledger entry is created on first login and rotated on every
// subsequent one.
func (a *Auth) Login(ctx context.Context, input model.LoginInput) (model.LoginOutput, error) {
	a.logger.Debug("Auth service: starting login",
		"username", input.Username)

	account, err := a.accounts.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// Never reveal which field was wrong.
			return model.LoginOutput{}, apperrors.NewUnauthenticated("Invalid username or password")
		}
		a.logger.Error("Auth service: failed to get account by username",
			"username", input.Username,
			"error", err.Error())
		return model.LoginOutput{}, apperrors.NewInternal("Error getting account information", err)
	}

	if !a.hasher.Verify(account.PasswordHash, account.Salt, input.Password) {
		a.logger.Info("Auth service: password mismatch",
			"username", input.Username)
		return model.LoginOutput{}, apperrors.NewUnauthenticated("Invalid username or password")
	}

	if !account.Status {
		a.logger.Info("Auth service: locked account login attempt",
			"username", input.Username)
		return model.LoginOutput{}, apperrors.NewForbidden("Account is Locked")
	}

	output, err := a.issueSession(ctx, account)
	if err != nil {
		return model.LoginOutput{}, err
	}

	a.logger.Info("Auth service: login completed",
		"username", input.Username,
		"account_id", account.ID)

	return output, nil
}

// Logout blacklists the authenticated subject and removes the account's
// ledger entry. The session snapshot is left to expire via TTL; the
// blacklist entry is what invalidates it.
func (a *Auth) Logout(ctx context.Context, subject string) error {
	if subject == "" {
		return apperrors.NewUnauthenticated("missing authenticated subject")
	}

	snapshot, err := a.sessions.Get(ctx, subject)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apperrors.NewUnauthenticated("session not found")
		}
		a.logger.Error("Auth service: failed to load session snapshot",
			"subject", subject,
			"error", err.Error())
		return apperrors.NewInternal("Error loading session", err)
	}

	if err := a.revocations.Blacklist(ctx, subject, a.refreshTTL); err != nil {
		a.logger.Error("Auth service: failed to blacklist subject",
			"subject", subject,
			"error", err.Error())
		return apperrors.NewInternal("Error blacklisting session", err)
	}

	if err := a.ledger.Delete(ctx, snapshot.ID); err != nil {
		a.logger.Error("Auth service: failed to delete ledger entry",
			"account_id", snapshot.ID,
			"error", err.Error())
		return apperrors.NewInternal("Error deleting refresh token record", err)
	}

	a.logger.Info("Auth service: logout completed",
		"account_id", snapshot.ID)

	return nil
}

// RefreshTokens rotates the presented refresh token into a new session.
// A token found in the account's used history is a detected replay: the
// whole ledger entry is deleted, forcing a full re-login.
func (a *Auth) RefreshTokens(ctx context.Context, subject, presentedToken string) (model.LoginOutput, error) {
	if presentedToken == "" {
		return model.LoginOutput{}, apperrors.NewUnauthenticated("missing refresh token")
	}
	if subject == "" {
		return model.LoginOutput{}, apperrors.NewUnauthenticated("missing authenticated subject")
	}

	snapshot, err := a.sessions.Get(ctx, subject)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.LoginOutput{}, apperrors.NewUnauthenticated("session expired")
		}
		return model.LoginOutput{}, apperrors.NewInternal("Error loading session", err)
	}

	// Replay must be checked before the current-token lookup: a rotated-out
	// token no longer matches any current entry, and the security response
	// here is to nuke the ledger, not just reject the call.
	replayed, err := a.ledger.IsTokenReplayed(ctx, snapshot.ID, presentedToken)
	if err != nil {
		a.logger.Error("Auth service: failed to check replayed token",
			"account_id", snapshot.ID,
			"error", err.Error())
		return model.LoginOutput{}, apperrors.NewInternal("Error checking refresh token", err)
	}
	if replayed {
		a.logger.Warn("Auth service: refresh token replay detected",
			"account_id", snapshot.ID)
		if err := a.ledger.Delete(ctx, snapshot.ID); err != nil {
			a.logger.Error("Auth service: failed to delete ledger entry after replay",
				"account_id", snapshot.ID,
				"error", err.Error())
			return model.LoginOutput{}, apperrors.NewInternal("Error deleting refresh token record", err)
		}
		return model.LoginOutput{}, apperrors.NewUnauthenticated("refresh token has been used")
	}

	valid, err := a.ledger.CountValidByToken(ctx, presentedToken)
	if err != nil {
		return model.LoginOutput{}, apperrors.NewInternal("Error checking refresh token", err)
	}
	if valid == 0 {
		return model.LoginOutput{}, apperrors.NewUnauthenticated("logged in elsewhere, please re-login")
	}

	// Re-resolve the account from the store; the snapshot may be stale.
	account, err := a.accounts.GetByUsername(ctx, snapshot.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.LoginOutput{}, apperrors.NewUnauthenticated("account no longer exists")
		}
		return model.LoginOutput{}, apperrors.NewInternal("Error getting account information", err)
	}

	output, err := a.issueSession(ctx, account)
	if err != nil {
		return model.LoginOutput{}, err
	}

	a.logger.Info("Auth service: tokens refreshed",
		"account_id", account.ID)

	return output, nil
}

// ChangePassword verifies the old password, persists a freshly salted
// hash, records the password-change watermark and issues a new session.
// Tokens issued before the watermark are rejected by the middleware.
func (a *Auth) ChangePassword(ctx context.Context, subject, oldPassword, newPassword string) (model.LoginOutput, error) {
	if subject == "" {
		return model.LoginOutput{}, apperrors.NewUnauthenticated("missing authenticated subject")
	}

	snapshot, err := a.sessions.Get(ctx, subject)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.LoginOutput{}, apperrors.NewUnauthenticated("session expired")
		}
		return model.LoginOutput{}, apperrors.NewInternal("Error loading session", err)
	}

	account, err := a.accounts.GetByID(ctx, snapshot.ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.LoginOutput{}, apperrors.NewUnauthenticated("account no longer exists")
		}
		return model.LoginOutput{}, apperrors.NewInternal("Error getting account information", err)
	}

	if !a.hasher.Verify(account.PasswordHash, account.Salt, oldPassword) {
		return model.LoginOutput{}, apperrors.NewUnauthenticated("old password incorrect")
	}

	newSalt, err := password.NewSalt()
	if err != nil {
		return model.LoginOutput{}, apperrors.NewInternal("Error generating salt", err)
	}
	newHash := a.hasher.Hash(newPassword, newSalt)

	if err := a.accounts.UpdatePassword(ctx, account.ID, newHash, newSalt); err != nil {
		a.logger.Error("Auth service: failed to update password",
			"account_id", account.ID,
			"error", err.Error())
		return model.LoginOutput{}, apperrors.NewInternal("Error updating password", err)
	}

	if err := a.revocations.SetPasswordChangedAt(ctx, account.ID, time.Now(), a.refreshTTL); err != nil {
		a.logger.Error("Auth service: failed to set password-change watermark",
			"account_id", account.ID,
			"error", err.Error())
		return model.LoginOutput{}, apperrors.NewInternal("Error revoking previous tokens", err)
	}

	account.PasswordHash = newHash
	account.Salt = newSalt

	output, err := a.issueSession(ctx, account)
	if err != nil {
		return model.LoginOutput{}, err
	}

	a.logger.Info("Auth service: password changed",
		"account_id", account.ID)

	return output, nil
}

// issueSession is the shared tail of login, refresh and change-password:
// mint a subject handle, cache the snapshot, issue both tokens and
// insert or rotate the ledger entry.
func (a *Auth) issueSession(ctx context.Context, account model.Account) (model.LoginOutput, error) {
	subject := token.NewSubjectHandle(account.Number)

	snapshot := model.SnapshotOf(account)
	if err := a.sessions.Put(ctx, subject, snapshot, a.refreshTTL); err != nil {
		a.logger.Error("Auth service: failed to cache session snapshot",
			"account_id", account.ID,
			"error", err.Error())
		return model.LoginOutput{}, apperrors.NewInternal("Error caching session", err)
	}

	accessToken, err := a.tokens.IssueAccessToken(subject)
	if err != nil {
		return model.LoginOutput{}, apperrors.NewInternal("Error issuing access token", err)
	}
	refreshToken, err := a.tokens.IssueRefreshToken(subject)
	if err != nil {
		return model.LoginOutput{}, apperrors.NewInternal("Error issuing refresh token", err)
	}

	count, err := a.ledger.CountByAccount(ctx, account.ID)
	if err != nil {
		return model.LoginOutput{}, apperrors.NewBadRequest("Error counting refresh token records", err)
	}

	if count > 0 {
		if err := a.ledger.Rotate(ctx, account.ID, refreshToken); err != nil {
			a.logger.Error("Auth service: failed to rotate ledger entry",
				"account_id", account.ID,
				"error", err.Error())
			return model.LoginOutput{}, apperrors.NewInternal("Error rotating refresh token", err)
		}
	} else {
		if err := a.ledger.Insert(ctx, account.ID, refreshToken); err != nil {
			a.logger.Error("Auth service: failed to insert ledger entry",
				"account_id", account.ID,
				"error", err.Error())
			return model.LoginOutput{}, apperrors.NewInternal("Error inserting refresh token", err)
		}
	}

	return model.LoginOutput{
		ID:           account.ID,
		Username:     account.Username,
		Email:        account.Email,
		Image:        account.Image,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
