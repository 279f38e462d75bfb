package model

import "github.com/google/uuid"

// LoginInput carries submitted credentials.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordInput carries the old and new passwords for a password
// change by an authenticated account.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// LoginOutput is returned by login, refresh and change-password flows:
// profile fields plus a freshly issued token pair.
type LoginOutput struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Image        string    `json:"image"`
	AccessToken  string    `json:"accesstoken"`
	RefreshToken string    `json:"refreshToken"`
}
