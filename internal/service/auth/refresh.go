package auth

import (
	"context"
	"errors"
	"time"

	"marketplace_backend/internal/repository/auth_repo"
	"marketplace_backend/pkg/token"
)

// Refresh - trades a live refresh token for a new access token.
// The refresh token itself is not rotated; its session row stays put
// until logout or expiry
func (s *serv) Refresh(ctx context.Context, refreshToken string) (string, error) {
	session, err := s.authRepo.GetSessionByRefreshHash(ctx, token.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, auth_repo.ErrSessionNotFound) {
			return "", ErrSessionExpired
		}
		return "", err
	}

	// Constant-time re-check against the stored hash
	if !token.VerifyRefreshToken(refreshToken, session.RefreshHash) {
		return "", ErrSessionExpired
	}

	if time.Now().After(session.ExpiresAt) {
		// Expired rows are garbage; drop them on the way out
		_ = s.authRepo.DeleteSession(ctx, session.ID)
		return "", ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return "", err
	}

	if !user.Active {
		return "", ErrUserInactive
	}

	newAccessToken, err := token.GenerateAccessToken(
		user,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return "", err
	}

	return newAccessToken, nil
}
