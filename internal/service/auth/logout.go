package auth

import (
	"context"
	"errors"

	"marketplace_backend/internal/repository/auth_repo"
	"marketplace_backend/pkg/token"
)

// Logout - invalidates the session behind the presented refresh token.
// An already-gone session is a success: the client is logging out either way
func (s *serv) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.authRepo.GetSessionByRefreshHash(ctx, token.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, auth_repo.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	return s.authRepo.DeleteSession(ctx, session.ID)
}
