package auth

import (
	"context"
	"errors"
	"time"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/user_repo"
	"marketplace_backend/pkg/pass"
	"marketplace_backend/pkg/token"
)

func (s *serv) Login(ctx context.Context, email, password string, remember bool) (*model.AuthData, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user_repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !pass.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrUserInactive
	}

	sessionID := generateSessionID()

	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	err = s.authRepo.CreateSession(ctx,
		&model.Session{
			ID:          sessionID,
			UserID:      user.ID,
			RefreshHash: token.HashRefreshToken(refreshToken),
			ExpiresAt:   time.Now().Add(s.sessionTTL(remember)),
		})
	if err != nil {
		return nil, err
	}

	accessToken, err := token.GenerateAccessToken(
		user,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	user.Password = ""

	return &model.AuthData{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
	}, nil
}
