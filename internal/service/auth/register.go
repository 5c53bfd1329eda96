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

func (s *serv) Register(ctx context.Context, user *model.User, remember bool) (*model.AuthData, error) {
	// Reject duplicate emails up front for a clean error; the unique
	// index still backstops races
	_, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, user_repo.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := pass.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash
	user.Role = model.RoleCustomer
	user.Active = true

	var (
		sessionID    string
		refreshToken string
		accessToken  string
	)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Create the user row
		user.ID, err = s.userRepo.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		// 2. Open a session for the fresh account
		sessionID = generateSessionID()

		refreshToken, err = token.GenerateRefreshToken()
		if err != nil {
			return err
		}

		err = s.authRepo.CreateSession(ctx,
			&model.Session{
				ID:          sessionID,
				UserID:      user.ID,
				RefreshHash: token.HashRefreshToken(refreshToken),
				ExpiresAt:   time.Now().Add(s.sessionTTL(remember)),
			})
		if err != nil {
			return err
		}

		// 3. Issue the access token
		accessToken, err = token.GenerateAccessToken(
			user,
			s.jwtConfig.AccessTokenSecretKey(),
			s.jwtConfig.AccessTokenDuration())
		if err != nil {
			return err
		}

		return nil
	})
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

// sessionTTL - remember-me selects the long refresh lifetime,
// everything else expires within a day
func (s *serv) sessionTTL(remember bool) time.Duration {
	if remember {
		return s.jwtConfig.RefreshTokenDuration()
	}
	return s.jwtConfig.ShortRefreshTokenDuration()
}
