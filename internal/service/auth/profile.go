package auth

import (
	"context"
	"errors"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/user_repo"
)

func (s *serv) Me(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user_repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// UpdateProfile - name/phone/avatar only; email and role never change here
func (s *serv) UpdateProfile(ctx context.Context, userID int, name, phone, avatar string) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user_repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if avatar != "" {
		user.Avatar = avatar
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}
