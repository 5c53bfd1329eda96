package converter

import (
	dto "marketplace_backend/internal/api/dto/auth"
	"marketplace_backend/internal/model"
)

func RegisterRequestToUserModel(req *dto.RegisterRequest) *model.User {
	return &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
}

func ToUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Phone:  user.Phone,
		Avatar: user.Avatar,
	}
}

func ToAuthResponse(data *model.AuthData) dto.AuthResponse {
	return dto.AuthResponse{
		User:         ToUserResponse(data.User),
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	}
}
