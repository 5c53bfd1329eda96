package auth

import (
	"errors"
	"log"
	"net/http"

	dto "marketplace_backend/internal/api/dto/auth"
	"marketplace_backend/internal/api/middleware"
	"marketplace_backend/internal/converter"
	"marketplace_backend/internal/service"
	authserv "marketplace_backend/internal/service/auth"
	"marketplace_backend/pkg/req"
	"marketplace_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.AuthService
}

type Handler struct {
	serv service.AuthService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Register - creates a user, opens a session and returns both tokens
// in the response body
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Register(
		r.Context(),
		converter.RegisterRequestToUserModel(&requestBody),
		requestBody.RememberMe,
	)
	if err != nil {
		if errors.Is(err, authserv.ErrEmailTaken) {
			resp.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		log.Println("Register error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "register failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToAuthResponse(data))
}

// Login - opens a session and returns both tokens in the response body
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Login(
		r.Context(),
		requestBody.Email,
		requestBody.Password,
		requestBody.RememberMe,
	)
	if err != nil {
		switch {
		case errors.Is(err, authserv.ErrInvalidCredentials):
			resp.WriteError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, authserv.ErrUserInactive):
			resp.WriteError(w, http.StatusForbidden, err.Error())
		default:
			log.Println("Login error:", err)
			resp.WriteError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAuthResponse(data))
}

// Refresh - exchanges a refresh token for a fresh access token
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RefreshRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	accessToken, err := h.serv.Refresh(r.Context(), requestBody.RefreshToken)
	if err != nil {
		if errors.Is(err, authserv.ErrSessionExpired) || errors.Is(err, authserv.ErrUserInactive) {
			resp.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		log.Println("Refresh error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "refresh failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.RefreshResponse{AccessToken: accessToken})
}

// Logout - closes the session behind the refresh token.
// An unknown token still logs out cleanly
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LogoutRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.serv.Logout(r.Context(), requestBody.RefreshToken); err != nil {
		log.Println("Logout error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me - returns the caller's profile
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.serv.Me(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, authserv.ErrUserNotFound) {
			resp.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Println("Me error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "profile lookup failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToUserResponse(user))
}

// UpdateProfile - updates name, phone and avatar. Email and role are immutable here
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.UpdateProfileRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.serv.UpdateProfile(
		r.Context(),
		middleware.UserID(r.Context()),
		requestBody.Name,
		requestBody.Phone,
		requestBody.Avatar,
	)
	if err != nil {
		log.Println("UpdateProfile error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "profile update failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToUserResponse(user))
}
