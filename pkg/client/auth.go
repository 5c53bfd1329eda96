package client

import (
	"context"
	"net/http"
	"net/url"
)

type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

type authResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register - creates the account and stores the returned token pair in
// the store selected by remember
func (c *Client) Register(ctx context.Context, name, email, password string, remember bool) (*User, error) {
	var res authResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]interface{}{
		"name":        name,
		"email":       email,
		"password":    password,
		"remember_me": remember,
	}, &res)
	if err != nil {
		return nil, err
	}

	if err := c.storeTokens(res.AccessToken, res.RefreshToken, remember); err != nil {
		return nil, err
	}
	return &res.User, nil
}

// Login - remember picks durable storage; the other store is wiped so
// only one place ever holds a live pair
func (c *Client) Login(ctx context.Context, email, password string, remember bool) (*User, error) {
	var res authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":       email,
		"password":    password,
		"remember_me": remember,
	}, &res)
	if err != nil {
		return nil, err
	}

	if err := c.storeTokens(res.AccessToken, res.RefreshToken, remember); err != nil {
		return nil, err
	}
	return &res.User, nil
}

// Logout - tells the server, then clears both stores regardless of
// whether the server call worked. A dead server must not trap the user
// in a session
func (c *Client) Logout(ctx context.Context) error {
	_, refresh := c.activeStore().Tokens()

	var err error
	if refresh != "" {
		err = c.do(ctx, http.MethodPost, "/auth/logout", map[string]string{
			"refresh_token": refresh,
		}, nil)
	}

	c.clearTokens()
	return err
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name, phone, avatar string) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodPut, "/auth/update-profile", map[string]string{
		"name":   name,
		"phone":  phone,
		"avatar": avatar,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// HandleOAuthCallback - the provider redirect lands here with the token
// pair in the query string. Tokens are stored, then the profile decides
// where the user goes next
func (c *Client) HandleOAuthCallback(ctx context.Context, query url.Values, remember bool) (landing string, err error) {
	access := query.Get("access_token")
	refresh := query.Get("refresh_token")
	if access == "" || refresh == "" {
		return "", ErrNotAuthenticated
	}

	if err := c.storeTokens(access, refresh, remember); err != nil {
		return "", err
	}

	user, err := c.Me(ctx)
	if err != nil {
		return "", err
	}

	switch user.Role {
	case "vendor":
		return "/vendor", nil
	case "admin":
		return "/admin", nil
	default:
		return "/", nil
	}
}

func (c *Client) storeTokens(access, refresh string, remember bool) error {
	store, err := c.storeFor(remember)
	if err != nil {
		return err
	}
	return store.SetPair(access, refresh)
}
