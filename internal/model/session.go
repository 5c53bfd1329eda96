package model

import "time"

type Session struct {
	ID          string
	UserID      int
	RefreshHash string
	ExpiresAt   time.Time
}

type AuthData struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
}
