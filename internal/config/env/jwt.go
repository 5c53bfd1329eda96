package env

import (
	"fmt"
	"os"
	"time"

	"marketplace_backend/internal/config"
)

const (
	accessTokenKeyEnvName            = "ACCESS_TOKEN_SECRET"
	accessTokenDurationEnvName       = "ACCESS_TOKEN_DURATION"
	refreshTokenDurationEnvName      = "REFRESH_TOKEN_DURATION"
	shortRefreshTokenDurationEnvName = "SHORT_REFRESH_TOKEN_DURATION"

	defaultShortRefreshTokenDuration = 24 * time.Hour
)

type jwtConfig struct {
	accessTokenSecretKey      string
	accessTokenDuration       time.Duration
	refreshTokenDuration      time.Duration
	shortRefreshTokenDuration time.Duration
}

func NewJWTConfig() (config.JWTConfig, error) {
	accessToken := os.Getenv(accessTokenKeyEnvName)
	if len(accessToken) == 0 {
		return nil, fmt.Errorf("access token secret key not found")
	}

	accessTokenDuration := os.Getenv(accessTokenDurationEnvName)
	if len(accessTokenDuration) == 0 {
		return nil, fmt.Errorf("access token duration not found")
	}

	accessTokenDurationParsed, err := time.ParseDuration(accessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token duration: %w", err)
	}

	refreshTokenDuration := os.Getenv(refreshTokenDurationEnvName)
	if len(refreshTokenDuration) == 0 {
		return nil, fmt.Errorf("refresh token duration not found")
	}

	refreshTokenDurationParsed, err := time.ParseDuration(refreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token duration: %w", err)
	}

	shortRefreshTokenDurationParsed := defaultShortRefreshTokenDuration
	if v := os.Getenv(shortRefreshTokenDurationEnvName); len(v) != 0 {
		shortRefreshTokenDurationParsed, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid short refresh token duration: %w", err)
		}
	}

	return &jwtConfig{
		accessTokenSecretKey:      accessToken,
		accessTokenDuration:       accessTokenDurationParsed,
		refreshTokenDuration:      refreshTokenDurationParsed,
		shortRefreshTokenDuration: shortRefreshTokenDurationParsed,
	}, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.accessTokenSecretKey)
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.accessTokenDuration
}

func (j *jwtConfig) RefreshTokenDuration() time.Duration {
	return j.refreshTokenDuration
}

func (j *jwtConfig) ShortRefreshTokenDuration() time.Duration {
	return j.shortRefreshTokenDuration
}
