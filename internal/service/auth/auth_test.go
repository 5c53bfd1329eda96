package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/auth_repo"
	"marketplace_backend/internal/repository/user_repo"
	"marketplace_backend/pkg/pass"
	"marketplace_backend/pkg/token"
)

// passthroughTxManager runs the callback without a transaction
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubJWTConfig struct{}

func (stubJWTConfig) AccessTokenSecretKey() []byte            { return []byte("test-secret") }
func (stubJWTConfig) AccessTokenDuration() time.Duration      { return 15 * time.Minute }
func (stubJWTConfig) RefreshTokenDuration() time.Duration     { return 30 * 24 * time.Hour }
func (stubJWTConfig) ShortRefreshTokenDuration() time.Duration { return 24 * time.Hour }

type mockUserRepo struct {
	CreateUserFunc     func(ctx context.Context, user *model.User) (int, error)
	GetUserByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	GetUserByIDFunc    func(ctx context.Context, id int) (*model.User, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (int, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, user)
	}
	return 1, nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return nil, user_repo.ErrNotFound
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	return nil, user_repo.ErrNotFound
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, user *model.User) error { return nil }

func (m *mockUserRepo) ListUsers(ctx context.Context, role string, limit, offset int) ([]model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) SetActive(ctx context.Context, id int, active bool) error { return nil }
func (m *mockUserRepo) SetRole(ctx context.Context, id int, role string) error   { return nil }

type mockAuthRepo struct {
	CreateSessionFunc           func(ctx context.Context, session *model.Session) error
	GetSessionByRefreshHashFunc func(ctx context.Context, refreshHash string) (*model.Session, error)
	DeleteSessionFunc           func(ctx context.Context, sessionID string) error
}

func (m *mockAuthRepo) CreateSession(ctx context.Context, session *model.Session) error {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, session)
	}
	return nil
}

func (m *mockAuthRepo) GetSessionByRefreshHash(ctx context.Context, refreshHash string) (*model.Session, error) {
	if m.GetSessionByRefreshHashFunc != nil {
		return m.GetSessionByRefreshHashFunc(ctx, refreshHash)
	}
	return nil, auth_repo.ErrSessionNotFound
}

func (m *mockAuthRepo) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthRepo) DeleteSessionsByUser(ctx context.Context, userID int) error { return nil }

func newTestService(userRepo *mockUserRepo, authRepo *mockAuthRepo) *serv {
	if userRepo == nil {
		userRepo = &mockUserRepo{}
	}
	if authRepo == nil {
		authRepo = &mockAuthRepo{}
	}
	return NewService(passthroughTxManager{}, userRepo, authRepo, stubJWTConfig{})
}

func activeUser(t *testing.T) *model.User {
	t.Helper()
	hash, err := pass.HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	return &model.User{
		ID:       1,
		Email:    "a@b.c",
		Password: hash,
		Role:     model.RoleCustomer,
		Active:   true,
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	userRepo := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 2, Email: email}, nil
		},
	}

	s := newTestService(userRepo, nil)

	_, err := s.Register(context.Background(), &model.User{Email: "a@b.c", Password: "pw"}, false)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterIssuesSessionAndTokens(t *testing.T) {
	var session *model.Session

	authRepo := &mockAuthRepo{
		CreateSessionFunc: func(ctx context.Context, s *model.Session) error {
			session = s
			return nil
		},
	}

	s := newTestService(nil, authRepo)

	data, err := s.Register(context.Background(), &model.User{
		Name:     "a",
		Email:    "a@b.c",
		Password: "secret123",
	}, false)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if data.User.Role != model.RoleCustomer {
		t.Errorf("role = %q, want customer", data.User.Role)
	}
	if data.User.Password != "" {
		t.Error("password hash leaked in the response")
	}
	if data.AccessToken == "" || data.RefreshToken == "" {
		t.Error("token pair missing")
	}

	if session == nil {
		t.Fatal("no session created")
	}
	if session.RefreshHash == data.RefreshToken {
		t.Error("refresh token stored in the clear")
	}
	if !token.VerifyRefreshToken(data.RefreshToken, session.RefreshHash) {
		t.Error("stored hash does not match the issued refresh token")
	}

	claims, err := token.VerifyToken(data.AccessToken, []byte("test-secret"))
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Role != model.RoleCustomer {
		t.Errorf("claims.Role = %q, want customer", claims.Role)
	}
}

func TestSessionLifetimeFollowsRemember(t *testing.T) {
	for _, tt := range []struct {
		name     string
		remember bool
		minTTL   time.Duration
		maxTTL   time.Duration
	}{
		{"remembered", true, 29 * 24 * time.Hour, 31 * 24 * time.Hour},
		{"session only", false, 23 * time.Hour, 25 * time.Hour},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var session *model.Session
			authRepo := &mockAuthRepo{
				CreateSessionFunc: func(ctx context.Context, s *model.Session) error {
					session = s
					return nil
				},
			}
			user := activeUser(t)
			userRepo := &mockUserRepo{
				GetUserByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
					return user, nil
				},
			}

			s := newTestService(userRepo, authRepo)

			if _, err := s.Login(context.Background(), "a@b.c", "secret123", tt.remember); err != nil {
				t.Fatalf("Login: %v", err)
			}

			ttl := time.Until(session.ExpiresAt)
			if ttl < tt.minTTL || ttl > tt.maxTTL {
				t.Errorf("session ttl = %v, want within [%v, %v]", ttl, tt.minTTL, tt.maxTTL)
			}
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := activeUser(t)
	userRepo := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return user, nil
		},
	}

	s := newTestService(userRepo, nil)

	if _, err := s.Login(context.Background(), "a@b.c", "wrong", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	s := newTestService(nil, nil)

	if _, err := s.Login(context.Background(), "nobody@b.c", "pw", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	user := activeUser(t)
	user.Active = false
	userRepo := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return user, nil
		},
	}

	s := newTestService(userRepo, nil)

	if _, err := s.Login(context.Background(), "a@b.c", "secret123", false); !errors.Is(err, ErrUserInactive) {
		t.Errorf("err = %v, want ErrUserInactive", err)
	}
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		t.Fatal(err)
	}

	user := activeUser(t)
	authRepo := &mockAuthRepo{
		GetSessionByRefreshHashFunc: func(ctx context.Context, hash string) (*model.Session, error) {
			return &model.Session{
				ID:          "sess-1",
				UserID:      1,
				RefreshHash: token.HashRefreshToken(refreshToken),
				ExpiresAt:   time.Now().Add(time.Hour),
			}, nil
		},
	}
	userRepo := &mockUserRepo{
		GetUserByIDFunc: func(ctx context.Context, id int) (*model.User, error) {
			return user, nil
		},
	}

	s := newTestService(userRepo, authRepo)

	access, err := s.Refresh(context.Background(), refreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	claims, err := token.VerifyToken(access, []byte("test-secret"))
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if id, _ := token.UserID(claims); id != 1 {
		t.Errorf("subject = %d, want 1", id)
	}
}

func TestRefreshExpiredSessionIsDeleted(t *testing.T) {
	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		t.Fatal(err)
	}

	deleted := ""
	authRepo := &mockAuthRepo{
		GetSessionByRefreshHashFunc: func(ctx context.Context, hash string) (*model.Session, error) {
			return &model.Session{
				ID:          "sess-1",
				UserID:      1,
				RefreshHash: token.HashRefreshToken(refreshToken),
				ExpiresAt:   time.Now().Add(-time.Minute),
			}, nil
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			deleted = sessionID
			return nil
		},
	}

	s := newTestService(nil, authRepo)

	if _, err := s.Refresh(context.Background(), refreshToken); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("err = %v, want ErrSessionExpired", err)
	}
	if deleted != "sess-1" {
		t.Error("expired session row was not dropped")
	}
}

func TestRefreshUnknownToken(t *testing.T) {
	s := newTestService(nil, nil)

	if _, err := s.Refresh(context.Background(), "bogus"); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("err = %v, want ErrSessionExpired", err)
	}
}

func TestLogoutUnknownSessionSucceeds(t *testing.T) {
	s := newTestService(nil, nil)

	if err := s.Logout(context.Background(), "bogus"); err != nil {
		t.Errorf("Logout: %v", err)
	}
}
