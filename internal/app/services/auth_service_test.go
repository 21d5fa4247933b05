package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/auth"
)

type mockTokenEntry struct {
	userID     int64
	expiryDate time.Time
	isRevoked  bool
}

type mockTokenRepo struct {
	tokens map[string]*mockTokenEntry
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: make(map[string]*mockTokenEntry)}
}

func (m *mockTokenRepo) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	m.tokens[token] = &mockTokenEntry{userID: userID, expiryDate: expiryDate}
	return nil
}

func (m *mockTokenRepo) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	entry, ok := m.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.NotFound(apperrors.ErrTokenNotFound, "token not found")
	}
	return entry.userID, entry.expiryDate, entry.isRevoked, nil
}

func (m *mockTokenRepo) RevokeToken(ctx context.Context, token string) error {
	entry, ok := m.tokens[token]
	if !ok {
		return apperrors.NotFound(apperrors.ErrTokenNotFound, "token not found")
	}
	entry.isRevoked = true
	return nil
}

func (m *mockTokenRepo) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	for _, entry := range m.tokens {
		if entry.userID == userID {
			entry.isRevoked = true
		}
	}
	return nil
}

func (m *mockTokenRepo) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	var removed int64
	for token, entry := range m.tokens {
		if time.Now().After(entry.expiryDate) {
			delete(m.tokens, token)
			removed++
		}
	}
	return removed, nil
}

type authFixture struct {
	service   AuthService
	userRepo  *mockUserRepo
	tokenRepo *mockTokenRepo
	jwt       *auth.JWTService
}

func newAuthFixture() *authFixture {
	userRepo := newMockUserRepo()
	tokenRepo := newMockTokenRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	return &authFixture{
		service:   NewAuthService(userRepo, tokenRepo, jwtService, zerolog.Nop()),
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwt:       jwtService,
	}
}

func (f *authFixture) register(t *testing.T, email, password string) *models.User {
	t.Helper()
	user, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: "Sam",
		LastName:  "Student",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a student account", func(t *testing.T) {
		f := newAuthFixture()

		user := f.register(t, "sam@example.com", "supersecret")
		if len(user.Roles) != 1 || user.Roles[0] != models.RoleStudent {
			t.Errorf("roles = %v, want [student]", user.Roles)
		}
		if user.Password == "supersecret" {
			t.Error("password stored in clear")
		}
	})

	t.Run("a used email is refused", func(t *testing.T) {
		f := newAuthFixture()
		f.register(t, "sam@example.com", "supersecret")

		_, err := f.service.Register(ctx, &dto.RegisterRequest{
			Email:     "sam@example.com",
			Password:  "supersecret",
			FirstName: "Other",
			LastName:  "Person",
		})
		if err == nil {
			t.Fatal("expected error for duplicate email")
		}
		status, message := apperrors.Parse(err)
		if status != 400 {
			t.Errorf("status = %d, want 400", status)
		}
		if message != "email already used" {
			t.Errorf("message = %q", message)
		}
	})

	t.Run("an invalid email is refused", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.Register(ctx, &dto.RegisterRequest{
			Email:     "not-an-email",
			Password:  "supersecret",
			FirstName: "Sam",
			LastName:  "Student",
		})
		if err == nil {
			t.Fatal("expected error for invalid email")
		}
		if _, message := apperrors.Parse(err); message != "invalid email format" {
			t.Errorf("message = %q", message)
		}
	})

	t.Run("a short password is refused", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.Register(ctx, &dto.RegisterRequest{
			Email:     "sam@example.com",
			Password:  "short",
			FirstName: "Sam",
			LastName:  "Student",
		})
		if err == nil {
			t.Fatal("expected error for short password")
		}
		if status, _ := apperrors.Parse(err); status != 400 {
			t.Errorf("status = %d, want 400", status)
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token pair", func(t *testing.T) {
		f := newAuthFixture()
		user := f.register(t, "sam@example.com", "supersecret")

		tokens, err := f.service.Login(ctx, &dto.LoginRequest{Email: "sam@example.com", Password: "supersecret"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if tokens.AccessToken == "" || tokens.RefreshToken == "" {
			t.Fatal("empty token pair")
		}

		claims, err := f.jwt.ValidateToken(tokens.AccessToken)
		if err != nil {
			t.Fatalf("ValidateToken: %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("claims userId = %d, want %d", claims.UserID, user.ID)
		}
		if _, ok := f.tokenRepo.tokens[tokens.RefreshToken]; !ok {
			t.Error("refresh token not persisted")
		}
	})

	t.Run("a wrong password is refused without detail", func(t *testing.T) {
		f := newAuthFixture()
		f.register(t, "sam@example.com", "supersecret")

		_, err := f.service.Login(ctx, &dto.LoginRequest{Email: "sam@example.com", Password: "wrong"})
		if err == nil {
			t.Fatal("expected error for wrong password")
		}
		if _, message := apperrors.Parse(err); message != "invalid email or password" {
			t.Errorf("message = %q", message)
		}
	})

	t.Run("an unknown email gets the same answer", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
		if err == nil {
			t.Fatal("expected error for unknown email")
		}
		if _, message := apperrors.Parse(err); message != "invalid email or password" {
			t.Errorf("message = %q", message)
		}
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		f := newAuthFixture()
		f.register(t, "sam@example.com", "supersecret")
		tokens, err := f.service.Login(ctx, &dto.LoginRequest{Email: "sam@example.com", Password: "supersecret"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}

		fresh, err := f.service.RefreshToken(ctx, tokens.RefreshToken)
		if err != nil {
			t.Fatalf("RefreshToken: %v", err)
		}
		if fresh.RefreshToken == tokens.RefreshToken {
			t.Error("refresh token was not rotated")
		}
		if !f.tokenRepo.tokens[tokens.RefreshToken].isRevoked {
			t.Error("used refresh token was not revoked")
		}
	})

	t.Run("a replayed token is refused", func(t *testing.T) {
		f := newAuthFixture()
		f.register(t, "sam@example.com", "supersecret")
		tokens, _ := f.service.Login(ctx, &dto.LoginRequest{Email: "sam@example.com", Password: "supersecret"})

		if _, err := f.service.RefreshToken(ctx, tokens.RefreshToken); err != nil {
			t.Fatalf("RefreshToken: %v", err)
		}
		_, err := f.service.RefreshToken(ctx, tokens.RefreshToken)
		if err == nil {
			t.Fatal("expected error replaying a used token")
		}
		if status, _ := apperrors.Parse(err); status != 401 {
			t.Errorf("status = %d, want 401", status)
		}
	})

	t.Run("an unknown token is refused", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.RefreshToken(ctx, "no-such-token")
		if err == nil {
			t.Fatal("expected error for unknown token")
		}
		status, message := apperrors.Parse(err)
		if status != 401 {
			t.Errorf("status = %d, want 401", status)
		}
		if message != "invalid refresh token" {
			t.Errorf("message = %q", message)
		}
	})

	t.Run("an expired token is refused", func(t *testing.T) {
		f := newAuthFixture()
		user := f.register(t, "sam@example.com", "supersecret")
		f.tokenRepo.tokens["stale"] = &mockTokenEntry{
			userID:     user.ID,
			expiryDate: time.Now().Add(-time.Hour),
		}

		_, err := f.service.RefreshToken(ctx, "stale")
		if err == nil {
			t.Fatal("expected error for expired token")
		}
		if _, message := apperrors.Parse(err); message != "refresh token expired" {
			t.Errorf("message = %q", message)
		}
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := f.register(t, "sam@example.com", "supersecret")
	tokens, err := f.service.Login(ctx, &dto.LoginRequest{Email: "sam@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := f.service.Logout(ctx, user.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if !f.tokenRepo.tokens[tokens.RefreshToken].isRevoked {
		t.Error("refresh token still valid after logout")
	}
}
