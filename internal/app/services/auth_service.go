package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/app/repositories"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/auth"
	"github.com/aurel/sportcourse/internal/pkg/validation"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   repositories.UserRepository
	tokenRepo  repositories.TokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new user account with the student role
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if !validation.ValidEmail(req.Email) {
		return nil, apperrors.BadRequest(apperrors.ErrInvalidEmail, "invalid email format")
	}
	if !validation.ValidPassword(req.Password) {
		return nil, apperrors.BadRequest(apperrors.ErrValidationFailed,
			"password must be at least %d characters long", validation.PasswordMinLength)
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.BadRequest(apperrors.ErrEmailAlreadyUsed, "email already used")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewCoded(500, "failed to hash password")
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Roles:     []models.Role{models.RoleStudent},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("email", user.Email).Msg("User registered")
	return user, nil
}

// Login verifies the credentials and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.BadRequest(apperrors.ErrInvalidCredentials, "invalid email or password")
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.BadRequest(apperrors.ErrInvalidCredentials, "invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a fresh token pair. The
// presented token is revoked so it cannot be replayed.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, expiryDate, isRevoked, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.NewCoded(401, "invalid refresh token")
	}
	if isRevoked || time.Now().After(expiryDate) {
		return nil, apperrors.NewCoded(401, "refresh token expired")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		s.logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to revoke used refresh token")
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes every refresh token the user holds
func (s *authServiceImpl) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, apperrors.NewCoded(500, "failed to generate tokens")
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, apperrors.WrapRepo(err, "failed to persist refresh token")
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}
