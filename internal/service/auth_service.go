package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/auth"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/config"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/repository"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// AuthService handles account registration, login and password management.
type AuthService struct {
	users  repository.UserRepository
	resets repository.PasswordResetRepository
	tokens *auth.TokenManager
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(users repository.UserRepository, resets repository.PasswordResetRepository, tokens *auth.TokenManager, cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, resets: resets, tokens: tokens, cfg: cfg, logger: logger}
}

// RegisterInput carries a new account request.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    *string
	Password string
	Role     domain.UserRole
	AreaID   *string
}

// AuthResult holds a signed token and the authenticated user.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Register creates an account. An empty role defaults to REQUESTER.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" {
		return nil, apperrors.NewValidationError("name and email are required", nil)
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if input.Role == "" {
		input.Role = domain.RoleRequester
	}
	switch input.Role {
	case domain.RoleRequester, domain.RoleAgent, domain.RoleTech, domain.RoleAdmin:
	default:
		return nil, apperrors.NewInvalidValue("invalid role: "+string(input.Role), map[string]any{"role": string(input.Role)})
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("hashing password: %w", err))
	}

	now := time.Now()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         input.Role,
		AreaID:       input.AreaID,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorized("account disabled")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("signing token: %w", err))
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// RequestPasswordReset issues a single-use reset token for the account. The
// plaintext token is returned for delivery; only its hash is stored. A
// missing account yields an empty token rather than an error so the endpoint
// does not leak which emails exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	token := uuid.NewString()
	reset := &repository.PasswordReset{
		UserID:    user.ID,
		TokenHash: hashResetToken(token),
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.PasswordResetTTLMinutes) * time.Minute),
		CreatedAt: time.Now(),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return "", err
	}
	s.logger.Info("password reset requested", zap.String("user_id", user.ID))
	return token, nil
}

// ConfirmPasswordReset redeems a reset token and sets the new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	reset, err := s.resets.GetActiveByTokenHash(ctx, hashResetToken(token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid or expired reset token")
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("hashing password: %w", err))
	}
	if err := s.users.UpdatePasswordHash(ctx, reset.UserID, hash); err != nil {
		return err
	}
	if err := s.resets.MarkUsed(ctx, reset.ID); err != nil {
		return err
	}
	s.logger.Info("password reset completed", zap.String("user_id", reset.UserID))
	return nil
}

// ChangePassword replaces the password of an authenticated user after
// verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return notFound(err, "user")
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password does not match")
	}

	hash, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("hashing password: %w", err))
	}
	return s.users.UpdatePasswordHash(ctx, userID, hash)
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
