package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"classroom-occupancy-tracker/internal/config"
	domainAccount "classroom-occupancy-tracker/internal/domain/account"
	"classroom-occupancy-tracker/internal/logger"
	"classroom-occupancy-tracker/internal/mail"
	appErrors "classroom-occupancy-tracker/pkg/errors"
	"classroom-occupancy-tracker/pkg/utils"
)

const resetTokenValidity = time.Hour

// Service implements account use cases: registration, login, and the
// two-step password reset flow.
type Service struct {
	repo   domainAccount.Repository
	mailer mail.Mailer
	config *config.Config
}

func NewService(repo domainAccount.Repository, mailer mail.Mailer, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		config: cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Username and password are required", err)
	}

	// The username is stored verbatim; every later lookup (login, reset)
	// matches on the same raw string, so no normalization may happen here.
	existing, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, domainAccount.ErrAccountNotFound) {
		return fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		logger.Warn("Registration attempt with existing username",
			zap.String("username", req.Username),
			zap.String("event", "registration_failed_duplicate_username"),
		)
		return domainAccount.ErrUsernameTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.Create(ctx, &domainAccount.Account{
		Username:     req.Username,
		PasswordHash: hash,
	}); err != nil {
		return err
	}

	logger.Info("Account registered",
		zap.String("username", req.Username),
		zap.String("event", "account_registered"),
	)
	return nil
}

// Login returns a signed session token on success. The token is
// self-contained and cannot be revoked before its expiry.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Username and password are required", err)
	}

	acc, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			logger.Warn("Login attempt for unknown username",
				zap.String("username", req.Username),
				zap.String("event", "login_failed_unknown_username"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(acc.PasswordHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("username", req.Username),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(acc.Username, s.config.JWT.Secret, s.tokenValidity())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("Login succeeded",
		zap.String("username", acc.Username),
		zap.String("event", "login_success"),
	)
	return &LoginResponse{Token: token}, nil
}

// ForgotPassword stores a fresh reset token on the account and dispatches
// the reset mail. Unknown usernames surface as ErrAccountNotFound; the
// handler maps that to 404, matching the original contract.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Username is required", err)
	}

	acc, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return domainAccount.ErrAccountNotFound
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(resetTokenValidity)
	if err := s.repo.SetResetToken(ctx, acc.Username, token, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	to := fmt.Sprintf("%s@%s", acc.Username, s.config.SMTP.RecipientDomain)
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&username=%s",
		s.config.Server.BaseURL, token, acc.Username)

	body := fmt.Sprintf(`
		<p>You requested a password reset for Classroom Occupancy Tracker.</p>
		<p>Click <a href="%s">here</a> to reset your password.</p>
		<p>This link expires in 1 hour.</p>
	`, resetURL)

	if err := s.mailer.Send(ctx, to, "Password Reset Request", body); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}

	logger.Info("Password reset mail sent",
		zap.String("username", acc.Username),
		zap.String("event", "password_reset_requested"),
	)
	return nil
}

// ResetPassword redeems a reset token. The token fields are cleared by the
// same update that swaps the hash, so a replayed token always fails.
func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Username, token and new password are required", err)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.RedeemResetToken(ctx, req.Username, req.Token, hash, time.Now()); err != nil {
		if errors.Is(err, domainAccount.ErrInvalidResetToken) {
			logger.Warn("Reset attempt with invalid or expired token",
				zap.String("username", req.Username),
				zap.String("event", "password_reset_rejected"),
			)
			return domainAccount.ErrInvalidResetToken
		}
		return err
	}

	logger.Info("Password reset",
		zap.String("username", req.Username),
		zap.String("event", "password_reset_success"),
	)
	return nil
}

func (s *Service) tokenValidity() time.Duration {
	hours := s.config.JWT.ExpiryHours
	if hours <= 0 {
		hours = 1
	}
	return time.Duration(hours) * time.Hour
}
