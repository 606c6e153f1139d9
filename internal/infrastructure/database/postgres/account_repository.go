package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"classroom-occupancy-tracker/internal/domain/account"
	"classroom-occupancy-tracker/internal/infrastructure/database/postgres/models"
)

// AccountRepository implements account.Repository on Postgres.
type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) account.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()

	dbModel := toAccountModel(a)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return account.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	a.ID = dbModel.ID
	a.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).Where("username = ?", username).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

func (r *AccountRepository) SetResetToken(ctx context.Context, username, token string, expiresAt time.Time) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("username = ?", username).
		Updates(map[string]interface{}{
			"reset_token":            token,
			"reset_token_expires_at": expiresAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to set reset token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepository) RedeemResetToken(ctx context.Context, username, token, newPasswordHash string, now time.Time) error {
	// The match and the update happen in one statement, so a replayed token
	// cannot win a race against the clearing of the fields.
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("username = ? AND reset_token = ? AND reset_token_expires_at > ?", username, token, now).
		Updates(map[string]interface{}{
			"password_hash":          newPasswordHash,
			"reset_token":            nil,
			"reset_token_expires_at": nil,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to redeem reset token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrInvalidResetToken
	}

	return nil
}

func toAccountModel(a *account.Account) *models.AccountModel {
	return &models.AccountModel{
		ID:                  a.ID,
		Username:            a.Username,
		PasswordHash:        a.PasswordHash,
		ResetToken:          a.ResetToken,
		ResetTokenExpiresAt: a.ResetTokenExpiresAt,
		CreatedAt:           a.CreatedAt,
	}
}

func toAccountEntity(m *models.AccountModel) *account.Account {
	return &account.Account{
		ID:                  m.ID,
		Username:            m.Username,
		PasswordHash:        m.PasswordHash,
		ResetToken:          m.ResetToken,
		ResetTokenExpiresAt: m.ResetTokenExpiresAt,
		CreatedAt:           m.CreatedAt,
	}
}
