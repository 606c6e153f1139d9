package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"classroom-occupancy-tracker/internal/domain/account"
	"classroom-occupancy-tracker/internal/domain/status"
	"classroom-occupancy-tracker/internal/infrastructure/database/postgres/models"
	"classroom-occupancy-tracker/internal/logger"
	"classroom-occupancy-tracker/pkg/utils"
)

const (
	defaultAccountUsername = "faculty"
	defaultAccountPassword = "1234"
)

// Migrate creates or updates the schema.
func Migrate(db *DB) error {
	return db.DB.AutoMigrate(
		&models.AccountModel{},
		&models.RoomStatusModel{},
		&models.LabStatusModel{},
	)
}

// Seed populates the fixed room and lab catalogs and the default account.
// Each collection is seeded only when it is empty, so repeated startups
// never clobber live occupancy state.
func Seed(ctx context.Context, statusRepo status.Repository, accountRepo account.Repository) error {
	if err := seedCatalog(ctx, statusRepo, status.KindRoom, status.DefaultRooms()); err != nil {
		return err
	}
	if err := seedCatalog(ctx, statusRepo, status.KindLab, status.DefaultLabs()); err != nil {
		return err
	}
	return seedDefaultAccount(ctx, accountRepo)
}

func seedCatalog(ctx context.Context, repo status.Repository, kind status.Kind, names []string) error {
	count, err := repo.Count(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to count %s records: %w", kind, err)
	}
	if count > 0 {
		return nil
	}

	records := make([]status.Record, len(names))
	for i, name := range names {
		records[i] = status.Record{Name: name, Occupied: false}
	}
	if err := repo.CreateBatch(ctx, kind, records); err != nil {
		return err
	}

	logger.Info("Seeded status catalog",
		zap.String("kind", string(kind)),
		zap.Int("records", len(records)),
	)
	return nil
}

func seedDefaultAccount(ctx context.Context, repo account.Repository) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(defaultAccountPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	if err := repo.Create(ctx, &account.Account{
		Username:     defaultAccountUsername,
		PasswordHash: hash,
	}); err != nil {
		return err
	}

	logger.Info("Seeded default account", zap.String("username", defaultAccountUsername))
	return nil
}
