package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"classroom-occupancy-tracker/internal/domain/status"
	"classroom-occupancy-tracker/internal/infrastructure/database/postgres/models"
)

// StatusRepository implements status.Repository on Postgres. Rooms and labs
// live in separate tables selected by kind.
type StatusRepository struct {
	db *DB
}

func NewStatusRepository(db *DB) status.Repository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) Snapshot(ctx context.Context, kind status.Kind) ([]status.Record, error) {
	switch kind {
	case status.KindRoom:
		var dbModels []models.RoomStatusModel
		if err := r.db.DB.WithContext(ctx).Find(&dbModels).Error; err != nil {
			return nil, fmt.Errorf("failed to get room statuses: %w", err)
		}
		records := make([]status.Record, len(dbModels))
		for i, m := range dbModels {
			records[i] = status.Record{Name: m.Name, Occupied: m.Occupied}
		}
		return records, nil

	case status.KindLab:
		var dbModels []models.LabStatusModel
		if err := r.db.DB.WithContext(ctx).Find(&dbModels).Error; err != nil {
			return nil, fmt.Errorf("failed to get lab statuses: %w", err)
		}
		records := make([]status.Record, len(dbModels))
		for i, m := range dbModels {
			records[i] = status.Record{Name: m.Name, Occupied: m.Occupied}
		}
		return records, nil

	default:
		return nil, status.ErrUnknownKind
	}
}

func (r *StatusRepository) Upsert(ctx context.Context, kind status.Kind, name string, occupied bool) (*status.Record, error) {
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"occupied"}),
	}

	switch kind {
	case status.KindRoom:
		dbModel := models.RoomStatusModel{Name: name, Occupied: occupied}
		if err := r.db.DB.WithContext(ctx).Clauses(onConflict).Create(&dbModel).Error; err != nil {
			return nil, fmt.Errorf("failed to upsert room status: %w", err)
		}
		return &status.Record{Name: dbModel.Name, Occupied: dbModel.Occupied}, nil

	case status.KindLab:
		dbModel := models.LabStatusModel{Name: name, Occupied: occupied}
		if err := r.db.DB.WithContext(ctx).Clauses(onConflict).Create(&dbModel).Error; err != nil {
			return nil, fmt.Errorf("failed to upsert lab status: %w", err)
		}
		return &status.Record{Name: dbModel.Name, Occupied: dbModel.Occupied}, nil

	default:
		return nil, status.ErrUnknownKind
	}
}

func (r *StatusRepository) Count(ctx context.Context, kind status.Kind) (int64, error) {
	var count int64
	var err error

	switch kind {
	case status.KindRoom:
		err = r.db.DB.WithContext(ctx).Model(&models.RoomStatusModel{}).Count(&count).Error
	case status.KindLab:
		err = r.db.DB.WithContext(ctx).Model(&models.LabStatusModel{}).Count(&count).Error
	default:
		return 0, status.ErrUnknownKind
	}

	if err != nil {
		return 0, fmt.Errorf("failed to count %s statuses: %w", kind, err)
	}
	return count, nil
}

func (r *StatusRepository) CreateBatch(ctx context.Context, kind status.Kind, records []status.Record) error {
	switch kind {
	case status.KindRoom:
		dbModels := make([]models.RoomStatusModel, len(records))
		for i, rec := range records {
			dbModels[i] = models.RoomStatusModel{Name: rec.Name, Occupied: rec.Occupied}
		}
		if err := r.db.DB.WithContext(ctx).Create(&dbModels).Error; err != nil {
			return fmt.Errorf("failed to seed room statuses: %w", err)
		}
		return nil

	case status.KindLab:
		dbModels := make([]models.LabStatusModel, len(records))
		for i, rec := range records {
			dbModels[i] = models.LabStatusModel{Name: rec.Name, Occupied: rec.Occupied}
		}
		if err := r.db.DB.WithContext(ctx).Create(&dbModels).Error; err != nil {
			return fmt.Errorf("failed to seed lab statuses: %w", err)
		}
		return nil

	default:
		return status.ErrUnknownKind
	}
}
