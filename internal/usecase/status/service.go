package status

import (
	"context"

	"go.uber.org/zap"

	domainStatus "classroom-occupancy-tracker/internal/domain/status"
	"classroom-occupancy-tracker/internal/logger"
	appErrors "classroom-occupancy-tracker/pkg/errors"
	"classroom-occupancy-tracker/pkg/utils"
)

// Service implements occupancy use cases over the status store.
type Service struct {
	repo domainStatus.Repository
}

func NewService(repo domainStatus.Repository) *Service {
	return &Service{repo: repo}
}

// Snapshot returns the full current state of one catalog as a name-keyed
// map, the shape the client renders from.
func (s *Service) Snapshot(ctx context.Context, kind domainStatus.Kind) (map[string]bool, error) {
	if !kind.Valid() {
		return nil, domainStatus.ErrUnknownKind
	}

	records, err := s.repo.Snapshot(ctx, kind)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string]bool, len(records))
	for _, rec := range records {
		snapshot[rec.Name] = rec.Occupied
	}
	return snapshot, nil
}

// Set upserts one record by name. Names outside the seed catalog are
// accepted; the store has no foreign key back to the catalog and the
// client renders unknown names as "Unknown".
func (s *Service) Set(ctx context.Context, kind domainStatus.Kind, name string, occupied bool) (*domainStatus.Record, error) {
	if !kind.Valid() {
		return nil, domainStatus.ErrUnknownKind
	}

	name = utils.SanitizeName(name)
	if name == "" {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Name is required", nil)
	}

	record, err := s.repo.Upsert(ctx, kind, name, occupied)
	if err != nil {
		return nil, err
	}

	logger.Info("Status updated",
		zap.String("kind", string(kind)),
		zap.String("name", name),
		zap.Bool("occupied", occupied),
	)
	return record, nil
}
