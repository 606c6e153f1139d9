package status

import "context"

// Repository defines persistence operations for occupancy records.
type Repository interface {
	// Snapshot returns every record of the given kind.
	Snapshot(ctx context.Context, kind Kind) ([]Record, error)

	// Upsert creates the record if absent, otherwise overwrites its
	// occupancy flag. Last write wins; there is no conflict detection.
	Upsert(ctx context.Context, kind Kind, name string, occupied bool) (*Record, error)

	Count(ctx context.Context, kind Kind) (int64, error)

	// CreateBatch inserts the given records; used only by first-run seeding.
	CreateBatch(ctx context.Context, kind Kind, records []Record) error
}
