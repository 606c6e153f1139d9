package status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainStatus "classroom-occupancy-tracker/internal/domain/status"
	appErrors "classroom-occupancy-tracker/pkg/errors"
)

// fakeRepo is an in-memory status.Repository holding one map per kind.
type fakeRepo struct {
	records map[domainStatus.Kind]map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[domainStatus.Kind]map[string]bool{
		domainStatus.KindRoom: {},
		domainStatus.KindLab:  {},
	}}
}

func (f *fakeRepo) Snapshot(_ context.Context, kind domainStatus.Kind) ([]domainStatus.Record, error) {
	m, ok := f.records[kind]
	if !ok {
		return nil, domainStatus.ErrUnknownKind
	}
	records := make([]domainStatus.Record, 0, len(m))
	for name, occupied := range m {
		records = append(records, domainStatus.Record{Name: name, Occupied: occupied})
	}
	return records, nil
}

func (f *fakeRepo) Upsert(_ context.Context, kind domainStatus.Kind, name string, occupied bool) (*domainStatus.Record, error) {
	m, ok := f.records[kind]
	if !ok {
		return nil, domainStatus.ErrUnknownKind
	}
	m[name] = occupied
	return &domainStatus.Record{Name: name, Occupied: occupied}, nil
}

func (f *fakeRepo) Count(_ context.Context, kind domainStatus.Kind) (int64, error) {
	m, ok := f.records[kind]
	if !ok {
		return 0, domainStatus.ErrUnknownKind
	}
	return int64(len(m)), nil
}

func (f *fakeRepo) CreateBatch(_ context.Context, kind domainStatus.Kind, records []domainStatus.Record) error {
	m, ok := f.records[kind]
	if !ok {
		return domainStatus.ErrUnknownKind
	}
	for _, rec := range records {
		m[rec.Name] = rec.Occupied
	}
	return nil
}

func seededService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	ctx := context.Background()

	for _, name := range domainStatus.DefaultRooms() {
		_, err := repo.Upsert(ctx, domainStatus.KindRoom, name, false)
		require.NoError(t, err)
	}
	for _, name := range domainStatus.DefaultLabs() {
		_, err := repo.Upsert(ctx, domainStatus.KindLab, name, false)
		require.NoError(t, err)
	}

	return NewService(repo), repo
}

func TestSnapshot_SeededCatalog(t *testing.T) {
	t.Parallel()

	svc, _ := seededService(t)

	rooms, err := svc.Snapshot(context.Background(), domainStatus.KindRoom)
	require.NoError(t, err)
	assert.Len(t, rooms, 16)
	for name, occupied := range rooms {
		assert.False(t, occupied, "room %s should start unoccupied", name)
	}

	labs, err := svc.Snapshot(context.Background(), domainStatus.KindLab)
	require.NoError(t, err)
	assert.Len(t, labs, 6)
}

func TestSet_TogglesRecord(t *testing.T) {
	t.Parallel()

	svc, _ := seededService(t)
	ctx := context.Background()

	record, err := svc.Set(ctx, domainStatus.KindRoom, "A11", true)
	require.NoError(t, err)
	assert.Equal(t, "A11", record.Name)
	assert.True(t, record.Occupied)

	rooms, err := svc.Snapshot(ctx, domainStatus.KindRoom)
	require.NoError(t, err)
	assert.True(t, rooms["A11"])
	assert.False(t, rooms["A12"])
}

func TestSet_NameOutsideCatalog(t *testing.T) {
	t.Parallel()

	svc, _ := seededService(t)
	ctx := context.Background()

	// The store has no foreign key to the catalog; any name upserts.
	record, err := svc.Set(ctx, domainStatus.KindRoom, "E55", true)
	require.NoError(t, err)
	assert.Equal(t, "E55", record.Name)

	rooms, err := svc.Snapshot(ctx, domainStatus.KindRoom)
	require.NoError(t, err)
	assert.Len(t, rooms, 17)
	assert.True(t, rooms["E55"])
}

func TestSet_SanitizesName(t *testing.T) {
	t.Parallel()

	svc, _ := seededService(t)

	record, err := svc.Set(context.Background(), domainStatus.KindLab, "  Lab   1 ", true)
	require.NoError(t, err)
	assert.Equal(t, "Lab 1", record.Name)
}

func TestSet_EmptyName(t *testing.T) {
	t.Parallel()

	svc, _ := seededService(t)

	_, err := svc.Set(context.Background(), domainStatus.KindRoom, "   ", true)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUnknownKind(t *testing.T) {
	t.Parallel()

	svc, _ := seededService(t)
	ctx := context.Background()

	_, err := svc.Snapshot(ctx, domainStatus.Kind("corridor"))
	assert.ErrorIs(t, err, domainStatus.ErrUnknownKind)

	_, err = svc.Set(ctx, domainStatus.Kind("corridor"), "X1", true)
	assert.ErrorIs(t, err, domainStatus.ErrUnknownKind)
}
