package health

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeRow struct {
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if n, ok := dest[0].(*int); ok {
		*n = 1
	}
	return nil
}

type fakeDatabase struct {
	pingErr  error
	queryErr error
}

func (f fakeDatabase) Ping(ctx context.Context) error {
	return f.pingErr
}

func (f fakeDatabase) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{err: f.queryErr}
}

func TestCheckHealthy(t *testing.T) {
	checker := NewChecker(fakeDatabase{}, zerolog.Nop())

	status := checker.Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.True(t, status.Database.Reachable)
	assert.True(t, status.Database.SchemaReady)
}

func TestCheckEmptyLeasesTableIsHealthy(t *testing.T) {
	checker := NewChecker(fakeDatabase{queryErr: pgx.ErrNoRows}, zerolog.Nop())

	status := checker.Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.True(t, status.Database.SchemaReady)
}

func TestCheckMissingSchemaIsUnhealthy(t *testing.T) {
	checker := NewChecker(fakeDatabase{queryErr: errors.New(`relation "leases" does not exist`)}, zerolog.Nop())

	status := checker.Check(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
	assert.True(t, status.Database.Reachable)
	assert.False(t, status.Database.SchemaReady)
}

func TestCheckUnreachableDatabase(t *testing.T) {
	checker := NewChecker(fakeDatabase{pingErr: errors.New("connection refused")}, zerolog.Nop())

	status := checker.Check(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
	assert.False(t, status.Database.Reachable)
	assert.False(t, status.Database.SchemaReady)
}
