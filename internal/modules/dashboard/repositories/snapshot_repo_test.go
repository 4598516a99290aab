package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSnapshotRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepo(db)

	snapshot := &models.AnalyticsSnapshot{
		Kind:        models.SnapshotKindKPI,
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Payload:     datatypes.JSON(`{"revenue_mtd":1234}`),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "analytics_snapshots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), snapshot))
	assert.NotEqual(t, uuid.Nil, snapshot.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "analytics_snapshots" WHERE kind = \$1 ORDER BY created_at DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "period_start", "payload", "created_at"}).
			AddRow(uuid.New(), models.SnapshotKindKPI, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), []byte(`{}`), time.Now()).
			AddRow(uuid.New(), models.SnapshotKindKPI, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), []byte(`{}`), time.Now()))

	snapshots, err := repo.List(context.Background(), models.SnapshotFilter{Kind: models.SnapshotKindKPI, Limit: 7})

	require.NoError(t, err)
	assert.Len(t, snapshots, 2)
	assert.Equal(t, 2024, snapshots[0].PeriodStart.Year())
	assert.NoError(t, mock.ExpectationsWereMet())
}
