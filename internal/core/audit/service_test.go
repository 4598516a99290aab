package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewService(db), mock
}

func TestService_LogExport(t *testing.T) {
	svc, mock := newMockService(t)
	ctx := auth.WithUser(context.Background(), &auth.User{ID: "u-1", Role: auth.RoleAdmin})

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WithArgs("u-1", auth.RoleAdmin, ActionExport, EntityDashboard, "pdf",
			"10.0.0.1", "/analytics/export", "Exported dashboard as pdf", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	err := svc.LogExport(ctx, ExportEntry{Format: "pdf", Sections: 15, Archive: "s3://reports/exports/2024/03/dashboard.pdf"},
		RequestInfo{IPAddress: "10.0.0.1", Endpoint: "/analytics/export"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetLogs(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE action = `).
		WithArgs(ActionExport).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE action = .+ ORDER BY created_at DESC LIMIT .+ OFFSET`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "entity", "created_at"}).
			AddRow(uuid.New(), "u-1", ActionExport, EntityDashboard, time.Now()))

	page, err := svc.GetLogs(context.Background(), Filter{Action: ActionExport, Page: 2, PageSize: 2})

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, "u-1", page.Logs[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DeleteOldLogs(t *testing.T) {
	t.Run("rejects non-positive retention", func(t *testing.T) {
		svc, _ := newMockService(t)
		_, err := svc.DeleteOldLogs(context.Background(), 0)
		assert.Error(t, err)
	})

	t.Run("deletes older rows", func(t *testing.T) {
		svc, mock := newMockService(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "audit_logs" WHERE created_at < `).
			WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectCommit()

		n, err := svc.DeleteOldLogs(context.Background(), 90)

		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
