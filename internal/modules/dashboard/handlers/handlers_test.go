package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/models"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-secret"

// stubAnalytics overrides the few reports a test needs; anything else panics.
type stubAnalytics struct {
	AnalyticsReader
	kpis      *services.KPIReport
	gaps      *analytics.AppointmentGaps
	dashboard *services.Dashboard
	err       error
}

func (s *stubAnalytics) GetKPIs(ctx context.Context) (*services.KPIReport, error) {
	if _, err := auth.RequireUser(ctx); err != nil {
		return nil, err
	}
	return s.kpis, s.err
}

func (s *stubAnalytics) GetAppointmentGaps(ctx context.Context) (*analytics.AppointmentGaps, error) {
	return s.gaps, s.err
}

func (s *stubAnalytics) Dashboard(ctx context.Context) (*services.Dashboard, error) {
	return s.dashboard, s.err
}

type stubExporter struct {
	format export.Format
	req    audit.RequestInfo
	user   *auth.User
}

func (s *stubExporter) Export(ctx context.Context, format export.Format, req audit.RequestInfo) (*export.File, error) {
	s.format, s.req = format, req
	s.user, _ = auth.UserFromContext(ctx)
	return &export.File{Data: []byte("%PDF-1.3"), ContentType: "application/pdf", Extension: ".pdf"}, nil
}

type stubSnapshots struct {
	filter models.SnapshotFilter
}

func (s *stubSnapshots) List(ctx context.Context, filter models.SnapshotFilter) ([]models.AnalyticsSnapshot, error) {
	s.filter = filter
	return []models.AnalyticsSnapshot{{Kind: models.SnapshotKindKPI}}, nil
}

type stubAudit struct {
	filter audit.Filter
}

func (s *stubAudit) GetLogs(ctx context.Context, filter audit.Filter) (*audit.LogPage, error) {
	s.filter = filter
	return &audit.LogPage{Page: filter.Page, PageSize: filter.PageSize}, nil
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, _, err := auth.NewJWTService(testSecret, time.Hour).
		GenerateAccessToken(&auth.TokenClaims{UserID: "u-1", Email: "owner@studio.test", Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func newTestApp(reader AnalyticsReader, exporter DashboardExporter, snapshots SnapshotLister, auditReader AuditReader) *fiber.App {
	app := fiber.New()
	jwtService := auth.NewJWTService(testSecret, time.Hour)

	app.Get("/health", NewHealthHandler(stubPinger{}, "dashboard-api").GetHealth)

	group := app.Group("/analytics", auth.AuthMiddleware(jwtService))
	NewAnalyticsHandler(reader).Register(group)
	group.Get("/export", NewExportHandler(exporter, func() string { return "20240315" }).ExportDashboard)
	group.Get("/snapshots", NewSnapshotHandler(snapshots).ListSnapshots)

	app.Get("/audit-logs", auth.AuthMiddleware(jwtService), auth.RequireRole(auth.RoleAdmin), NewAuditHandler(auditReader).GetLogs)
	return app
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v))
}

func TestAnalyticsHandler_GetKPIs(t *testing.T) {
	stub := &stubAnalytics{kpis: &services.KPIReport{Stats: analytics.KPIStats{RevenueMtd: 4200, FillRate: 90}}}
	app := newTestApp(stub, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/analytics/kpis", nil)
	req.Header.Set("Authorization", bearer(t, auth.RoleAssistant))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Stats map[string]interface{} `json:"stats"`
	}
	decode(t, resp, &body)
	assert.Equal(t, float64(4200), body.Stats["revenue_mtd"])
	assert.Nil(t, body.Stats["revenue_mtd_delta"])
	assert.Equal(t, float64(90), body.Stats["fill_rate"])
}

func TestAnalyticsHandler_RequiresToken(t *testing.T) {
	app := newTestApp(&stubAnalytics{}, nil, nil, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/analytics/kpis", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAnalyticsHandler_ErrorMapping(t *testing.T) {
	t.Run("unauthenticated service call", func(t *testing.T) {
		app := fiber.New()
		app.Get("/kpis", NewAnalyticsHandler(&stubAnalytics{}).GetKPIs)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/kpis", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("store failure", func(t *testing.T) {
		app := newTestApp(&stubAnalytics{err: errors.New("appointment_gaps: connection reset")}, nil, nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/analytics/appointment-gaps", nil)
		req.Header.Set("Authorization", bearer(t, auth.RoleAdmin))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, "appointment_gaps: connection reset", body["error"])
	})
}

func TestAnalyticsHandler_AppointmentGapsNullOverall(t *testing.T) {
	app := newTestApp(&stubAnalytics{gaps: &analytics.AppointmentGaps{ByCategory: []analytics.CategoryGap{}}}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/analytics/appointment-gaps", nil)
	req.Header.Set("Authorization", bearer(t, auth.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	value, present := body["overall_avg_days"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestExportHandler(t *testing.T) {
	exporter := &stubExporter{}
	app := newTestApp(&stubAnalytics{}, exporter, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/analytics/export?format=PDF", nil)
	req.Header.Set("Authorization", bearer(t, auth.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="dashboard-20240315.pdf"`, resp.Header.Get(fiber.HeaderContentDisposition))
	assert.Equal(t, export.FormatPDF, exporter.format)
	assert.Equal(t, "/analytics/export", exporter.req.Endpoint)
	require.NotNil(t, exporter.user)
	assert.Equal(t, "u-1", exporter.user.ID)

	req = httptest.NewRequest(http.MethodGet, "/analytics/export?format=csv", nil)
	req.Header.Set("Authorization", bearer(t, auth.RoleAdmin))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSnapshotHandler(t *testing.T) {
	snapshots := &stubSnapshots{}
	app := newTestApp(&stubAnalytics{}, nil, snapshots, nil)

	req := httptest.NewRequest(http.MethodGet, "/analytics/snapshots?limit=7", nil)
	req.Header.Set("Authorization", bearer(t, auth.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, models.SnapshotFilter{Kind: models.SnapshotKindKPI, Limit: 7}, snapshots.filter)

	var body struct {
		Count int `json:"count"`
	}
	decode(t, resp, &body)
	assert.Equal(t, 1, body.Count)
}

func TestAuditHandler(t *testing.T) {
	auditReader := &stubAudit{}
	app := newTestApp(&stubAnalytics{}, nil, nil, auditReader)

	t.Run("admin only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/audit-logs", nil)
		req.Header.Set("Authorization", bearer(t, auth.RoleAssistant))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("filters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/audit-logs?action=export&start_date=2024-03-01&page=2", nil)
		req.Header.Set("Authorization", bearer(t, auth.RoleAdmin))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		assert.Equal(t, audit.ActionExport, auditReader.filter.Action)
		assert.Equal(t, 2, auditReader.filter.Page)
		assert.Equal(t, 50, auditReader.filter.PageSize)
		require.NotNil(t, auditReader.filter.StartDate)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *auditReader.filter.StartDate)
		assert.Nil(t, auditReader.filter.EndDate)
	})

	t.Run("bad date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/audit-logs?end_date=yesterday", nil)
		req.Header.Set("Authorization", bearer(t, auth.RoleAdmin))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHealthHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/up", NewHealthHandler(stubPinger{}, "dashboard-api").GetHealth)
	app.Get("/down", NewHealthHandler(stubPinger{err: errors.New("dial tcp: refused")}, "dashboard-api").GetHealth)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/up", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/down", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
