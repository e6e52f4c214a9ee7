package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	e := echo.New()
	RegisterHealthEndpoints(e, "compta-service", "1.2.3", nil)

	rec := serve(e, "/api/v1/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPingEndpoint(t *testing.T) {
	e := echo.New()
	RegisterHealthEndpoints(e, "compta-service", "1.2.3", nil)

	rec := serve(e, "/ping")
	require.Equal(t, http.StatusOK, rec.Code)

	var info BuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "compta-service", info.ServiceName)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.False(t, info.ServerTime.IsZero())
}

func TestReadyEndpoint(t *testing.T) {
	tests := []struct {
		name         string
		storeErr     error
		expectStatus int
		expectReport string
	}{
		{name: "all healthy", expectStatus: http.StatusOK, expectReport: "ready"},
		{name: "store down", storeErr: errors.New("connection refused"), expectStatus: http.StatusServiceUnavailable, expectReport: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService()
			service.AddChecker("store", CheckerFunc(func(context.Context) error { return tt.storeErr }))
			service.AddChecker("events", CheckerFunc(func(context.Context) error { return nil }))

			e := echo.New()
			RegisterHealthEndpoints(e, "compta-service", "", service)

			rec := serve(e, "/api/v1/health/ready")
			assert.Equal(t, tt.expectStatus, rec.Code)

			var report Report
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
			assert.Equal(t, tt.expectReport, report.Status)
			assert.Equal(t, "compta-service", report.Service)
			assert.Equal(t, "healthy", report.Dependencies["events"].Status)
			if tt.storeErr != nil {
				assert.Equal(t, "connection refused", report.Dependencies["store"].Error)
			}
		})
	}
}

func TestNilClientCheckers(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, NewMongoChecker(nil).CheckHealth(ctx))
	assert.NoError(t, NewRedisChecker(nil).CheckHealth(ctx))
	assert.NoError(t, NewPostgresChecker(nil).CheckHealth(ctx))
}
