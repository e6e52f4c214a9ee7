package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/mycompta/internal/pkg/logger"
	"github.com/piresc/mycompta/internal/pkg/requestcontext"
	"github.com/piresc/mycompta/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPanicRecovery(t *testing.T) {
	tests := []struct {
		name       string
		panicValue interface{}
		expectType string
	}{
		{name: "string panic", panicValue: "test panic message", expectType: "string"},
		{name: "error panic", panicValue: fmt.Errorf("test error panic"), expectType: "*errors.errorString"},
		{name: "int panic", panicValue: 42, expectType: "int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			zapLogger := &logger.ZapLogger{Logger: zap.New(core)}

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/tva", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Response().Header().Set(echo.HeaderXRequestID, "req-1")

			handler := PanicRecovery(zapLogger)(func(c echo.Context) error {
				panic(tt.panicValue)
			})

			require.NotPanics(t, func() {
				assert.NoError(t, handler(c))
			})
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var body utils.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Internal server error", body.Error)

			entries := logs.FilterMessage("Panic recovered during request processing").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, tt.expectType, fields["panic_type"])
			assert.Equal(t, "req-1", fields["request_id"])
			assert.Equal(t, "anonymous", fields["user_id"])
			assert.Equal(t, "/api/v1/tva", fields["path"])
			assert.NotEmpty(t, fields["stack_trace"])
		})
	}
}

func TestPanicRecovery_NoPanic(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler := PanicRecovery(logger.NewNopLogger())(func(c echo.Context) error {
		return c.String(http.StatusOK, "fine")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	handler := RequestID()(func(c echo.Context) error {
		assert.Equal(t, c.Get("request_id"), requestcontext.GetRequestID(c.Request().Context()))
		return c.String(http.StatusOK, c.Get("request_id").(string))
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "from-client")
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, "from-client", rec.Header().Get(echo.HeaderXRequestID))
		assert.Equal(t, "from-client", rec.Body.String())
	})

	t.Run("generates id", func(t *testing.T) {
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
		assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
	})
}
