package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDBPool mocks database.Pool
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

func healthyCheck() HealthChecker {
	return HealthCheckerFunc(func(context.Context) error { return nil })
}

func failingCheck(msg string) HealthChecker {
	return HealthCheckerFunc(func(context.Context) error { return errors.New(msg) })
}

func TestHandleHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		checks         map[string]HealthChecker
		wantCode       int
		wantMessage    string
		wantComponents map[string]string
	}{
		{
			name:           "database only",
			wantCode:       http.StatusOK,
			wantComponents: map[string]string{"database": "ok"},
		},
		{
			name:           "database and cache healthy",
			checks:         map[string]HealthChecker{"redis": healthyCheck()},
			wantCode:       http.StatusOK,
			wantComponents: map[string]string{"database": "ok", "redis": "ok"},
		},
		{
			name:           "database down",
			pingErr:        errors.New("connection refused"),
			checks:         map[string]HealthChecker{"redis": healthyCheck()},
			wantCode:       http.StatusServiceUnavailable,
			wantMessage:    "database connection failed",
			wantComponents: map[string]string{"database": "unavailable", "redis": "ok"},
		},
		{
			name:           "database timeout",
			pingErr:        context.DeadlineExceeded,
			wantCode:       http.StatusServiceUnavailable,
			wantMessage:    "database connection failed",
			wantComponents: map[string]string{"database": "unavailable"},
		},
		{
			name:           "cache down",
			checks:         map[string]HealthChecker{"redis": failingCheck("dial tcp: refused")},
			wantCode:       http.StatusServiceUnavailable,
			wantMessage:    "redis check failed",
			wantComponents: map[string]string{"database": "ok", "redis": "unavailable"},
		},
		{
			name: "first failing check by name",
			checks: map[string]HealthChecker{
				"redis":     failingCheck("refused"),
				"affiliate": failingCheck("timeout"),
			},
			wantCode:       http.StatusServiceUnavailable,
			wantMessage:    "affiliate check failed",
			wantComponents: map[string]string{"database": "ok", "redis": "unavailable", "affiliate": "unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &MockDBPool{}
			db.On("Ping", mock.Anything).Return(tt.pingErr)

			w := httptest.NewRecorder()
			HandleReadyz(db, tt.checks).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			var body HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantComponents, body.Components)
			db.AssertExpectations(t)
		})
	}
}
