package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/electric-checker/internal/models"
)

// MockAudit реализует интерфейс middlewarectx.Audit
type MockAudit struct {
	mock.Mock
}

func (m *MockAudit) Record(ctx context.Context, level, message, username string, logType models.LogType) error {
	args := m.Called(ctx, level, message, username, logType)
	return args.Error(0)
}

func TestAdminKeyMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		configuredKey  string
		requestKey     string
		setupMock      func(*MockAudit)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "корректный ключ пропускает запрос",
			configuredKey:  "secret",
			requestKey:     "secret",
			setupMock:      func(_ *MockAudit) {},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:          "неверный ключ отклоняется",
			configuredKey: "secret",
			requestKey:    "wrong",
			setupMock: func(a *MockAudit) {
				a.On("Record", mock.Anything, models.LevelError, mock.Anything,
					"", models.SecurityUnauthorizedAccess).Return(nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectNext:     false,
		},
		{
			name:          "отсутствующий ключ отклоняется",
			configuredKey: "secret",
			requestKey:    "",
			setupMock: func(a *MockAudit) {
				a.On("Record", mock.Anything, models.LevelError, mock.Anything,
					"", models.SecurityUnauthorizedAccess).Return(nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectNext:     false,
		},
		{
			name:          "пустой настроенный ключ блокирует доступ",
			configuredKey: "",
			requestKey:    "anything",
			setupMock: func(a *MockAudit) {
				a.On("Record", mock.Anything, models.LevelError, mock.Anything,
					"", models.SecurityUnauthorizedAccess).Return(nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectNext:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAudit := new(MockAudit)
			tt.setupMock(mockAudit)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := AdminKeyMiddleware(tt.configuredKey, mockAudit, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "/admin/users/list", nil)
			if tt.requestKey != "" {
				req.Header.Set(AdminKeyHeader, tt.requestKey)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if !tt.expectNext {
				assert.True(t, strings.Contains(w.Body.String(), "Invalid or missing admin key"))
			}

			mockAudit.AssertExpectations(t)
		})
	}
}
