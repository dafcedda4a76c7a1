package periodiccheck

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSweeper реализует интерфейс periodiccheck.Sweeper
type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) Run(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestPeriodicCheckHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockSweeper)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный обход",
			setupMock: func(m *MockSweeper) {
				m.On("Run", mock.Anything).Return(3, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"inactive_users":3`,
		},
		{
			name: "ошибка хранилища",
			setupMock: func(m *MockSweeper) {
				m.On("Run", mock.Anything).Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"Periodic check failed"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSweeper := new(MockSweeper)
			tt.setupMock(mockSweeper)

			handler := New(logger, mockSweeper)

			req := httptest.NewRequest(http.MethodGet, "/admin/periodic-check", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockSweeper.AssertExpectations(t)
		})
	}
}
