package remove

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

	"github.com/magabrotheeeer/electric-checker/internal/models"
	"github.com/magabrotheeeer/electric-checker/internal/storage/repository"
)

// MockStore реализует интерфейс remove.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) DeleteUserByEmail(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

// MockAudit реализует интерфейс remove.Audit
type MockAudit struct {
	mock.Mock
}

func (m *MockAudit) Record(ctx context.Context, level, message, username string, logType models.LogType) error {
	args := m.Called(ctx, level, message, username, logType)
	return args.Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockStore, *MockAudit)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление",
			body: `{"email":"gone@example.com"}`,
			setupMock: func(s *MockStore, a *MockAudit) {
				s.On("DeleteUserByEmail", mock.Anything, "gone@example.com").Return("user-1", nil)
				a.On("Record", mock.Anything, models.LevelInfo, "User deleted successfully.",
					"user-1", models.AdminUserDeleted).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"User deleted successfully"`,
		},
		{
			name: "отсутствует email",
			body: `{}`,
			setupMock: func(_ *MockStore, a *MockAudit) {
				a.On("Record", mock.Anything, models.LevelError, mock.Anything,
					"", models.ErrorAPI).Return(nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"Email is Required."`,
		},
		{
			name: "пользователь не найден",
			body: `{"email":"missing@example.com"}`,
			setupMock: func(s *MockStore, a *MockAudit) {
				s.On("DeleteUserByEmail", mock.Anything, "missing@example.com").
					Return("", repository.ErrUserNotFound)
				a.On("Record", mock.Anything, models.LevelError, mock.Anything,
					"", models.AdminUserDeleted).Return(nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"User not found"`,
		},
		{
			name: "ошибка хранилища",
			body: `{"email":"gone@example.com"}`,
			setupMock: func(s *MockStore, _ *MockAudit) {
				s.On("DeleteUserByEmail", mock.Anything, "gone@example.com").
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"Operation Failed."`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockStore)
			mockAudit := new(MockAudit)
			tt.setupMock(mockStore, mockAudit)

			handler := New(logger, mockStore, mockAudit)

			req := httptest.NewRequest(http.MethodDelete, "/admin/users/delete", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockStore.AssertExpectations(t)
			mockAudit.AssertExpectations(t)
		})
	}
}
