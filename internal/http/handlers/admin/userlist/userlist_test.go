package userlist

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
)

// MockStore реализует интерфейс userlist.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockAudit реализует интерфейс userlist.Audit
type MockAudit struct {
	mock.Mock
}

func (m *MockAudit) Record(ctx context.Context, level, message, username string, logType models.LogType) error {
	args := m.Called(ctx, level, message, username, logType)
	return args.Error(0)
}

func TestUserListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockStore, *MockAudit)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "список пользователей",
			setupMock: func(s *MockStore, a *MockAudit) {
				s.On("ListUsers", mock.Anything).Return([]*models.User{
					{Username: "user-1", Email: "one@example.com"},
					{Username: "user-2", Email: "two@example.com"},
				}, nil)
				a.On("Record", mock.Anything, models.LevelInfo,
					"User list retrieved successfully by admin.",
					"", models.AdminUserListViewed).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"user-1"`,
		},
		{
			name: "пустой список",
			setupMock: func(s *MockStore, a *MockAudit) {
				s.On("ListUsers", mock.Anything).Return([]*models.User{}, nil)
				a.On("Record", mock.Anything, models.LevelInfo,
					"No users found during admin user list retrieval.",
					"", models.AdminUserListViewed).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"users":[]`,
		},
		{
			name: "ошибка хранилища",
			setupMock: func(s *MockStore, _ *MockAudit) {
				s.On("ListUsers", mock.Anything).Return(nil, errors.New("db error"))
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

			req := httptest.NewRequest(http.MethodGet, "/admin/users/list", nil)
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
