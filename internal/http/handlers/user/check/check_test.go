package check

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/electric-checker/internal/models"
	"github.com/magabrotheeeer/electric-checker/internal/storage/repository"
)

// MockStore реализует интерфейс check.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetLicensedUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) UpdateLastRequestDate(ctx context.Context, username string, at time.Time) error {
	args := m.Called(ctx, username, at)
	return args.Error(0)
}

// MockAudit реализует интерфейс check.Audit
type MockAudit struct {
	mock.Mock
}

func (m *MockAudit) Record(ctx context.Context, level, message, username string, logType models.LogType) error {
	args := m.Called(ctx, level, message, username, logType)
	return args.Error(0)
}

func TestCheckHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	licensedUser := &models.User{
		Username:   "user-1",
		Email:      "user@example.com",
		HasLicense: true,
	}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockStore, *MockAudit)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная отметка",
			body: `{"username":"user-1"}`,
			setupMock: func(s *MockStore, a *MockAudit) {
				s.On("GetLicensedUserByUsername", mock.Anything, "user-1").Return(licensedUser, nil)
				s.On("UpdateLastRequestDate", mock.Anything, "user-1", mock.Anything).Return(nil)
				a.On("Record", mock.Anything, models.LevelInfo, mock.Anything,
					"user-1", models.ElectricCheckSuccess).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"user":"user@example.com"`,
		},
		{
			name: "отсутствует username",
			body: `{}`,
			setupMock: func(_ *MockStore, a *MockAudit) {
				a.On("Record", mock.Anything, models.LevelError, mock.Anything,
					"", models.ElectricCheckInvalidRequest).Return(nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"Username is required"`,
		},
		{
			name: "пользователь без лицензии",
			body: `{"username":"user-2"}`,
			setupMock: func(s *MockStore, a *MockAudit) {
				s.On("GetLicensedUserByUsername", mock.Anything, "user-2").
					Return(nil, repository.ErrUserNotFound)
				a.On("Record", mock.Anything, models.LevelError, mock.Anything,
					"user-2", models.ElectricCheckUserNotFound).Return(nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"User not found"`,
		},
		{
			name: "ошибка хранилища",
			body: `{"username":"user-1"}`,
			setupMock: func(s *MockStore, _ *MockAudit) {
				s.On("GetLicensedUserByUsername", mock.Anything, "user-1").
					Return(nil, errors.New("db error"))
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

			req := httptest.NewRequest(http.MethodPost, "/user/electric-check", strings.NewReader(tt.body))
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
