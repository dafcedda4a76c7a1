package register

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
	"github.com/magabrotheeeer/electric-checker/internal/storage/repository"
)

// MockStore реализует интерфейс register.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateUser(ctx context.Context, du models.DummyUser) (*models.User, error) {
	args := m.Called(ctx, du)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockAudit реализует интерфейс register.Audit
type MockAudit struct {
	mock.Mock
}

func (m *MockAudit) Record(ctx context.Context, level, message, username string, logType models.LogType) error {
	args := m.Called(ctx, level, message, username, logType)
	return args.Error(0)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := `{"first_name":"Ivan","last_name":"Petrov","email":"user@example.com","phone_number":"+79990000001","chat_id":"100500"}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockStore, *MockAudit)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: validBody,
			setupMock: func(s *MockStore, a *MockAudit) {
				s.On("CreateUser", mock.Anything, mock.Anything).
					Return(&models.User{Username: "user-1", Email: "user@example.com"}, nil)
				a.On("Record", mock.Anything, models.LevelInfo, mock.Anything,
					"user-1", models.AdminUserRegistered).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"user-1"`,
		},
		{
			name: "email уже занят",
			body: validBody,
			setupMock: func(s *MockStore, a *MockAudit) {
				s.On("CreateUser", mock.Anything, mock.Anything).
					Return(nil, repository.ErrDuplicateUser)
				a.On("Record", mock.Anything, models.LevelError, mock.Anything,
					"", models.UserRegister).Return(nil)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"Email already registered"`,
		},
		{
			name: "неполные данные",
			body: `{"email":"user@example.com"}`,
			setupMock: func(_ *MockStore, a *MockAudit) {
				a.On("Record", mock.Anything, models.LevelError, mock.Anything,
					"", models.ErrorAPI).Return(nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"Missing information"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{`,
			setupMock:      func(_ *MockStore, _ *MockAudit) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockStore)
			mockAudit := new(MockAudit)
			tt.setupMock(mockStore, mockAudit)

			handler := New(logger, mockStore, mockAudit)

			req := httptest.NewRequest(http.MethodPost, "/admin/users/register", strings.NewReader(tt.body))
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
