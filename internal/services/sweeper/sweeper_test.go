package sweeper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/electric-checker/internal/config"
	"github.com/magabrotheeeer/electric-checker/internal/models"
	"github.com/magabrotheeeer/electric-checker/internal/services/notifier"
)

// MockUserRepository реализует интерфейс sweeper.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindStaleUsers(ctx context.Context, cutoff time.Time, includeNeverSeen bool) ([]*models.User, error) {
	args := m.Called(ctx, cutoff, includeNeverSeen)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockNotifier реализует интерфейс sweeper.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, subject, body, emailAddr, chatID, username string) notifier.ChannelResult {
	args := m.Called(ctx, subject, body, emailAddr, chatID, username)
	return args.Get(0).(notifier.ChannelResult)
}

// MockAudit реализует интерфейс sweeper.Audit
type MockAudit struct {
	mock.Mock
}

func (m *MockAudit) Record(ctx context.Context, level, message, username string, logType models.LogType) error {
	args := m.Called(ctx, level, message, username, logType)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newService(repo *MockUserRepository, n *MockNotifier, audit *MockAudit) *Service {
	return New(repo, n, audit, newNoopLogger(),
		config.Sweep{
			StalenessThreshold: 2 * time.Hour,
			IncludeNeverSeen:   false,
		},
		config.SMTP{
			MailSubject: "Dikkat!",
			MailBody:    "Do you still have power?",
		})
}

func staleUser(username, email, chatID string) *models.User {
	return &models.User{
		Username: username,
		Email:    email,
		ChatID:   chatID,
	}
}

func TestService_Run(t *testing.T) {
	tests := []struct {
		name      string
		users     []*models.User
		setupMock func(*MockNotifier, *MockAudit)
		wantCount int
	}{
		{
			name: "notifies every stale user",
			users: []*models.User{
				staleUser("user-1", "one@example.com", "100"),
				staleUser("user-2", "two@example.com", "200"),
			},
			setupMock: func(n *MockNotifier, audit *MockAudit) {
				audit.On("Record", mock.Anything, models.LevelInfo,
					"Periodic check performed, found 2 inactive users.",
					"", models.AdminPeriodicCheckStarted).Return(nil).Once()
				for _, u := range []struct{ username, email, chatID string }{
					{"user-1", "one@example.com", "100"},
					{"user-2", "two@example.com", "200"},
				} {
					audit.On("Record", mock.Anything, models.LevelInfo,
						mock.Anything, u.username, models.AdminInactiveUsersNotifed).Return(nil).Once()
					n.On("Notify", mock.Anything, "Dikkat!", "Do you still have power?",
						u.email, u.chatID, u.username).Return(notifier.ChannelResult{}).Once()
				}
			},
			wantCount: 2,
		},
		{
			name:  "zero stale users still audited",
			users: []*models.User{},
			setupMock: func(_ *MockNotifier, audit *MockAudit) {
				audit.On("Record", mock.Anything, models.LevelInfo,
					"Periodic check performed, found 0 inactive users.",
					"", models.AdminPeriodicCheckStarted).Return(nil).Once()
			},
			wantCount: 0,
		},
		{
			name: "delivery failure does not stop the sweep",
			users: []*models.User{
				staleUser("user-1", "one@example.com", "100"),
				staleUser("user-2", "two@example.com", "200"),
			},
			setupMock: func(n *MockNotifier, audit *MockAudit) {
				audit.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
				n.On("Notify", mock.Anything, mock.Anything, mock.Anything,
					"one@example.com", "100", "user-1").
					Return(notifier.ChannelResult{
						Email: errors.New("smtp down"),
						Chat:  errors.New("telegram down"),
					}).Once()
				n.On("Notify", mock.Anything, mock.Anything, mock.Anything,
					"two@example.com", "200", "user-2").
					Return(notifier.ChannelResult{}).Once()
			},
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockNotifier := new(MockNotifier)
			mockAudit := new(MockAudit)

			mockRepo.On("FindStaleUsers", mock.Anything, mock.Anything, false).
				Return(tt.users, nil)
			tt.setupMock(mockNotifier, mockAudit)

			service := newService(mockRepo, mockNotifier, mockAudit)

			got, err := service.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, got)

			mockRepo.AssertExpectations(t)
			mockNotifier.AssertExpectations(t)
			mockAudit.AssertExpectations(t)
		})
	}
}

func TestService_Run_CutoffUsesThreshold(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockNotifier := new(MockNotifier)
	mockAudit := new(MockAudit)

	before := time.Now().Add(-2 * time.Hour)
	mockRepo.On("FindStaleUsers", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		// cutoff должен отстоять от текущего момента ровно на порог
		return !cutoff.Before(before) && !cutoff.After(time.Now().Add(-2*time.Hour+time.Minute))
	}), false).Return([]*models.User{}, nil)
	mockAudit.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := newService(mockRepo, mockNotifier, mockAudit)

	_, err := service.Run(context.Background())
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_Run_StorageErrorAborts(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockNotifier := new(MockNotifier)
	mockAudit := new(MockAudit)

	mockRepo.On("FindStaleUsers", mock.Anything, mock.Anything, false).
		Return(nil, errors.New("db error"))

	service := newService(mockRepo, mockNotifier, mockAudit)

	got, err := service.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, got)

	mockNotifier.AssertNotCalled(t, "Notify",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockAudit.AssertNotCalled(t, "Record",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
