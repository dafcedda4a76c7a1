package models

import "fmt"

// LogType закрытое перечисление категорий записей журнала.
// Хранится в базе как строка, на границе API парсится строго:
// неизвестное значение отклоняется, а не молча пропускается.
type LogType string

// Все категории записей журнала.
const (
	SystemStartup      LogType = "SYSTEM_STARTUP"
	SystemShutdown     LogType = "SYSTEM_SHUTDOWN"
	SystemMaintenance  LogType = "SYSTEM_MAINTENANCE"
	SystemConfigUpdate LogType = "SYSTEM_CONFIG_UPDATE"

	HealthCheck LogType = "HEALTH_CHECK"

	ElectricCheckSuccess        LogType = "ELECTRIC_CHECK_SUCCESS"
	ElectricCheckUserNotFound   LogType = "ELECTRIC_CHECK_USER_NOT_FOUND"
	ElectricCheckInvalidRequest LogType = "ELECTRIC_CHECK_INVALID_REQUEST"
	ElectricCheckRetrieval      LogType = "ELECTRIC_CHECK_RETRIEVAL"

	UserRegister LogType = "USER_REGISTER"
	UserUpdate   LogType = "USER_UPDATE"
	UserLogin    LogType = "USER_LOGIN"
	UserLogout   LogType = "USER_LOGOUT"
	UserDeletion LogType = "USER_DELETION"

	NotificationEmailSent    LogType = "NOTIFICATION_EMAIL_SENT"
	NotificationTelegramSent LogType = "NOTIFICATION_TELEGRAM_SENT"
	NotificationFailed       LogType = "NOTIFICATION_FAILED"

	LicenseActivated   LogType = "LICENSE_ACTIVATED"
	LicenseDeactivated LogType = "LICENSE_DEACTIVATED"

	SecurityUnauthorizedAccess LogType = "SECURITY_UNAUTHORIZED_ACCESS"
	SecurityLoginFailure       LogType = "SECURITY_LOGIN_FAILURE"
	SecurityPasswordReset      LogType = "SECURITY_PASSWORD_RESET"

	ErrorAPI          LogType = "ERROR_API"
	ErrorDatabase     LogType = "ERROR_DATABASE"
	ErrorNotification LogType = "ERROR_NOTIFICATION"

	AdminLogTypeListViewed    LogType = "ADMIN_LOG_TYPE_LIST_VIEWED"
	AdminUserListViewed       LogType = "ADMIN_USER_LIST_VIEWED"
	AdminUserRegistered       LogType = "ADMIN_USER_REGISTERED"
	AdminUserDeleted          LogType = "ADMIN_USER_DELETED"
	AdminLogsViewed           LogType = "ADMIN_LOGS_VIEWED"
	AdminLicenseActivated     LogType = "ADMIN_LICENSE_ACTIVATED"
	AdminLicenseDeactivated   LogType = "ADMIN_LICENSE_DEACTIVATED"
	AdminPeriodicCheckStarted LogType = "ADMIN_PERIODIC_CHECK_STARTED"
	AdminInactiveUsersNotifed LogType = "ADMIN_INACTIVE_USERS_NOTIFIED"
	AdminTestEmailSent        LogType = "ADMIN_TEST_EMAIL_SENT"
	AdminNotificationSent     LogType = "ADMIN_NOTIFICATION_SENT"
)

var allLogTypes = []LogType{
	SystemStartup, SystemShutdown, SystemMaintenance, SystemConfigUpdate,
	HealthCheck,
	ElectricCheckSuccess, ElectricCheckUserNotFound, ElectricCheckInvalidRequest, ElectricCheckRetrieval,
	UserRegister, UserUpdate, UserLogin, UserLogout, UserDeletion,
	NotificationEmailSent, NotificationTelegramSent, NotificationFailed,
	LicenseActivated, LicenseDeactivated,
	SecurityUnauthorizedAccess, SecurityLoginFailure, SecurityPasswordReset,
	ErrorAPI, ErrorDatabase, ErrorNotification,
	AdminLogTypeListViewed, AdminUserListViewed, AdminUserRegistered, AdminUserDeleted,
	AdminLogsViewed, AdminLicenseActivated, AdminLicenseDeactivated,
	AdminPeriodicCheckStarted, AdminInactiveUsersNotifed, AdminTestEmailSent, AdminNotificationSent,
}

var logTypeSet = func() map[LogType]struct{} {
	m := make(map[LogType]struct{}, len(allLogTypes))
	for _, lt := range allLogTypes {
		m[lt] = struct{}{}
	}
	return m
}()

// AllLogTypes возвращает копию списка всех категорий в стабильном порядке.
func AllLogTypes() []LogType {
	out := make([]LogType, len(allLogTypes))
	copy(out, allLogTypes)
	return out
}

// ParseLogType проверяет, что строка является известной категорией журнала.
func ParseLogType(s string) (LogType, error) {
	lt := LogType(s)
	if _, ok := logTypeSet[lt]; !ok {
		return "", fmt.Errorf("unknown log type: %q", s)
	}
	return lt, nil
}

func (lt LogType) String() string {
	return string(lt)
}
