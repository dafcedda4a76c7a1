package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Ошибки уровня хранилища. Обработчики транслируют их в HTTP-статусы.
var (
	// ErrUserNotFound пользователь с указанным username/email не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser нарушена уникальность email, phone_number или chat_id.
	ErrDuplicateUser = errors.New("user already exists")
)

// isUniqueViolation определяет, вызвана ли ошибка нарушением
// уникального ограничения PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return false
}
