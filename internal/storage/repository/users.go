package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/electric-checker/internal/models"
)

const userColumns = `username, email, first_name, last_name, phone_number, chat_id,
			      has_license, last_request_date`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	u := &models.User{}
	var lastRequestDate sql.NullTime
	if err := row.Scan(&u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.ChatID, &u.HasLicense, &lastRequestDate); err != nil {
		return nil, err
	}
	if lastRequestDate.Valid {
		u.LastRequestDate = &lastRequestDate.Time
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя и возвращает его с
// сгенерированным username. Лицензия по умолчанию неактивна, дата
// последней отметки пустая. При нарушении уникальности email,
// phone_number или chat_id возвращает ErrDuplicateUser.
func (s *Storage) CreateUser(ctx context.Context, du models.DummyUser) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	username := uuid.New().String()
	query := `INSERT INTO users (username, email, first_name, last_name, phone_number, chat_id)
			  VALUES ($1, $2, $3, $4, $5, $6);`
	if _, err := s.DB.ExecContext(ctx, query,
		username, du.Email, du.FirstName, du.LastName, du.PhoneNumber, du.ChatID); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateUser)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.User{
		Username:    username,
		Email:       du.Email,
		FirstName:   du.FirstName,
		LastName:    du.LastName,
		PhoneNumber: du.PhoneNumber,
		ChatID:      du.ChatID,
	}, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE username = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetLicensedUserByUsername возвращает пользователя по username только при
// активной лицензии. Пользователь без лицензии неотличим от отсутствующего.
func (s *Storage) GetLicensedUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetLicensedUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE username = $1 AND has_license = TRUE`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindUserByEmail возвращает пользователя по email.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindUserByContact ищет пользователя по любому из контактных
// идентификаторов: email, phone_number или chat_id.
func (s *Storage) FindUserByContact(ctx context.Context, email, phoneNumber, chatID string) (*models.User, error) {
	const op = "storage.FindUserByContact"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1 OR phone_number = $2 OR chat_id = $3
			  LIMIT 1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email, phoneNumber, chatID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY last_name, first_name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLastRequestDate фиксирует отметку пользователя: обновляет время
// последнего запроса. Учитываются только пользователи с активной лицензией.
func (s *Storage) UpdateLastRequestDate(ctx context.Context, username string, at time.Time) error {
	const op = "storage.UpdateLastRequestDate"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET last_request_date = $1
			  WHERE username = $2 AND has_license = TRUE`
	res, err := s.DB.ExecContext(ctx, query, at, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// SetLicense включает или выключает лицензию пользователя.
func (s *Storage) SetLicense(ctx context.Context, username string, active bool) error {
	const op = "storage.SetLicense"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET has_license = $1
			  WHERE username = $2`
	res, err := s.DB.ExecContext(ctx, query, active, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// DeleteUserByEmail удаляет пользователя по email и возвращает его username.
// Записи журнала, ссылавшиеся на пользователя, сохраняются: ссылка в журнале
// слабая и остаётся как есть.
func (s *Storage) DeleteUserByEmail(ctx context.Context, email string) (string, error) {
	const op = "storage.DeleteUserByEmail"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users
			  WHERE email = $1
			  RETURNING username`
	var username string
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return username, nil
}

// FindStaleUsers возвращает пользователей, отметившихся раньше cutoff.
// Пользователи, которые не отмечались ни разу (last_request_date IS NULL),
// по умолчанию не считаются неактивными; includeNeverSeen включает их в выборку.
func (s *Storage) FindStaleUsers(ctx context.Context, cutoff time.Time, includeNeverSeen bool) ([]*models.User, error) {
	const op = "storage.FindStaleUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE last_request_date < $1`
	if includeNeverSeen {
		query += ` OR last_request_date IS NULL`
	}
	rows, err := s.DB.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
