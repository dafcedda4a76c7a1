package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/electric-checker/internal/models"
)

// AppendLog добавляет запись в журнал событий. Журнал только пополняется,
// записи никогда не изменяются и не удаляются приложением.
func (s *Storage) AppendLog(ctx context.Context, level, message string, username *string, logType models.LogType) error {
	const op = "storage.AppendLog"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO logs (level, message, username, log_type)
			  VALUES ($1, $2, $3, $4);`
	if _, err := s.DB.ExecContext(ctx, query, level, message, username, logType.String()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListLogs возвращает страницу записей журнала указанной категории,
// отсортированных от новых к старым, и общее количество записей категории.
func (s *Storage) ListLogs(ctx context.Context, logType models.LogType, page, perPage int) ([]models.LogEntry, int, error) {
	const op = "storage.ListLogs"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM logs WHERE log_type = $1`
	if err := s.DB.QueryRowContext(ctx, countQuery, logType.String()).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, timestamp, level, message, username, log_type
			  FROM logs
			  WHERE log_type = $1
			  ORDER BY timestamp DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, logType.String(), perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []models.LogEntry
	for rows.Next() {
		var entry models.LogEntry
		var logTypeRaw string
		if err = rows.Scan(&entry.ID, &entry.Timestamp, &entry.Level,
			&entry.Message, &entry.Username, &logTypeRaw); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		entry.LogType = models.LogType(logTypeRaw)
		result = append(result, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}
