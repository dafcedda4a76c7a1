package models

import "time"

// Уровни важности записей журнала.
const (
	LevelInfo  = "INFO"
	LevelError = "ERROR"
)

// LogEntry представляет запись журнала событий. Записи создаются на каждую
// значимую операцию сервиса и никогда не изменяются и не удаляются.
// Username — слабая ссылка на пользователя: запись переживает удаление
// пользователя и сохраняет его идентификатор как есть.
type LogEntry struct {
	ID        int64     `json:"id"`        // Монотонный идентификатор
	Timestamp time.Time `json:"timestamp"` // Время создания, неизменяемое
	Level     string    `json:"level"`     // INFO или ERROR
	Message   string    `json:"message"`   // Текстовое описание события
	Username  *string   `json:"username"`  // Необязательная ссылка на пользователя
	LogType   LogType   `json:"log_type"`  // Категория события
}

// Pagination описывает метаданные постраничного вывода журнала.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}
