// Package models содержит доменные структуры пользователя и журнала событий,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя сервиса.
// Поле LastRequestDate может быть nil — это означает, что пользователь
// ещё ни разу не отмечался.
type User struct {
	Username        string     `json:"username"`          // Уникальный идентификатор (UUID), генерируется при создании
	Email           string     `json:"email"`             // Электронная почта (уникальная)
	FirstName       string     `json:"first_name"`        // Имя
	LastName        string     `json:"last_name"`         // Фамилия
	PhoneNumber     string     `json:"phone_number"`      // Номер телефона (уникальный)
	ChatID          string     `json:"chat_id"`           // Идентификатор чата в Telegram (уникальный)
	HasLicense      bool       `json:"has_license"`       // Доступ к electric-check только при активной лицензии
	LastRequestDate *time.Time `json:"last_request_date"` // Время последней отметки
}

// DummyUser используется для приёма данных регистрации из JSON-запроса,
// прежде чем конвертировать их в User.
type DummyUser struct {
	FirstName   string `json:"first_name" validate:"required"`   // Имя
	LastName    string `json:"last_name" validate:"required"`    // Фамилия
	Email       string `json:"email" validate:"required,email"`  // Электронная почта
	PhoneNumber string `json:"phone_number" validate:"required"` // Номер телефона
	ChatID      string `json:"chat_id" validate:"required"`      // Идентификатор чата
}
