// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек сервиса
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	AdminKey                string `yaml:"admin_key" env:"ADMIN_KEY"`
	HTTPServer              `yaml:"http_server"`
	SMTP                    `yaml:"smtp"`
	Telegram                `yaml:"telegram"`
	Sweep                   `yaml:"sweep"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":3000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// SMTP структура для настройки почтового транспорта
type SMTP struct {
	SMTPHost    string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort    string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser    string `yaml:"user" env:"SMTP_USER"`
	SMTPPass    string `yaml:"pass" env:"SMTP_PASS"`
	MailSubject string `yaml:"mail_subject" env:"MAIL_SUBJECT" env-default:"Dikkat!"`
	MailBody    string `yaml:"mail_body" env:"MAIL_BODY" env-default:"We have not heard from you for a while. Do you still have power?"`
}

// Telegram структура для настройки телеграм-бота
type Telegram struct {
	Token string `yaml:"token" env:"TELEGRAM_TOKEN"`
}

// Sweep структура для настройки проверки неактивных пользователей
type Sweep struct {
	StalenessThreshold time.Duration `yaml:"staleness_threshold" env:"SWEEP_STALENESS_THRESHOLD" env-default:"2h"`
	Interval           time.Duration `yaml:"interval" env:"SWEEP_INTERVAL" env-default:"2h"`
	IncludeNeverSeen   bool          `yaml:"include_never_seen" env:"SWEEP_INCLUDE_NEVER_SEEN" env-default:"false"`
	NotifyTimeout      time.Duration `yaml:"notify_timeout" env:"SWEEP_NOTIFY_TIMEOUT" env-default:"15s"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH, при ошибке завершает процесс
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"SMTP:\n"+
			"  Host: %s\n"+
			"  Port: %s\n"+
			"  User: %s\n"+
			"Sweep:\n"+
			"  StalenessThreshold: %s\n"+
			"  Interval: %s\n"+
			"  IncludeNeverSeen: %t\n"+
			"  NotifyTimeout: %s\n",
		c.Env,
		c.StorageConnectionString,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.SMTPHost,
		c.SMTPPort,
		c.SMTPUser,
		c.StalenessThreshold,
		c.Interval,
		c.IncludeNeverSeen,
		c.NotifyTimeout,
	)
}
