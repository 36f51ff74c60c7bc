package app

import (
	"time"

	"github.com/Seungpang/jwp-shopping-cart/internal/messaging/kafka"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	// PostgresDSN пустой — работаем на in-memory хранилище.
	PostgresDSN string

	// KafkaBrokers пустой — события заказов остаются в outbox.
	KafkaBrokers string
	OrderTopic   string
	DLQTopic     string

	JWTSecret string
	TokenTTL  time.Duration

	OutboxPollInterval time.Duration
}

// DefaultConfig возвращает базовые настройки для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:           ":8080",
		MetricsAddr:        ":9090",
		OrderTopic:         kafka.TopicOrderEvents,
		DLQTopic:           kafka.TopicDeadLetterQueue,
		JWTSecret:          "insecure-dev-secret",
		TokenTTL:           1 * time.Hour,
		OutboxPollInterval: 1 * time.Second,
	}
}
