package app

import (
	"context"
	"testing"
	"time"

	"github.com/Seungpang/jwp-shopping-cart/internal/messaging/kafka"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected HTTPAddr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected MetricsAddr :9090, got %s", cfg.MetricsAddr)
	}
	if cfg.OrderTopic != kafka.TopicOrderEvents {
		t.Errorf("expected order topic %s, got %s", kafka.TopicOrderEvents, cfg.OrderTopic)
	}
	if cfg.DLQTopic != kafka.TopicDeadLetterQueue {
		t.Errorf("expected dlq topic %s, got %s", kafka.TopicDeadLetterQueue, cfg.DLQTopic)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("expected token ttl 1h, got %s", cfg.TokenTTL)
	}
	if cfg.OutboxPollInterval != time.Second {
		t.Errorf("expected poll interval 1s, got %s", cfg.OutboxPollInterval)
	}
	if cfg.PostgresDSN != "" {
		t.Errorf("expected empty postgres dsn by default, got %s", cfg.PostgresDSN)
	}
	if cfg.KafkaBrokers != "" {
		t.Errorf("expected empty kafka brokers by default, got %s", cfg.KafkaBrokers)
	}
}

func TestNewDependencies_InMemory(t *testing.T) {
	deps, err := NewDependencies(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer deps.Close()

	if deps.Products == nil || deps.Cart == nil || deps.Orders == nil ||
		deps.Customers == nil || deps.Outbox == nil {
		t.Fatal("all repositories must be wired in memory mode")
	}
	if deps.Store != nil {
		t.Fatal("memory mode must not open a postgres store")
	}
}
