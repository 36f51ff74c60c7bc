package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
	"github.com/Seungpang/jwp-shopping-cart/internal/storage/memory"
	"github.com/Seungpang/jwp-shopping-cart/internal/storage/postgres"
)

// Dependencies содержит хранилища приложения.
type Dependencies struct {
	Products  domain.ProductCatalog
	Cart      domain.CartRepository
	Orders    domain.OrderRepository
	Customers domain.CustomerRepository
	Outbox    domain.OutboxRepository

	// Store не nil только при работе на PostgreSQL.
	Store  *postgres.Store
	Logger *log.Entry
}

// NewDependencies собирает хранилища: PostgreSQL при заданном DSN,
// иначе in-memory реализации для локальной разработки и тестов.
func NewDependencies(ctx context.Context, dsn string, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	if dsn == "" {
		logger.Info("postgres dsn is empty, using in-memory storage")
		cartRepo := memory.NewCartRepository()
		outboxRepo := memory.NewOutboxRepository()
		return &Dependencies{
			Products:  memory.NewProductRepository(),
			Cart:      cartRepo,
			Orders:    memory.NewOrderRepository(cartRepo, outboxRepo),
			Customers: memory.NewCustomerRepository(),
			Outbox:    outboxRepo,
			Logger:    logger,
		}, nil
	}

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}

	logger.Info("using postgres storage")
	return &Dependencies{
		Products:  postgres.NewProductRepository(store),
		Cart:      postgres.NewCartRepository(store),
		Orders:    postgres.NewOrderRepository(store),
		Customers: postgres.NewCustomerRepository(store),
		Outbox:    postgres.NewOutboxRepository(store),
		Store:     store,
		Logger:    logger,
	}, nil
}

// Close освобождает ресурсы хранилищ.
func (d *Dependencies) Close() {
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
