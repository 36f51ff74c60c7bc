package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/Seungpang/jwp-shopping-cart/internal/health"
	"github.com/Seungpang/jwp-shopping-cart/internal/metrics"
	"github.com/Seungpang/jwp-shopping-cart/internal/service/auth"
	"github.com/Seungpang/jwp-shopping-cart/internal/service/cart"
	"github.com/Seungpang/jwp-shopping-cart/internal/service/httpapi"
	"github.com/Seungpang/jwp-shopping-cart/internal/service/order"
	"github.com/Seungpang/jwp-shopping-cart/internal/service/outbox"
	"github.com/Seungpang/jwp-shopping-cart/internal/version"

	kafkamsg "github.com/Seungpang/jwp-shopping-cart/internal/messaging/kafka"
)

// Run поднимает приложение целиком: хранилища, сервисы, HTTP API,
// метрики и outbox worker. Блокируется до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	cartMetrics := metrics.NewCartMetrics()

	authSvc := auth.NewService(deps.Customers, []byte(cfg.JWTSecret), cfg.TokenTTL)
	cartSvc := cart.NewService(deps.Products, deps.Cart, cartMetrics)
	orderSvc := order.NewAssembler(deps.Products, deps.Cart, deps.Orders, cartMetrics)

	handler := httpapi.NewHandler(authSvc, cartSvc, orderSvc, deps.Products)
	router := httpapi.NewRouter(handler)

	// Kafka producer опционален: без него события копятся в outbox.
	kafkaProducer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(kafkaProducer, logger)

	var workerWG sync.WaitGroup
	if kafkaProducer != nil {
		publisher := kafkamsg.NewOutboxPublisher(kafkaProducer, cfg.OrderTopic)
		dlqPublisher := kafkamsg.NewOutboxPublisher(kafkaProducer, cfg.DLQTopic)
		worker := outbox.NewWorker(deps.Outbox, publisher,
			outbox.WithDLQPublisher(dlqPublisher),
			outbox.WithPollInterval(cfg.OutboxPollInterval),
		)

		workerWG.Add(1)
		go func() {
			defer workerWG.Done()
			worker.Run(ctx)
		}()
	} else {
		logger.Info("kafka brokers not configured, outbox worker disabled")
	}

	healthHandler := healthcheck.NewHandler(version.String())
	if deps.Store != nil {
		healthHandler.Register("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return deps.Store.Ping(pingCtx)
		})
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		workerWG.Wait()
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		workerWG.Wait()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
