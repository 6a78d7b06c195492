package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epandurski/swpt-payments/internal/adapters/httpread"
	"github.com/epandurski/swpt-payments/internal/adapters/mongodb"
	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	"github.com/epandurski/swpt-payments/internal/adapters/postgres/offer"
	"github.com/epandurski/swpt-payments/internal/adapters/postgres/outbox"
	"github.com/epandurski/swpt-payments/internal/adapters/postgres/paymentorder"
	"github.com/epandurski/swpt-payments/internal/adapters/postgres/paymentproof"
	"github.com/epandurski/swpt-payments/internal/adapters/rabbitmq"
	"github.com/epandurski/swpt-payments/internal/adapters/redis"
	documentadapter "github.com/epandurski/swpt-payments/internal/adapters/mongodb/document"
	"github.com/epandurski/swpt-payments/internal/services/housekeeping"
	"github.com/epandurski/swpt-payments/internal/services/offers"
	"github.com/epandurski/swpt-payments/internal/services/outboxrelay"
	"github.com/epandurski/swpt-payments/internal/services/payments"
	"github.com/epandurski/swpt-payments/internal/services/router"
	"github.com/epandurski/swpt-payments/internal/swptlog"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// Service is every wired component the two entrypoints (the worker and
// the control CLI) need, built once at startup in the same top-to-bottom
// order the teacher's InitConsumer follows: logger, telemetry,
// connections, repositories, use cases, consumer routes.
type Service struct {
	Config    *Config
	Logger    swptlog.Logger
	Telemetry *telemetry.Telemetry

	PostgresConn *postgres.Connection
	MongoConn    *mongodb.Connection
	RedisConn    *redis.Connection
	RabbitConn   *rabbitmq.Connection

	Offers       *offers.UseCase
	Payments     *payments.UseCase
	Housekeeping *housekeeping.UseCase
	Dispatcher   *router.Dispatcher
	Relay        *outboxrelay.Relay
	Dedup        *redis.SignalDedup

	Consumer  *rabbitmq.ConsumerRoutes
	HTTPServer *http.Server
}

// InitService wires every adapter, repository and use case into a
// runnable Service.
func InitService(cfg *Config) (*Service, error) {
	logger, err := swptlog.NewZapLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: build logger: %w", err)
	}

	tel := &telemetry.Telemetry{
		ServiceName:               cfg.OtelServiceName,
		ServiceVersion:            cfg.OtelServiceVersion,
		DeploymentEnv:             cfg.OtelDeploymentEnv,
		CollectorExporterEndpoint: cfg.OtelColExporterEndpoint,
	}

	if err := tel.Start(context.Background()); err != nil {
		return nil, fmt.Errorf("bootstrap: start telemetry: %w", err)
	}

	pg := &postgres.Connection{ConnectionString: cfg.postgresDSN()}
	mongoConn := &mongodb.Connection{ConnectionString: cfg.mongoURI(), Database: cfg.MongoName}
	redisConn := &redis.Connection{ConnectionString: cfg.RedisURI, Logger: logger}
	rabbitConn := &rabbitmq.Connection{ConnectionString: cfg.rabbitURI(), Logger: logger}

	offerRepo := offer.NewPostgreSQLRepository(pg)
	orderRepo := paymentorder.NewPostgreSQLRepository(pg)
	proofRepo := paymentproof.NewPostgreSQLRepository(pg)
	outboxRepo := outbox.NewPostgreSQLRepository(pg)
	documentRepo := documentadapter.NewMongoDBRepository(mongoConn)

	offersUC := &offers.UseCase{
		Conn:         pg,
		OfferRepo:    offerRepo,
		OrderRepo:    orderRepo,
		ProofRepo:    proofRepo,
		OutboxRepo:   outboxRepo,
		DocumentRepo: documentRepo,
	}

	dedup := redis.NewSignalDedup(redisConn, 24*time.Hour)

	paymentsUC := &payments.UseCase{
		Conn:         pg,
		OfferRepo:    offerRepo,
		OrderRepo:    orderRepo,
		ProofRepo:    proofRepo,
		OutboxRepo:   outboxRepo,
		DocumentRepo: documentRepo,
		Dedup:        dedup,
	}

	housekeepingUC := &housekeeping.UseCase{
		Conn:         pg,
		OrderRepo:    orderRepo,
		ProofRepo:    proofRepo,
		DocumentRepo: documentRepo,
	}

	dispatcher := &router.Dispatcher{Payments: paymentsUC}

	relay := &outboxrelay.Relay{
		Conn:         pg,
		OutboxRepo:   outboxRepo,
		Producer:     rabbitmq.NewProducerRabbitMQ(rabbitConn),
		Logger:       logger,
		BatchSize:    100,
		PollInterval: time.Second,
	}

	httpHandler := &httpread.Handler{Offers: offersUC, Logger: logger}

	svc := &Service{
		Config:    cfg,
		Logger:    logger,
		Telemetry: tel,

		PostgresConn: pg,
		MongoConn:    mongoConn,
		RedisConn:    redisConn,
		RabbitConn:   rabbitConn,

		Offers:       offersUC,
		Payments:     paymentsUC,
		Housekeeping: housekeepingUC,
		Dispatcher:   dispatcher,
		Relay:        relay,
		Dedup:        dedup,

		HTTPServer: &http.Server{Addr: cfg.HTTPAddr, Handler: httpHandler.Mux()},
	}

	svc.Consumer = newConsumerRoutes(svc)

	return svc, nil
}

// Shutdown flushes telemetry and closes the message bus connection.
func (s *Service) Shutdown(ctx context.Context) error {
	_ = s.RabbitConn.Close()
	_ = s.Logger.Sync()

	return s.Telemetry.Shutdown(ctx)
}

// Run starts the consumer routes, the outbox relay and the read-only
// HTTP server, then blocks until it is asked to shut down — mirroring
// the teacher's MultiQueueConsumer.Run signal-wait shape.
func (s *Service) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Consumer.RunConsumers(ctx); err != nil {
		return fmt.Errorf("bootstrap: run consumers: %w", err)
	}

	go func() {
		if err := s.Relay.Run(ctx); err != nil && err != context.Canceled {
			s.Logger.Errorf("outbox relay stopped: %v", err)
		}
	}()

	go func() {
		s.Logger.Infof("http read surface listening on %s", s.Config.HTTPAddr)

		if err := s.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Errorf("http server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = s.HTTPServer.Shutdown(shutdownCtx)

	return s.Shutdown(shutdownCtx)
}
