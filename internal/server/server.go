package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"voice-orders/internal/menu"
	"voice-orders/internal/orders"
	"voice-orders/internal/realtime"
	"voice-orders/internal/store"
	"voice-orders/internal/vapi"
	"voice-orders/internal/webhook"
	"voice-orders/pkg/config"
	"voice-orders/pkg/db"
	"voice-orders/pkg/logger"
	"voice-orders/pkg/rabbitmq"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Server struct {
	config     *config.Config
	logger     *logger.Logger
	httpServer *http.Server
	dbPool     *pgxpool.Pool
	rabbitMQ   *rabbitmq.RabbitMQ
}

func NewServer(cfg *config.Config, log *logger.Logger) *Server {
	return &Server{
		config: cfg,
		logger: log,
	}
}

// Start connects the backing services, wires the HTTP surface and serves
// until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	pool, err := db.ConnectDB(&s.config.Database, s.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.dbPool = pool

	if err := db.InitSchema(ctx, pool, s.logger); err != nil {
		return err
	}

	rmq, err := rabbitmq.ConnectRabbitMQ(&s.config.RabbitMQ, s.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	s.rabbitMQ = rmq

	st := store.NewStore(pool, s.logger)

	hub := realtime.NewHub(s.logger)
	deliveries, err := rmq.ConsumeOrderEvents()
	if err != nil {
		return err
	}
	go func() {
		if err := hub.Run(ctx, deliveries); err != nil {
			s.logger.Error("", "hub_stopped", "Realtime hub stopped", err)
		}
	}()

	menuHandler := menu.NewHandler(menu.NewService(st, s.logger), s.logger)
	ordersHandler := orders.NewHandler(orders.NewService(st, rmq, s.logger), s.logger)
	webhookHandler := webhook.NewHandler(webhook.NewNormalizer(st, rmq, s.logger), s.logger)
	streamHandler := realtime.NewStreamHandler(st, hub, s.logger)

	vapiClient := vapi.NewClient(s.config.Vapi.BaseURL)
	vapiHandler := vapi.NewHandler(vapi.NewService(st, vapiClient, s.logger), s.config.Vapi.WebhookURL, s.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/menu", menuHandler.HandleCollection)
	mux.HandleFunc("/api/menu/", menuHandler.HandleItem)
	mux.HandleFunc("/api/orders", ordersHandler.HandleCollection)
	mux.Handle("/api/orders/stream", streamHandler)
	mux.HandleFunc("/api/orders/", ordersHandler.HandleItem)
	mux.Handle("/api/vapi/settings", vapiHandler)
	mux.Handle("/api/vapi/webhook", webhookHandler)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("startup", "server_started",
			fmt.Sprintf("Dashboard server listening on port %d", s.config.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.shutdown()
	}
}

func (s *Server) shutdown() error {
	s.logger.Info("shutdown", "server_stopping", "Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)

	if s.rabbitMQ != nil {
		s.rabbitMQ.Close()
	}
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	return err
}
