package gatewayservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"rental-manager/internal/general/config"
	"rental-manager/internal/general/logger"
	"rental-manager/internal/general/rabbitmq"
	"rental-manager/internal/software/gateway/handler"
	"rental-manager/internal/software/gateway/publish"
	"rental-manager/internal/software/gateway/rpc"
	"rental-manager/internal/software/gateway/service"
)

// Run wires the gateway service and blocks until ctx is cancelled.
func Run(ctx context.Context, maxConcurrent int) error {
	// set up a new logger with a static request ID for startup logs
	logger := logger.New("gateway-service")
	ctx = logger.WithRequestID(ctx, "startup-001")

	// load a config from file
	cfg, err := config.LoadFromFile("config/config.yaml")
	if err != nil {
		logger.Error(ctx, "config_load_failed", "Failed to load configuration", err, nil)
		return err
	}

	// connect to RabbitMQ
	rmq, err := rabbitmq.ConnectRabbitMQ(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "rabbitmq_connection_failed", "Failed to connect to RabbitMQ", err, nil)
		return err
	}
	defer rmq.Close()

	// set up the RabbitMQ publisher
	pub := rabbitmq.NewMQPublisher(rmq)

	// set up the request/reply client and its private reply queue consumer
	rpcClient := rpc.NewClient(logger, pub)
	defer rpcClient.Shutdown()

	go func() {
		if err := rmq.ConsumeReplies(ctx, rpcClient.SetReplyQueue, rpcClient.HandleReply); err != nil {
			logger.Error(ctx, "reply_consumer_failed", "Reply consumer terminated", err, nil)
		}
	}()

	// set up the gateway service
	commands := publish.NewCommandPublisher(logger, pub)
	svc := service.NewGatewayService(logger, commands, rpcClient)

	// set up the HTTP handler and its routes
	mux := http.NewServeMux()
	httpHandler := handler.NewGatewayHTTPHandler(svc, logger)
	httpHandler.RegisterRoutes(mux)

	// concurrency limiter (global): blocks when capacity is full
	limitedHandler := withConcurrencyLimit(maxConcurrent, mux)

	// set up the server configurations
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Services.GatewayServicePort),
		Handler:           limitedHandler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      40 * time.Second, // must outlive the reply window
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	logger.Info(ctx, "service_started",
		fmt.Sprintf("Gateway Service started on port %d", cfg.Services.GatewayServicePort),
		map[string]any{"port": cfg.Services.GatewayServicePort, "max_concurrent": maxConcurrent},
	)

	// start the server in a background goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	// wait for context cancellation or server error
	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info(ctx, "service_stopping", "Starting graceful shutdown", nil)
		if err := srv.Shutdown(shCtx); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "http_shutdown_failed", "Failed to gracefully shut down HTTP server", err, nil)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "http_server_error", "HTTP server terminated with error", err,
				map[string]any{"port": cfg.Services.GatewayServicePort})
			return err
		}
	}

	return nil
}

// withConcurrencyLimit wraps an http.Handler with a semaphore-based limiter.
// It controls how many HTTP requests can be in-progress at the same time.
func withConcurrencyLimit(n int, next http.Handler) http.Handler {
	if n <= 0 {
		return next
	}
	sem := make(chan struct{}, n)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case sem <- struct{}{}: // acquire
			defer func() { <-sem }() // release
			next.ServeHTTP(w, r)
		case <-r.Context().Done():
			// client canceled or server is shutting down
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		}
	})
}
