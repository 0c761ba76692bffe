package workerservice

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"rental-manager/internal/general/config"
	"rental-manager/internal/general/logger"
	"rental-manager/internal/general/postgres"
	"rental-manager/internal/general/rabbitmq"
	"rental-manager/internal/software/worker/dispatcher"
	"rental-manager/internal/software/worker/service"
)

// Run wires the worker service and blocks until ctx is cancelled. Every
// queue is consumed with prefetch 1 so commands and requests are processed
// strictly in arrival order.
func Run(ctx context.Context) error {
	// set up a new logger with a static request ID for startup logs
	logger := logger.New("rental-worker")
	ctx = logger.WithRequestID(ctx, "startup-001")

	// load a config from file
	cfg, err := config.LoadFromFile("config/config.yaml")
	if err != nil {
		logger.Error(ctx, "config_load_failed", "Failed to load configuration", err, nil)
		return err
	}

	// set up a Postgres connection pool
	pool, err := postgres.NewPool(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "db_connection_failed", "Failed to initialize Postgres pool", err, nil)
		return err
	}
	defer pool.Close()

	// connect to RabbitMQ
	rmq, err := rabbitmq.ConnectRabbitMQ(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "rabbitmq_connection_failed", "Failed to connect to RabbitMQ", err, nil)
		return err
	}
	defer rmq.Close()

	// set up the RabbitMQ publisher (replies go out through it as well)
	pub := rabbitmq.NewMQPublisher(rmq)

	// set up the necessary repos
	uow := postgres.NewUnitOfWork(pool)
	motorbikeRepo := postgres.NewMotorbikeRepo()
	deliveryPersonRepo := postgres.NewDeliveryPersonRepo()
	rentalRepo := postgres.NewRentalRepo()

	// set up the entity services
	motorbikeSvc := service.NewMotorbikeService(logger, uow, motorbikeRepo, rentalRepo)
	deliveryPersonSvc := service.NewDeliveryPersonService(logger, uow, deliveryPersonRepo)
	rentalSvc := service.NewRentalService(logger, uow, rentalRepo, motorbikeRepo, deliveryPersonRepo)

	// set up the dispatcher over all five queues
	disp := dispatcher.NewDispatcher(logger, rmq, pub, motorbikeSvc, deliveryPersonSvc, rentalSvc)

	logger.Info(ctx, "service_started", "Rental worker started", nil)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return consumeLoop(gctx, logger, "motorbike_commands", disp.RunMotorbikeCommands) })
	g.Go(func() error { return consumeLoop(gctx, logger, "motorbike_requests", disp.RunMotorbikeRequests) })
	g.Go(func() error { return consumeLoop(gctx, logger, "delivery_person_commands", disp.RunDeliveryPersonCommands) })
	g.Go(func() error { return consumeLoop(gctx, logger, "rental_commands", disp.RunRentalCommands) })
	g.Go(func() error { return consumeLoop(gctx, logger, "rental_requests", disp.RunRentalRequests) })

	err = g.Wait()
	logger.Info(ctx, "service_stopped", "Rental worker stopped", nil)
	return err
}

// consumeLoop keeps one queue consumer alive across channel failures. The
// connection layer reconnects on its own; this loop just reopens the
// consumer once a channel dies.
func consumeLoop(ctx context.Context, logger *logger.Logger, name string, run func(context.Context) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if err := run(ctx); err != nil {
			logger.Error(ctx, "consumer_failed", "Queue consumer terminated, restarting", err,
				map[string]any{"consumer": name})
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Second):
		}
	}
}
