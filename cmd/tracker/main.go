package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/config"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/geo"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/repository"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/tracking"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * Set up the logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * Load configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Connect to the database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * Connect to RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open a channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	if err := tracking.DeclareSampleQueue(ch); err != nil {
		logger.Error("failed to declare the sample queue", slog.String("error", err.Error()))
		return
	}

	publisher, err := tracking.NewAMQPPublisher(cfg, ch)
	if err != nil {
		logger.Error("failed to declare the dispatch exchange", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Connect to redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * Build the tracker
	 **********************************************/
	radii := geo.Radii{
		ArrivalMeters:   cfg.Dispatch.ArrivalRadiusMeters,
		DepartureMeters: cfg.Dispatch.DepartureRadiusMeters,
		NearbyMeters:    cfg.Dispatch.NearbyRadiusMeters,
	}
	tracker := tracking.NewTracker(radii, cfg.Dispatch.AssumedSpeedMph, repo, publisher, tracking.NewRedisSampleCache(cfg, rdb))

	// listen for CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	/**********************************************
	 * Consume location samples
	 **********************************************/
	msgs, err := ch.Consume(
		tracking.SampleQueue,
		"",    // consumer tag, left to rabbitmq
		false, // manual acks so a crash does not lose samples
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancelConsume := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				locationMessage := domain.LocationMessage{}
				if err := json.Unmarshal(msg.Body, &locationMessage); err != nil {
					logger.Error("failed to decode location message", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				// Dispatch only enqueues; the per-tech session applies the
				// sample, so ack as soon as it is queued.
				tracker.Dispatch(ctx, &locationMessage)
				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for location samples... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down tracker worker...")
	cancelConsume()
	wg.Wait()
	tracker.Shutdown()
	slog.Info("tracker worker stopped")
}
