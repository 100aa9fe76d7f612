package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/caarlos0/env/v6"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/cmd/research/config"
	"github.com/sedori-labs/price-research/internal/aggregate"
	"github.com/sedori-labs/price-research/internal/handler"
	"github.com/sedori-labs/price-research/internal/identify"
	"github.com/sedori-labs/price-research/internal/platform/rabbitmq"
	"github.com/sedori-labs/price-research/internal/platform/storage"
	"github.com/sedori-labs/price-research/internal/recommend"
	"github.com/sedori-labs/price-research/internal/research"
	"github.com/sedori-labs/price-research/internal/sources"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	engine := aggregate.NewEngine(
		[]sources.PriceSource{
			sources.NewMercari(httpClient, logger),
			sources.NewYahooAuction(httpClient, logger),
			sources.NewSurugaya(httpClient, logger),
			sources.NewMandarake(httpClient, logger),
			sources.NewLashinbang(httpClient, logger),
		},
		cfg.SearchLimit,
		cfg.SourceTimeout,
		logger,
	)

	identifier := identify.NewIdentifier(
		identify.NewOpenAIVisionAnalyzer(cfg.OpenAI.APIKey, cfg.OpenAI.Model),
		logger,
	)

	recommender := recommend.NewRecommender(
		recommend.NewClaudeAnalyzer(cfg.Anthropic.APIKey, cfg.Anthropic.Model),
		logger,
	)

	researcherOps := []research.Option{}

	var pgDB *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		pgDB, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't open Postgres connection")
		}
		researcherOps = append(researcherOps, research.WithRecorder(storage.NewPostgres(pgDB)))
	}

	researcher := research.NewResearcher(
		identifier,
		engine,
		recommender,
		cfg.RequestDeadline,
		logger,
		researcherOps...,
	)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler.NewHTTPHandler(researcher, cfg.RequestDeadline, &logger).Router(),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().
				Err(err).
				Msg("can't serve HTTP")
		}
	}()

	// the command queue is optional, the HTTP API works without it
	var amqpConnection *amqp.Connection
	var conn *rabbitmq.RabbitMQ
	if cfg.RabbitMQ.URL != "" {
		var err error
		amqpConnection, err = amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't open RabbitMQ connection")
		}

		conn, err = rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't open RabbitMQ channel")
		}

		han := handler.NewRMQHandler(conn, researcher, &logger)

		// start consuming and handling messages
		if err := han.Start(ctx, cfg.RabbitMQ.Queue); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't start consuming")
		}
	}

	logger.Info().
		Str("addr", cfg.Addr).
		Msg("price research up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().
			Err(err).
			Msg("can't shut down HTTP server")
	}

	// wait for consumer to finish
	if conn != nil {
		<-conn.Done()
	}

	// close connections
	wg := sync.WaitGroup{}

	if pgDB != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := pgDB.Close(); err != nil {
				logger.Fatal().
					Err(err).
					Msg("can't close Postgres connection")
			}
		}()
	}

	if amqpConnection != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := amqpConnection.Close(); err != nil {
				logger.Fatal().
					Err(err).
					Msg("can't close RabbitMQ connection")
			}
		}()
	}

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}
