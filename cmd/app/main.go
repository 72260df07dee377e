package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freight/cmd"
	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/rediscache"
	"freight/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		log.Fatalf("freight: %v", err)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "freight",
		Short:         "Freight brokerage back office: dispatch lifecycle and settlement bundles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCommand(), migrateCommand(), relayCommand())
	return root
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the health endpoints and the background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, db, err := connect()
			if err != nil {
				return err
			}
			var cache redis.UniversalClient
			if cfg.CacheEnabled() {
				client, err := rediscache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
				if err != nil {
					return err
				}
				defer func() { _ = client.Close() }()
				cache = client
			}

			app := cmd.NewCompositionRoot(cfg, db, cache, cmd.NewLogger(cfg, os.Stdout))
			defer func() { _ = app.Close() }()

			jobManager, err := app.CreateJobManager()
			if err != nil {
				return err
			}
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return startWebServer(ctx, httpin.NewServer(sqlDB, app.CachePinger()), cfg.HTTPPort)
		},
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(*cobra.Command, []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			return postgres.Migrate(db)
		},
	}
}

func relayCommand() *cobra.Command {
	var batchSize int
	c := &cobra.Command{
		Use:   "relay",
		Short: "Publish pending outbox messages once and exit",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			app := cmd.NewCompositionRoot(cfg, db, nil, cmd.NewLogger(cfg, os.Stdout))
			defer func() { _ = app.Close() }()

			relay, err := commands.NewRelayOutboxCommand(batchSize)
			if err != nil {
				return err
			}
			handler := app.CreateRelayOutboxCommandHandler()

			total := 0
			for {
				published, err := handler.Handle(c.Context(), relay)
				if err != nil {
					return err
				}
				total += published
				if published < batchSize {
					break
				}
			}
			fmt.Fprintf(c.OutOrStdout(), "published %d messages\n", total)
			return nil
		},
	}
	c.Flags().IntVar(&batchSize, "batch", commands.DefaultRelayBatchSize, "messages per transaction")
	return c
}

func connect() (cmd.Config, *gorm.DB, error) {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return cmd.Config{}, nil, fmt.Errorf("config: %w", err)
	}
	db, err := gorm.Open(gorm_postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return cmd.Config{}, nil, fmt.Errorf("database: %w", err)
	}
	return cfg, db, nil
}

func startWebServer(ctx context.Context, server *httpin.Server, port string) error {
	e := echo.New()
	e.HideBanner = true
	server.Register(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}
