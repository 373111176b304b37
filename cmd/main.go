package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Dosada05/swiss-tournament/config"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/urfave/cli/v2"
)

const dbConnectTimeout = 5 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	app := newApp(logger)
	if err := app.Run(os.Args); err != nil {
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newApp(logger *slog.Logger) *cli.App {
	return &cli.App{
		Name:  "tournament",
		Usage: "Swiss tournament server and tools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "optional YAML configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(logger),
			demoCommand(logger),
			hashPasswordCommand(),
		},
	}
}

func migrateCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create the database schema",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadDatabase(c.String("config"))
			if err != nil {
				return err
			}
			conn, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.Migrate(c.Context, conn); err != nil {
				return err
			}
			logger.Info("schema is up to date")
			return nil
		},
	}
}

// openRepository builds the repository selected by cfg.StorageDriver.
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.Repository, error) {
	if cfg.StorageDriver == config.DriverMemory {
		logger.Warn("using in-memory storage, data is lost on exit")
		return repositories.NewMemoryRepository(), nil
	}

	conn, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info("database connection established")
	return repositories.NewPostgresRepository(conn), nil
}
