package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/osu-parks/parks-api/internal/config"
	"github.com/osu-parks/parks-api/internal/platform/logger"
	"github.com/osu-parks/parks-api/internal/platform/postgres"
	"github.com/osu-parks/parks-api/internal/service/auth"
)

// Version information, set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parks-api",
		Short: "Parks and owners JSON:API server",
		Long: `parks-api serves the parks and owners resources over a JSON:API
interface backed by PostgreSQL.

Configuration is read from config.yaml, a .env file and PARKS_* environment
variables, in increasing order of precedence.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newHashSecretCommand())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), migrateFirst)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [command]",
		Short:     "Run database migrations",
		Long:      fmt.Sprintf("Run database migrations. Commands: %v (default \"up\").", postgres.MigrationCommands),
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}
			return runMigrate(cmd.Context(), command)
		},
	}
}

func newHashSecretCommand() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-secret",
		Short: "Print the bcrypt hash of a client secret read from stdin",
		Long: `Reads a client secret from the first line of stdin and prints the bcrypt
hash to configure as PARKS_AUTH_CLIENT_SECRET_HASH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("failed to read secret: %w", err)
			}
			secret = strings.TrimRight(secret, "\r\n")
			if secret == "" {
				return errors.New("secret must not be empty")
			}

			hash, err := auth.HashSecret(secret, cost)
			if err != nil {
				return fmt.Errorf("failed to hash secret: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "parks-api %s (%s)\n", Version, GitCommit)
		},
	}
}

// bootstrap loads configuration, installs the logger and opens the database.
func bootstrap(ctx context.Context) (*config.Config, *slog.Logger, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("base_url", cfg.Server.BaseURL))

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info("database connection established")
	return cfg, log, db, nil
}

func runServe(ctx context.Context, migrateFirst bool) error {
	cfg, log, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	if migrateFirst {
		if err := postgres.Migrate(ctx, db, log, "up"); err != nil {
			closeDB(db, log)
			return err
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		closeDB(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

func runMigrate(ctx context.Context, command string) error {
	_, log, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	return postgres.Migrate(ctx, db, log, command)
}

func closeDB(db *sql.DB, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Error("error closing database connection", slog.String("error", err.Error()))
	}
}
