package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/bp-atlas/pkg/server"
	"github.com/de-tools/bp-atlas/pkg/services/config"
	"github.com/de-tools/bp-atlas/pkg/services/extraction"
	"github.com/de-tools/bp-atlas/pkg/services/ingest"
	"github.com/de-tools/bp-atlas/pkg/services/report"
	"github.com/de-tools/bp-atlas/pkg/store/duckdb"
	"github.com/de-tools/bp-atlas/pkg/store/duckdb/readings"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for BP Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file (defaults and BPATLAS_* environment variables when empty)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	dialects, err := config.NewDialectRegistry(cfg.DialectsPath)
	if err != nil {
		return fmt.Errorf("failed to create dialect registry: %w", err)
	}
	dialect, err := dialects.GetDialect(ctx, cfg.DefaultDialect)
	if err != nil {
		return err
	}
	extractor, err := extraction.NewExtractor(dialect)
	if err != nil {
		return fmt.Errorf("invalid dialect %s: %w", dialect.Name, err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	readingsStore, err := readings.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create readings store: %w", err)
	}

	importer := ingest.NewImporter(report.NewParser(extractor), nil, readingsStore, ingest.Config{
		Workers:      cfg.Workers,
		ParseTimeout: cfg.ParseTimeout,
	})

	logger.Info().Msgf("Using report dialect `%s`, database `%s`.", dialect.Name, cfg.DBPath)

	addr := cfg.Server.Addr
	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if host != "" && port != "" {
		addr = net.JoinHostPort(host, port)
	}

	api := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Parser: importer,
			Store:  readingsStore,
			Limits: cfg.Plausibility,
			Logger: logger,
		},
	})
	return api.Start()
}
