package commands

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/bp-atlas/pkg/services/config"
	"github.com/de-tools/bp-atlas/pkg/services/extraction"
	"github.com/de-tools/bp-atlas/pkg/services/ingest"
	"github.com/de-tools/bp-atlas/pkg/services/report"
	"github.com/de-tools/bp-atlas/pkg/store/duckdb"
	"github.com/de-tools/bp-atlas/pkg/store/duckdb/readings"
	"github.com/de-tools/bp-atlas/pkg/store/objectstore"
)

const dateLayout = "2006-01-02"

// Env is the runtime shared by all commands. The root command fills it in
// before any subcommand runs.
type Env struct {
	Config   *config.Config
	Dialects config.DialectRegistry
	// NewFetcher is swapped in tests; it defaults to the shared AWS config.
	NewFetcher func(ctx context.Context) (ingest.Fetcher, error)
}

func (e *Env) parser(ctx context.Context, dialect string) (*report.Parser, error) {
	if dialect == "" {
		dialect = e.Config.DefaultDialect
	}
	d, err := e.Dialects.GetDialect(ctx, dialect)
	if err != nil {
		return nil, err
	}
	extractor, err := extraction.NewExtractor(d)
	if err != nil {
		return nil, fmt.Errorf("invalid dialect %s: %w", dialect, err)
	}
	return report.NewParser(extractor), nil
}

func (e *Env) fetcher(ctx context.Context, sources []string) (ingest.Fetcher, error) {
	for _, src := range sources {
		if !objectstore.IsURI(src) {
			continue
		}
		if e.NewFetcher != nil {
			return e.NewFetcher(ctx)
		}
		return objectstore.NewDefaultFetcher(ctx, "")
	}
	return nil, nil
}

func (e *Env) importer(ctx context.Context, dialect string, sources []string, store ingest.ReportStore) (*ingest.Importer, error) {
	parser, err := e.parser(ctx, dialect)
	if err != nil {
		return nil, err
	}
	fetcher, err := e.fetcher(ctx, sources)
	if err != nil {
		return nil, err
	}
	return ingest.NewImporter(parser, fetcher, store, ingest.Config{
		Workers:      e.Config.Workers,
		ParseTimeout: e.Config.ParseTimeout,
	}), nil
}

func (e *Env) openStore() (readings.Store, *sql.DB, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: e.Config.DBPath})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	store, err := readings.NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create readings store: %w", err)
	}
	return store, db, nil
}

func parseDay(value, flag string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid '%s' date format. Expected format: YYYY-MM-DD", flag)
	}
	return t, nil
}
