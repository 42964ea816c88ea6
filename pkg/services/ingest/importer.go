package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/de-tools/bp-atlas/pkg/adapters"
	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/de-tools/bp-atlas/pkg/models/store"
	"github.com/de-tools/bp-atlas/pkg/services/report"
	"github.com/de-tools/bp-atlas/pkg/store/objectstore"
	"github.com/de-tools/bp-atlas/pkg/store/pdftext"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Source names one document to import: a local path, an s3:// URI, PDF
// bytes already in memory, or page text supplied directly. Location doubles
// as the display name for in-memory sources.
type Source struct {
	Location string
	Data     []byte
	Pages    []string
}

func (s Source) String() string {
	if s.Location == "" && (s.Pages != nil || s.Data != nil) {
		return "inline"
	}
	return s.Location
}

type Parser interface {
	Parse(ctx context.Context, doc report.Document) (*domain.Report, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

type ReportStore interface {
	AddReport(ctx context.Context, report *store.Report) (string, error)
}

type Result struct {
	Source   Source
	Report   *domain.Report
	ReportID string
	Err      error
}

type Config struct {
	Workers      int
	ParseTimeout time.Duration
}

// Importer parses documents with a bounded number of workers and stores
// the reports that parsed cleanly. Store and fetcher are optional.
type Importer struct {
	parser  Parser
	fetcher Fetcher
	store   ReportStore
	config  Config
}

func NewImporter(parser Parser, fetcher Fetcher, store ReportStore, config Config) *Importer {
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Importer{
		parser:  parser,
		fetcher: fetcher,
		store:   store,
		config:  config,
	}
}

// Import processes every source and returns one result per source, in
// input order. A failed source does not stop the others. A report cut short
// by cancellation is returned in its result but not stored.
func (im *Importer) Import(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))

	var g errgroup.Group
	g.SetLimit(im.config.Workers)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = im.importOne(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (im *Importer) importOne(ctx context.Context, src Source) Result {
	logger := zerolog.Ctx(ctx).With().Str("source", src.String()).Logger()
	ctx = logger.WithContext(ctx)
	res := Result{Source: src}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	rep, err := im.Parse(ctx, src)
	res.Report = rep
	if err != nil {
		logger.Error().Err(err).Msg("failed to parse report")
		res.Err = err
		return res
	}

	if im.store == nil {
		return res
	}

	rec, err := adapters.MapDomainReportToStore(rep, src.String())
	if err != nil {
		res.Err = err
		return res
	}
	id, err := im.store.AddReport(ctx, rec)
	if err != nil {
		logger.Error().Err(err).Msg("failed to store report")
		res.Err = fmt.Errorf("store report: %w", err)
		return res
	}
	res.ReportID = id
	logger.Info().Str("report_id", id).Int("readings", len(rep.Readings)).Msg("report imported")
	return res
}

// Parse opens a single source and runs the parser over it with the
// configured timeout.
func (im *Importer) Parse(ctx context.Context, src Source) (*domain.Report, error) {
	doc, err := im.open(ctx, src)
	if err != nil {
		return nil, domain.NewParseError(domain.FailureDocumentUnreadable, err)
	}
	defer doc.Close()

	if im.config.ParseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, im.config.ParseTimeout)
		defer cancel()
	}
	return im.parser.Parse(ctx, doc)
}

type closableDocument interface {
	report.Document
	io.Closer
}

func (im *Importer) open(ctx context.Context, src Source) (closableDocument, error) {
	switch {
	case src.Pages != nil:
		return pdftext.Pages(src.Pages), nil
	case src.Data != nil:
		return pdftext.FromBytes(src.Data)
	case objectstore.IsURI(src.Location):
		if im.fetcher == nil {
			return nil, fmt.Errorf("no object store configured for %s", src.Location)
		}
		data, err := im.fetcher.Fetch(ctx, src.Location)
		if err != nil {
			return nil, err
		}
		return pdftext.FromBytes(data)
	case src.Location != "":
		return pdftext.Open(src.Location)
	default:
		return nil, fmt.Errorf("empty source")
	}
}
