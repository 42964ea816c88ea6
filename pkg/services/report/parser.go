package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/de-tools/bp-atlas/pkg/services/extraction"
	"github.com/rs/zerolog"
)

// Document gives page level access to extracted text. Page indexes are
// zero-based.
type Document interface {
	NumPages() int
	PageText(index int) (string, error)
}

type state int

const (
	stateStart state = iota
	stateHeaderParsed
	stateAccumulating
	stateAssembled
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateHeaderParsed:
		return "header_parsed"
	case stateAccumulating:
		return "accumulating"
	case stateAssembled:
		return "assembled"
	default:
		return "failed"
	}
}

// Parser turns a document into a Report. A Parser only holds its extractor
// and can parse several documents concurrently.
type Parser struct {
	extractor *extraction.Extractor
}

func NewParser(extractor *extraction.Extractor) *Parser {
	if extractor == nil {
		extractor = extraction.MustNewExtractor(extraction.DefaultDialect())
	}
	return &Parser{extractor: extractor}
}

// run is the state of one Parse call.
type run struct {
	state    state
	logger   zerolog.Logger
	metadata domain.ReportMetadata
	readings []domain.Reading
}

func (r *run) transition(to state) {
	r.logger.Debug().Stringer("from", r.state).Stringer("to", to).Msg("parse state change")
	r.state = to
}

func (r *run) fail(kind domain.FailureKind, err error) error {
	r.transition(stateFailed)
	return domain.NewParseError(kind, err)
}

// Parse reads the header from page 0 and readings from every later page.
// Only an unreadable first page is fatal. Unreadable later pages are
// skipped. If ctx is cancelled between pages, the report built so far is
// returned together with an error wrapping ctx.Err().
func (p *Parser) Parse(ctx context.Context, doc Document) (*domain.Report, error) {
	started := time.Now()
	r := &run{state: stateStart, logger: zerolog.Ctx(ctx).With().Str("component", "report_parser").Logger()}

	if doc == nil {
		return nil, r.fail(domain.FailureDocumentUnreadable, fmt.Errorf("nil document"))
	}
	pages := doc.NumPages()
	if pages <= 0 {
		return nil, r.fail(domain.FailureNoHeaderPage, fmt.Errorf("document has %d pages", pages))
	}

	header, err := doc.PageText(0)
	if err != nil {
		return nil, r.fail(domain.FailureDocumentUnreadable, fmt.Errorf("read header page: %w", err))
	}
	if strings.TrimSpace(header) == "" {
		return nil, r.fail(domain.FailureDocumentUnreadable, fmt.Errorf("header page has no text"))
	}

	r.metadata = p.extractor.ExtractHeader(header)
	r.metadata.SummaryStats = p.extractor.ExtractSummary(header)
	r.transition(stateHeaderParsed)

	r.transition(stateAccumulating)
	for i := 1; i < pages; i++ {
		if err := ctx.Err(); err != nil {
			r.logger.Warn().Err(err).Int("page", i).Msg("parse cancelled")
			return r.assemble(), fmt.Errorf("parse cancelled at page %d: %w", i, err)
		}

		text, err := doc.PageText(i)
		if err != nil {
			r.logger.Warn().Err(err).Int("page", i).Msg("skipping unreadable page")
			continue
		}

		if r.metadata.SummaryStats == nil {
			r.metadata.SummaryStats = p.extractor.ExtractSummary(text)
		}

		found := p.extractor.PageReadings(ctx, text)
		if len(found) == 0 {
			r.logger.Debug().Int("page", i).Msg("no readings on page")
		}
		r.readings = append(r.readings, found...)
	}

	report := r.assemble()
	r.logger.Info().
		Int("pages", pages).
		Int("readings", len(report.Readings)).
		Bool("summary", report.Metadata.SummaryStats != nil).
		Dur("elapsed", time.Since(started)).
		Msg("report parsed")
	return report, nil
}

func (r *run) assemble() *domain.Report {
	r.transition(stateAssembled)
	readings := make([]domain.Reading, len(r.readings))
	copy(readings, r.readings)
	return &domain.Report{
		Metadata: r.metadata,
		Readings: readings,
	}
}
