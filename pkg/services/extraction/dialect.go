package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/de-tools/bp-atlas/pkg/models/domain"
)

const defaultTypeWindow = 100

// TypeMarker maps an annotation caption to the reading type it denotes.
type TypeMarker struct {
	Marker string
	Type   domain.ReadingType
}

// Dialect holds the literal strings of one report template.
type Dialect struct {
	Name            string
	HeaderSignature string
	SummaryMarker   string
	SummaryLabels   SummaryLabels
	// TypeMarkers are checked in order; the first one found wins.
	TypeMarkers []TypeMarker
	TypeWindow  int
}

type SummaryLabels struct {
	Daytime string
	Night   string
	Overall string
}

func DefaultDialect() Dialect {
	return Dialect{
		Name:            "default",
		HeaderSignature: "DATE TIME SBP DBP HR",
		SummaryMarker:   "Summary table",
		SummaryLabels: SummaryLabels{
			Daytime: "Daytime",
			Night:   "Night-time",
			Overall: "All measurements",
		},
		TypeMarkers: []TypeMarker{
			{Marker: "Initialization with cuff", Type: domain.ReadingTypeInitialization},
			{Marker: "Cuff measurement", Type: domain.ReadingTypeCuff},
			{Marker: "On demand phone measurement", Type: domain.ReadingTypeOnDemandPhone},
		},
		TypeWindow: defaultTypeWindow,
	}
}

// Extractor applies one dialect to page text. It holds no mutable state and
// may be shared between goroutines.
type Extractor struct {
	dialect      Dialect
	header       *regexp.Regexp
	doubleHeader *regexp.Regexp
}

func NewExtractor(d Dialect) (*Extractor, error) {
	words := strings.Fields(d.HeaderSignature)
	if len(words) == 0 {
		return nil, fmt.Errorf("dialect %q: header signature is empty", d.Name)
	}
	if d.SummaryMarker == "" {
		return nil, fmt.Errorf("dialect %q: summary marker is empty", d.Name)
	}
	if d.TypeWindow <= 0 {
		d.TypeWindow = defaultTypeWindow
	}
	d.TypeMarkers = append([]TypeMarker(nil), d.TypeMarkers...)

	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	single := strings.Join(quoted, `\s+`)

	header, err := regexp.Compile(single)
	if err != nil {
		return nil, fmt.Errorf("dialect %q: compile header: %w", d.Name, err)
	}
	doubleHeader, err := regexp.Compile(single + `\s+` + single)
	if err != nil {
		return nil, fmt.Errorf("dialect %q: compile doubled header: %w", d.Name, err)
	}

	return &Extractor{
		dialect:      d,
		header:       header,
		doubleHeader: doubleHeader,
	}, nil
}

// MustNewExtractor is NewExtractor for dialects known to be valid.
func MustNewExtractor(d Dialect) *Extractor {
	e, err := NewExtractor(d)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Extractor) Dialect() Dialect {
	return e.dialect
}
