package extraction

import (
	"regexp"
	"strings"

	"github.com/de-tools/bp-atlas/pkg/models/domain"
)

// ExtractSummary parses the summary table that follows the dialect's marker.
// It returns nil when the marker is absent. A row that cannot be matched is
// zero-filled instead of discarding the table.
func (e *Extractor) ExtractSummary(text string) *domain.SummaryStats {
	idx := strings.Index(text, e.dialect.SummaryMarker)
	if idx < 0 {
		return nil
	}
	after := text[idx+len(e.dialect.SummaryMarker):]

	labels := e.dialect.SummaryLabels
	return &domain.SummaryStats{
		Daytime: summaryRow(after, labels.Daytime),
		Night:   summaryRow(after, labels.Night),
		Overall: summaryRow(after, labels.Overall),
	}
}

func summaryRow(text, label string) domain.StatsRow {
	if label == "" {
		return domain.StatsRow{}
	}
	m, ok := Submatches(text, `(?s)`+regexp.QuoteMeta(label)+`.*?Mean\s+(\d+)\s+(\d+)\s+(\d+)`)
	if !ok {
		return domain.StatsRow{}
	}
	return domain.StatsRow{
		Systolic:  atoiOrZero(m[1]),
		Diastolic: atoiOrZero(m[2]),
		HeartRate: atoiOrZero(m[3]),
	}
}
