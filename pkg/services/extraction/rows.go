package extraction

import (
	"context"
	"strconv"
	"strings"

	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ExtractReadings returns one reading per table row found in stream, in
// order of appearance. Rows whose date cannot be built are dropped; numeric
// cells that do not parse become zero.
func (e *Extractor) ExtractReadings(ctx context.Context, stream string) []domain.Reading {
	logger := zerolog.Ctx(ctx)

	var readings []domain.Reading
	for _, idx := range rowRe.FindAllStringSubmatchIndex(stream, -1) {
		group := func(n int) string {
			return stream[idx[2*n]:idx[2*n+1]]
		}

		date, err := ParseDate(group(groupDay), group(groupMonth), group(groupYear))
		if err != nil {
			logger.Debug().
				Err(err).
				Str("row", stream[idx[0]:idx[1]]).
				Msg("dropping row with unusable date")
			continue
		}

		readings = append(readings, domain.Reading{
			Date:        date,
			Time:        group(groupTime),
			Systolic:    atoiOrZero(group(groupSystolic)),
			Diastolic:   atoiOrZero(group(groupDiastolic)),
			HeartRate:   atoiOrZero(group(groupHeartRate)),
			ReadingType: e.ClassifyReadingType(stream, idx[0]),
		})
	}
	return readings
}

// ClassifyReadingType looks for a type caption within the dialect's window
// around offset. Captions float near the row rather than inside it.
func (e *Extractor) ClassifyReadingType(text string, offset int) domain.ReadingType {
	start := max(0, offset-e.dialect.TypeWindow)
	end := min(len(text), offset+e.dialect.TypeWindow)
	if start >= end {
		return domain.ReadingTypeNormal
	}

	window := text[start:end]
	for _, m := range e.dialect.TypeMarkers {
		if m.Marker != "" && strings.Contains(window, m.Marker) {
			return m.Type
		}
	}
	return domain.ReadingTypeNormal
}

// PageReadings runs the column splitter and the row extractor over one page.
// When a split page leaves either stream without rows, the whole page is
// read as one stream as well, and that result is kept if it holds more rows.
// The split keeps every line, so the retry only guards against a split that
// cuts a row in two.
func (e *Extractor) PageReadings(ctx context.Context, page string) []domain.Reading {
	streams := e.SplitColumns(page)

	var readings []domain.Reading
	empty := false
	for _, s := range streams {
		found := e.ExtractReadings(ctx, s)
		if len(found) == 0 {
			empty = true
		}
		readings = append(readings, found...)
	}

	if empty && len(streams) > 1 {
		whole := e.ExtractReadings(ctx, page)
		if len(whole) > len(readings) {
			zerolog.Ctx(ctx).Debug().
				Int("split", len(readings)).
				Int("whole", len(whole)).
				Msg("column split lost rows, reading page as a single column")
			readings = whole
		}
	}
	return readings
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
