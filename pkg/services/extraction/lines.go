package extraction

import (
	"regexp"
	"strings"
)

// rowPattern matches one table row: day, month name, two-digit year, time,
// systolic, diastolic, heart rate. Cells are separated by blanks only, so a
// match never runs into the next line.
const rowPattern = `\b(\d{1,2})[ \t]+([A-Za-z]{3,9})\.?,?[ \t]+'?(\d{2})[ \t]+(\d{1,2}:\d{2})[ \t]+(\d+)[ \t]+(\d+)[ \t]+(\d+)\b`

var rowRe = regexp.MustCompile(rowPattern)

const (
	groupDay = iota + 1
	groupMonth
	groupYear
	groupTime
	groupSystolic
	groupDiastolic
	groupHeartRate
)

type LineShape int

const (
	ShapeOther LineShape = iota
	ShapeHeader
	ShapeDoubleHeader
	ShapeSingleRow
	ShapeDoubleRow
)

func (s LineShape) String() string {
	switch s {
	case ShapeHeader:
		return "header"
	case ShapeDoubleHeader:
		return "double_header"
	case ShapeSingleRow:
		return "single_row"
	case ShapeDoubleRow:
		return "double_row"
	default:
		return "other"
	}
}

// Line is one physical line of page text.
type Line struct {
	Text   string
	Offset int // byte offset of Text in the tokenized input
	Shape  LineShape
	// Split is the byte offset within Text where the right-hand reading of a
	// ShapeDoubleRow line begins.
	Split int
}

// Left and Right return the two halves of a double-row line.
func (l Line) Left() string  { return l.Text[:l.Split] }
func (l Line) Right() string { return l.Text[l.Split:] }

// Tokenize splits text into physical lines and classifies each of them.
func (e *Extractor) Tokenize(text string) []Line {
	var lines []Line
	offset := 0
	for _, raw := range strings.SplitAfter(text, "\n") {
		if raw == "" {
			continue
		}
		body := strings.TrimRight(raw, "\r\n")
		shape, split := e.ClassifyLine(body)
		lines = append(lines, Line{
			Text:   body,
			Offset: offset,
			Shape:  shape,
			Split:  split,
		})
		offset += len(raw)
	}
	return lines
}

// ClassifyLine reports the shape of one line. For double-row lines it also
// returns the offset at which the second reading starts. Splitting there
// instead of at the middle of the line keeps both halves whole when the two
// readings differ in width.
func (e *Extractor) ClassifyLine(line string) (LineShape, int) {
	if e.doubleHeader.MatchString(line) {
		return ShapeDoubleHeader, 0
	}
	if e.header.MatchString(line) {
		return ShapeHeader, 0
	}

	rows := rowRe.FindAllStringIndex(line, 2)
	switch len(rows) {
	case 0:
		return ShapeOther, 0
	case 1:
		return ShapeSingleRow, 0
	default:
		return ShapeDoubleRow, rows[1][0]
	}
}
