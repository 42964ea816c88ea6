package extraction

import "strings"

// SplitColumns separates a page laid out as two side-by-side tables into a
// left and a right stream. Pages without the doubled column header come back
// as a single stream holding the whole page.
func (e *Extractor) SplitColumns(page string) []string {
	loc := e.doubleHeader.FindStringIndex(page)
	if loc == nil {
		return []string{page}
	}

	var left, right strings.Builder
	left.WriteString(page[:loc[1]])
	for _, line := range e.Tokenize(page[loc[1]:]) {
		if line.Shape == ShapeDoubleRow {
			left.WriteString(line.Left())
			left.WriteByte('\n')
			right.WriteString(line.Right())
			right.WriteByte('\n')
			continue
		}
		// Ambiguous lines stay on the left so no right-hand row is invented.
		left.WriteString(line.Text)
		left.WriteByte('\n')
	}
	return []string{left.String(), right.String()}
}
