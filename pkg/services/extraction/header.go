package extraction

import (
	"strings"

	"github.com/de-tools/bp-atlas/pkg/models/domain"
)

const monthAlternation = `January|February|March|April|May|June|July|August|September|October|November|December`

// Patterns are ordered from the most specific to the most permissive.
var (
	memberNamePatterns = []string{
		`(?im)^[ \t]*(?:Member|Patient|User)(?:[ \t]+name)?[ \t]*:[ \t]*(\S[^\n]*?)[ \t]*$`,
		`(?im)^[ \t]*Name[ \t]*:[ \t]*(\S[^\n]*?)[ \t]*$`,
		`(?i)report[ \t]+for[ \t]+([A-Za-z][A-Za-z'. \-]*[A-Za-z.])`,
	}
	emailPatterns = []string{
		`(?i)e-?mail[ \t]*:?[ \t]*([A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,})`,
		`(?i)\b([A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,})\b`,
	}
	// A labelled period wins over one standing on its own line, which wins
	// over any month and year elsewhere on the page.
	monthYearPatterns = []string{
		`(?i)(?:reporting[ \t]+(?:month|period)|period|month)[ \t]*:?[ \t]*((?:` + monthAlternation + `)[ \t]*,?[ \t]+\d{4})\b`,
		`(?im)^[ \t]*((?:` + monthAlternation + `)[ \t]*,?[ \t]+\d{4})[ \t]*$`,
		`(?i)\b((?:` + monthAlternation + `)[ \t]*,?[ \t]+\d{4})\b`,
	}
	monthPatterns = []string{
		`(?i)\b(` + monthAlternation + `)\b`,
	}
	yearPatterns = []string{
		`(?i)(?:reporting[ \t]+(?:month|period)|period|year)[ \t]*:?[ \t]*(?:[A-Za-z]+[ \t]*,?[ \t]*)?(\d{4})\b`,
		`\b((?:19|20)\d{2})\b`,
	}
	genderPatterns = []string{
		`(?im)^[ \t]*(?:Gender|Sex)[ \t]*:?[ \t]*([A-Za-z][A-Za-z \-]*?)[ \t]*$`,
		`(?i)\b(Male|Female)\b`,
	}
	dateOfBirthPatterns = []string{
		`(?i)(?:Date[ \t]+of[ \t]+birth|Birth[ \t]*date|DOB)[ \t]*:?[ \t]*(\d{1,2}[./\-]\d{1,2}[./\-]\d{2,4}|\d{4}-\d{2}-\d{2}|\d{1,2}[ \t]+[A-Za-z]{3,9}\.?,?[ \t]+\d{4}|[A-Za-z]{3,9}[ \t]+\d{1,2},?[ \t]+\d{4})`,
		`(?im)(?:Date[ \t]+of[ \t]+birth|Birth[ \t]*date|DOB)[ \t]*:?[ \t]*(\S[^\n]*?)[ \t]*$`,
	}
	heightPatterns = []string{
		`(?i)Height[ \t]*:?[ \t]*(\d+(?:[.,]\d+)?[ \t]*(?:cm|m|in|inches|ft)\b)`,
		`(?i)Height[ \t]*:?[ \t]*(\d+'[ \t]*\d+(?:"|'')?)`,
		`(?im)Height[ \t]*:?[ \t]*(\S[^\n]*?)[ \t]*$`,
	}
	weightPatterns = []string{
		`(?i)Weight[ \t]*:?[ \t]*(\d+(?:[.,]\d+)?[ \t]*(?:kg|lbs|lb|st)\b)`,
		`(?im)Weight[ \t]*:?[ \t]*(\S[^\n]*?)[ \t]*$`,
	}
)

// ExtractHeader reads the member and period fields from the first page.
// Every field falls back to its documented default; SummaryStats is left to
// ExtractSummary.
func (e *Extractor) ExtractHeader(text string) domain.ReportMetadata {
	meta := domain.NewUnknownMetadata()

	if v, ok := firstOf(text, memberNamePatterns); ok {
		meta.MemberName = v
	}
	if v, ok := firstOf(text, emailPatterns); ok {
		meta.Email = v
	}
	if v, ok := firstOf(text, genderPatterns); ok {
		meta.Gender = v
	}
	if v, ok := firstOf(text, dateOfBirthPatterns); ok {
		meta.DateOfBirth = v
	}
	if v, ok := firstOf(text, heightPatterns); ok {
		meta.Height = v
	}
	if v, ok := firstOf(text, weightPatterns); ok {
		meta.Weight = v
	}

	meta.Month, meta.Year = extractPeriod(text, meta.DateOfBirth)
	return meta
}

// extractPeriod finds the reporting month and year. The birth date is
// blanked out first so its year is never taken for the reporting year.
func extractPeriod(text, dateOfBirth string) (string, string) {
	if dateOfBirth != domain.Unknown {
		text = strings.Replace(text, dateOfBirth, "", 1)
	}

	if combined, ok := firstOf(text, monthYearPatterns); ok {
		month, _ := FirstMatch(combined, monthPatterns[0])
		year, _ := FirstMatch(combined, `(\d{4})`)
		return month, year
	}

	month, year := domain.Unknown, domain.Unknown
	if v, ok := firstOf(text, monthPatterns); ok {
		month = v
	}
	if v, ok := firstOf(text, yearPatterns); ok {
		year = v
	}
	return month, year
}
