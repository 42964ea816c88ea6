package domain

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "critical"
	}
}

// Finding is one plausibility observation about a parsed report.
// Index points into Report.Readings, or is -1 for report-wide findings.
type Finding struct {
	Index          int
	Issue          string
	Title          string
	Severity       Severity
	Recommendation string
}

type PlausibilityResult struct {
	Findings    []Finding
	CrisisCount int
	Categories  map[Category]int
	Summary     map[string]any // issue -> count
}
