package api

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type Finding struct {
	Index          int      `json:"index"`
	Issue          string   `json:"issue"`
	Title          string   `json:"title"`
	Recommendation string   `json:"recommendation"`
	Severity       Severity `json:"severity"`
}

type PlausibilityReport struct {
	CrisisCount int                    `json:"crisisCount"`
	Categories  map[string]int         `json:"categories"`
	Summary     map[string]interface{} `json:"summary"`
	Findings    []Finding              `json:"findings"`
}
