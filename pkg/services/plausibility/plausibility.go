// Package plausibility flags readings of a parsed report that are unlikely
// to be real measurements. It only reports; the report is never modified.
package plausibility

import (
	"fmt"

	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/de-tools/bp-atlas/pkg/services/category"
)

const reportWide = -1

// Limits contains the accepted ranges for each measured value.
type Limits struct {
	// SystolicMin and SystolicMax bound the systolic pressure in mmHg (default: 60..260)
	SystolicMin int `mapstructure:"systolic_min"`
	SystolicMax int `mapstructure:"systolic_max"`
	// DiastolicMin and DiastolicMax bound the diastolic pressure in mmHg (default: 30..160)
	DiastolicMin int `mapstructure:"diastolic_min"`
	DiastolicMax int `mapstructure:"diastolic_max"`
	// HeartRateMin and HeartRateMax bound the pulse in bpm (default: 30..220)
	HeartRateMin int `mapstructure:"heart_rate_min"`
	HeartRateMax int `mapstructure:"heart_rate_max"`
}

// DefaultLimits returns the default ranges used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		SystolicMin:  60,
		SystolicMax:  260,
		DiastolicMin: 30,
		DiastolicMax: 160,
		HeartRateMin: 30,
		HeartRateMax: 220,
	}
}

// Check inspects every reading of the report against the limits.
func Check(report *domain.Report, limits Limits) domain.PlausibilityResult {
	result := domain.PlausibilityResult{
		Findings:   []domain.Finding{},
		Categories: map[domain.Category]int{},
		Summary:    map[string]any{},
	}
	if report == nil {
		return result
	}

	if len(report.Readings) == 0 {
		result.Findings = append(result.Findings, domain.Finding{
			Index:          reportWide,
			Issue:          "no_readings",
			Title:          "No readings were extracted from the report.",
			Severity:       domain.SeverityMedium,
			Recommendation: "Check that the document is a blood pressure report with a readings table.",
		})
		result.Summary["no_readings"] = 1
		return result
	}

	for i, r := range report.Readings {
		result.Findings = append(result.Findings, checkReading(i, r, limits)...)

		c := category.Classify(r.Systolic, r.Diastolic)
		result.Categories[c]++
		if c == domain.CategoryHypertensiveCrisis {
			result.CrisisCount++
		}
	}

	if result.CrisisCount > 0 {
		result.Findings = append(result.Findings, domain.Finding{
			Index:          reportWide,
			Issue:          "hypertensive_crisis",
			Title:          fmt.Sprintf("%d reading(s) in the hypertensive crisis range.", result.CrisisCount),
			Severity:       domain.SeverityHigh,
			Recommendation: "Review these readings with a clinician.",
		})
	}

	for _, f := range result.Findings {
		n, _ := result.Summary[f.Issue].(int)
		result.Summary[f.Issue] = n + 1
	}
	return result
}

func checkReading(index int, r domain.Reading, limits Limits) []domain.Finding {
	var findings []domain.Finding

	if r.Systolic == 0 || r.Diastolic == 0 || r.HeartRate == 0 {
		findings = append(findings, domain.Finding{
			Index:          index,
			Issue:          "missing_value",
			Title:          fmt.Sprintf("Reading %d has a value that could not be read (%s).", index, values(r)),
			Severity:       domain.SeverityMedium,
			Recommendation: "Compare the row with the source document.",
		})
		return findings
	}

	if !within(r.Systolic, limits.SystolicMin, limits.SystolicMax) {
		findings = append(findings, outOfRange(index, "systolic", r.Systolic, limits.SystolicMin, limits.SystolicMax))
	}
	if !within(r.Diastolic, limits.DiastolicMin, limits.DiastolicMax) {
		findings = append(findings, outOfRange(index, "diastolic", r.Diastolic, limits.DiastolicMin, limits.DiastolicMax))
	}
	if !within(r.HeartRate, limits.HeartRateMin, limits.HeartRateMax) {
		findings = append(findings, outOfRange(index, "heart_rate", r.HeartRate, limits.HeartRateMin, limits.HeartRateMax))
	}

	if r.Systolic <= r.Diastolic {
		findings = append(findings, domain.Finding{
			Index:          index,
			Issue:          "inverted_pressure",
			Title:          fmt.Sprintf("Reading %d has systolic not above diastolic (%s).", index, values(r)),
			Severity:       domain.SeverityHigh,
			Recommendation: "The columns were likely misread; verify against the source.",
		})
	}
	return findings
}

func outOfRange(index int, field string, value, low, high int) domain.Finding {
	return domain.Finding{
		Index:          index,
		Issue:          field + "_out_of_range",
		Title:          fmt.Sprintf("Reading %d has %s %d outside %d..%d.", index, field, value, low, high),
		Severity:       domain.SeverityHigh,
		Recommendation: "Verify the value against the source document.",
	}
}

func within(v, low, high int) bool {
	return v >= low && v <= high
}

func values(r domain.Reading) string {
	return fmt.Sprintf("%d/%d, HR %d", r.Systolic, r.Diastolic, r.HeartRate)
}
