// Package category classifies a blood pressure reading into the AHA
// categories.
package category

import "github.com/de-tools/bp-atlas/pkg/models/domain"

// Classify returns the category for one systolic/diastolic pair. The higher
// of the two individual categories wins.
func Classify(systolic, diastolic int) domain.Category {
	switch {
	case systolic > 180 || diastolic > 120:
		return domain.CategoryHypertensiveCrisis
	case systolic >= 140 || diastolic >= 90:
		return domain.CategoryHypertensionStage2
	case systolic >= 130 || diastolic >= 80:
		return domain.CategoryHypertensionStage1
	case systolic >= 120:
		return domain.CategoryElevated
	default:
		return domain.CategoryNormal
	}
}

// Count tallies the category of every reading.
func Count(readings []domain.Reading) map[domain.Category]int {
	counts := make(map[domain.Category]int)
	for _, r := range readings {
		counts[Classify(r.Systolic, r.Diastolic)]++
	}
	return counts
}
