package adapters

import (
	"github.com/de-tools/bp-atlas/pkg/models/api"
	"github.com/de-tools/bp-atlas/pkg/models/domain"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityLow:
		return api.SeverityLow
	case domain.SeverityMedium:
		return api.SeverityMedium
	case domain.SeverityHigh:
		return api.SeverityHigh
	case domain.SeverityCritical:
		return api.SeverityCritical
	default:
		return api.SeverityLow
	}
}

func MapFindingDomainToApi(f domain.Finding) api.Finding {
	return api.Finding{
		Index:          f.Index,
		Issue:          f.Issue,
		Title:          f.Title,
		Recommendation: f.Recommendation,
		Severity:       MapSeverityDomainToApi(f.Severity),
	}
}

func MapPlausibilityDomainToApi(r domain.PlausibilityResult) api.PlausibilityReport {
	res := api.PlausibilityReport{
		CrisisCount: r.CrisisCount,
		Categories:  make(map[string]int, len(r.Categories)),
		Summary:     map[string]any{},
		Findings:    make([]api.Finding, 0, len(r.Findings)),
	}
	for c, n := range r.Categories {
		res.Categories[string(c)] = n
	}
	// copy summary as-is
	for k, v := range r.Summary {
		res.Summary[k] = v
	}
	for _, f := range r.Findings {
		res.Findings = append(res.Findings, MapFindingDomainToApi(f))
	}
	return res
}
