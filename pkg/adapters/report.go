package adapters

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/de-tools/bp-atlas/pkg/models/api"
	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/de-tools/bp-atlas/pkg/models/store"
	"github.com/de-tools/bp-atlas/pkg/services/category"
	"github.com/de-tools/bp-atlas/pkg/services/extraction"
)

const DateLayout = "2006-01-02"

func takenAt(r domain.Reading) *time.Time {
	at, err := extraction.ComposeInstant(r.Date, r.Time)
	if err != nil {
		return nil
	}
	return &at
}

func MapDomainReadingToStore(r domain.Reading, seq int) store.Reading {
	return store.Reading{
		Seq:         seq,
		Date:        r.Date,
		Time:        r.Time,
		TakenAt:     takenAt(r),
		Systolic:    r.Systolic,
		Diastolic:   r.Diastolic,
		HeartRate:   r.HeartRate,
		ReadingType: string(r.ReadingType),
	}
}

func MapStoreReadingToDomain(r store.Reading) domain.Reading {
	return domain.Reading{
		Date:        r.Date,
		Time:        r.Time,
		Systolic:    r.Systolic,
		Diastolic:   r.Diastolic,
		HeartRate:   r.HeartRate,
		ReadingType: domain.ReadingType(r.ReadingType),
	}
}

func MapDomainReportToStore(r *domain.Report, source string) (*store.Report, error) {
	res := &store.Report{
		Source:        source,
		MemberName:    r.Metadata.MemberName,
		Email:         r.Metadata.Email,
		Month:         r.Metadata.Month,
		Year:          r.Metadata.Year,
		Gender:        r.Metadata.Gender,
		DateOfBirth:   r.Metadata.DateOfBirth,
		Height:        r.Metadata.Height,
		Weight:        r.Metadata.Weight,
		ReadingsCount: len(r.Readings),
		Readings:      make([]store.Reading, 0, len(r.Readings)),
	}
	if r.Metadata.SummaryStats != nil {
		raw, err := json.Marshal(r.Metadata.SummaryStats)
		if err != nil {
			return nil, fmt.Errorf("marshal summary: %w", err)
		}
		summary := string(raw)
		res.Summary = &summary
	}
	for i, reading := range r.Readings {
		res.Readings = append(res.Readings, MapDomainReadingToStore(reading, i))
	}
	return res, nil
}

func MapStoreReportToDomain(r *store.Report) (*domain.Report, error) {
	res := &domain.Report{
		Metadata: domain.ReportMetadata{
			MemberName:  r.MemberName,
			Email:       r.Email,
			Month:       r.Month,
			Year:        r.Year,
			Gender:      r.Gender,
			DateOfBirth: r.DateOfBirth,
			Height:      r.Height,
			Weight:      r.Weight,
		},
		Readings: make([]domain.Reading, 0, len(r.Readings)),
	}
	if r.Summary != nil {
		var summary domain.SummaryStats
		if err := json.Unmarshal([]byte(*r.Summary), &summary); err != nil {
			return nil, fmt.Errorf("unmarshal summary: %w", err)
		}
		res.Metadata.SummaryStats = &summary
	}
	for _, reading := range r.Readings {
		res.Readings = append(res.Readings, MapStoreReadingToDomain(reading))
	}
	return res, nil
}

func mapStatsRowDomainToApi(s domain.StatsRow) api.StatsRow {
	return api.StatsRow{Systolic: s.Systolic, Diastolic: s.Diastolic, HeartRate: s.HeartRate}
}

func MapMetadataDomainToApi(m domain.ReportMetadata) api.ReportMetadata {
	res := api.ReportMetadata{
		MemberName:  m.MemberName,
		Email:       m.Email,
		Month:       m.Month,
		Year:        m.Year,
		Gender:      m.Gender,
		DateOfBirth: m.DateOfBirth,
		Height:      m.Height,
		Weight:      m.Weight,
	}
	if m.SummaryStats != nil {
		res.SummaryStats = &api.SummaryStats{
			Daytime: mapStatsRowDomainToApi(m.SummaryStats.Daytime),
			Night:   mapStatsRowDomainToApi(m.SummaryStats.Night),
			Overall: mapStatsRowDomainToApi(m.SummaryStats.Overall),
		}
	}
	return res
}

func MapReadingDomainToApi(r domain.Reading) api.Reading {
	return api.Reading{
		Date:        r.Date.Format(DateLayout),
		Time:        r.Time,
		TakenAt:     takenAt(r),
		Systolic:    r.Systolic,
		Diastolic:   r.Diastolic,
		HeartRate:   r.HeartRate,
		ReadingType: string(r.ReadingType),
		Category:    string(category.Classify(r.Systolic, r.Diastolic)),
	}
}

func MapReportDomainToApi(r *domain.Report) api.Report {
	res := api.Report{
		Metadata: MapMetadataDomainToApi(r.Metadata),
		Readings: make([]api.Reading, 0, len(r.Readings)),
	}
	for _, reading := range r.Readings {
		res.Readings = append(res.Readings, MapReadingDomainToApi(reading))
	}
	return res
}

func MapStoreReportToApiListItem(r store.Report) api.ReportListItem {
	return api.ReportListItem{
		ID:            r.ID,
		Source:        r.Source,
		ImportedAt:    r.ImportedAt,
		MemberName:    r.MemberName,
		Month:         r.Month,
		Year:          r.Year,
		ReadingsCount: r.ReadingsCount,
	}
}
