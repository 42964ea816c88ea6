package api

import "time"

type StatsRow struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
	HeartRate int `json:"heartRate"`
}

type SummaryStats struct {
	Daytime StatsRow `json:"daytime"`
	Night   StatsRow `json:"night"`
	Overall StatsRow `json:"overall"`
}

type ReportMetadata struct {
	MemberName   string        `json:"memberName"`
	Email        string        `json:"email"`
	Month        string        `json:"month"`
	Year         string        `json:"year"`
	Gender       string        `json:"gender"`
	DateOfBirth  string        `json:"dateOfBirth"`
	Height       string        `json:"height"`
	Weight       string        `json:"weight"`
	SummaryStats *SummaryStats `json:"summaryStats,omitempty"`
}

type Reading struct {
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	TakenAt     *time.Time `json:"takenAt,omitempty"`
	Systolic    int        `json:"systolic"`
	Diastolic   int        `json:"diastolic"`
	HeartRate   int        `json:"heartRate"`
	ReadingType string     `json:"readingType"`
	Category    string     `json:"category"`
}

type Report struct {
	ID           string              `json:"id,omitempty"`
	Source       string              `json:"source,omitempty"`
	ImportedAt   *time.Time          `json:"importedAt,omitempty"`
	Metadata     ReportMetadata      `json:"metadata"`
	Readings     []Reading           `json:"readings"`
	Plausibility *PlausibilityReport `json:"plausibility,omitempty"`
}

type ReportListItem struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	ImportedAt    time.Time `json:"importedAt"`
	MemberName    string    `json:"memberName"`
	Month         string    `json:"month"`
	Year          string    `json:"year"`
	ReadingsCount int       `json:"readingsCount"`
}

type ParseTextRequest struct {
	Pages []string `json:"pages"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
