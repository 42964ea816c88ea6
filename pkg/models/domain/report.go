package domain

const (
	UnknownMemberName = "Unknown User"
	UnknownEmail      = "unknown@email.com"
	Unknown           = "Unknown"
)

// ReportMetadata holds the header fields of a report. Fields that could not
// be extracted carry one of the Unknown* sentinels, never an empty string.
type ReportMetadata struct {
	MemberName   string
	Email        string
	Month        string
	Year         string
	Gender       string
	DateOfBirth  string
	Height       string
	Weight       string
	SummaryStats *SummaryStats
}

// SummaryStats are the means of the "Summary table" section.
type SummaryStats struct {
	Daytime StatsRow
	Night   StatsRow
	Overall StatsRow
}

type StatsRow struct {
	Systolic  int
	Diastolic int
	HeartRate int
}

// Report represents one parsed document
type Report struct {
	Metadata ReportMetadata
	Readings []Reading
}

// NewUnknownMetadata returns metadata with every field set to its default.
func NewUnknownMetadata() ReportMetadata {
	return ReportMetadata{
		MemberName:  UnknownMemberName,
		Email:       UnknownEmail,
		Month:       Unknown,
		Year:        Unknown,
		Gender:      Unknown,
		DateOfBirth: Unknown,
		Height:      Unknown,
		Weight:      Unknown,
	}
}
