package store

import "time"

type Report struct {
	ID            string
	Source        string
	ImportedAt    time.Time
	MemberName    string
	Email         string
	Month         string
	Year          string
	Gender        string
	DateOfBirth   string
	Height        string
	Weight        string
	Summary       *string // JSON encoded summary table, nil when the report had none
	ReadingsCount int
	Readings      []Reading
}

type Reading struct {
	ReportID    string
	Seq         int
	Date        time.Time
	Time        string
	TakenAt     *time.Time
	Systolic    int
	Diastolic   int
	HeartRate   int
	ReadingType string
}
