package domain

import "time"

type ReadingType string

const (
	ReadingTypeNormal         ReadingType = "normal"
	ReadingTypeInitialization ReadingType = "initialization"
	ReadingTypeCuff           ReadingType = "cuffMeasurement"
	ReadingTypeOnDemandPhone  ReadingType = "onDemandPhone"
)

// Reading is one measurement recovered from a report table row.
// Date carries the calendar day at midnight UTC; Time is the "HH:mm" cell
// exactly as it appeared in the source.
type Reading struct {
	Date        time.Time
	Time        string
	Systolic    int
	Diastolic   int
	HeartRate   int
	ReadingType ReadingType
}
