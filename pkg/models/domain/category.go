package domain

type Category string

const (
	CategoryNormal             Category = "Normal"
	CategoryElevated           Category = "Elevated"
	CategoryHypertensionStage1 Category = "Hypertension Stage 1"
	CategoryHypertensionStage2 Category = "Hypertension Stage 2"
	CategoryHypertensiveCrisis Category = "Hypertensive Crisis"
)
