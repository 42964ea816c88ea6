package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/de-tools/bp-atlas/pkg/services/category"
)

type TableConfig struct {
	DateWidth     int
	TimeWidth     int
	ValueWidth    int
	TypeWidth     int
	CategoryWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		DateWidth:     10,
		TimeWidth:     5,
		ValueWidth:    4,
		TypeWidth:     15,
		CategoryWidth: 20,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type reportView struct {
	Source   string
	Metadata domain.ReportMetadata
	Readings []domain.Reading
	Result   domain.PlausibilityResult
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(date, clock string, sys, dia, hr interface{}, kind, cat string) string {
			return fmt.Sprintf("| %-*s | %-*s | %*v | %*v | %*v | %-*s | %-*s |",
				c.config.DateWidth, date,
				c.config.TimeWidth, clock,
				c.config.ValueWidth, sys,
				c.config.ValueWidth, dia,
				c.config.ValueWidth, hr,
				c.config.TypeWidth, kind,
				c.config.CategoryWidth, cat)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.DateWidth+2),
				strings.Repeat("-", c.config.TimeWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.TypeWidth+2),
				strings.Repeat("-", c.config.CategoryWidth+2))
		},
		"category": func(r domain.Reading) string {
			return string(category.Classify(r.Systolic, r.Diastolic))
		},
	}
}

const readingsTemplate = `{{separator}}
{{formatRow "Date" "Time" "SYS" "DIA" "HR" "Type" "Category"}}
{{separator}}
{{range .}}{{formatRow (.Date.Format "2006-01-02") .Time .Systolic .Diastolic .HeartRate (printf "%s" .ReadingType) (category .)}}
{{end}}{{separator}}
`

const reportTemplate = `
Blood pressure report{{if .Source}} ({{.Source}}){{end}}

Member: {{.Metadata.MemberName}} <{{.Metadata.Email}}>
Period: {{.Metadata.Month}} {{.Metadata.Year}}
Gender: {{.Metadata.Gender}}  Date of birth: {{.Metadata.DateOfBirth}}
Height: {{.Metadata.Height}}  Weight: {{.Metadata.Weight}}
{{with .Metadata.SummaryStats}}
=== Summary ===
Daytime:          {{.Daytime.Systolic}}/{{.Daytime.Diastolic}} HR {{.Daytime.HeartRate}}
Night-time:       {{.Night.Systolic}}/{{.Night.Diastolic}} HR {{.Night.HeartRate}}
All measurements: {{.Overall.Systolic}}/{{.Overall.Diastolic}} HR {{.Overall.HeartRate}}
{{end}}
=== Readings ({{len .Readings}}) ===
{{template "readings" .Readings}}
{{if .Result.Findings}}=== Findings ===
{{range .Result.Findings}}- [{{.Severity}}] {{.Title}}
  {{.Recommendation}}
{{end}}{{else}}No findings.
{{end}}`

// Handle renders a parsed report with its plausibility findings.
func (c *Reporter) Handle(source string, report *domain.Report, result domain.PlausibilityResult) error {
	t, err := template.New("report").Funcs(c.funcMap()).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if _, err := t.New("readings").Parse(readingsTemplate); err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, reportView{
		Source:   source,
		Metadata: report.Metadata,
		Readings: report.Readings,
		Result:   result,
	})
}

// HandleReadings renders a bare readings table.
func (c *Reporter) HandleReadings(readings []domain.Reading) error {
	t, err := template.New("readings").Funcs(c.funcMap()).Parse(readingsTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, readings)
}
