package commands

import (
	"encoding/json"
	"fmt"

	"github.com/de-tools/bp-atlas/pkg/adapters"
	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/de-tools/bp-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/bp-atlas/pkg/services/ingest"
	"github.com/de-tools/bp-atlas/pkg/services/plausibility"
	"github.com/de-tools/bp-atlas/pkg/services/timeline"
	"github.com/spf13/cobra"
)

type ParseCmd struct {
	format        string
	dialect       string
	chronological bool
	env           *Env
	reporter      *export.Reporter
}

func NewParseCmd(env *Env, reporter *export.Reporter) *cobra.Command {
	pc := &ParseCmd{env: env, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "parse <file|s3://bucket/key>",
		Short: "Parse a blood pressure report and print it",
		Args:  cobra.ExactArgs(1),
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&pc.dialect, "dialect", "", "Report dialect (default from config)")
	cmd.Flags().BoolVar(&pc.chronological, "chronological", false, "Order readings by time and drop duplicates")

	return cmd
}

func (pc *ParseCmd) run(cmd *cobra.Command, args []string) error {
	if pc.format != "text" && pc.format != "json" {
		return fmt.Errorf("unsupported format %q. Supported formats: text, json", pc.format)
	}
	ctx := cmd.Context()

	importer, err := pc.env.importer(ctx, pc.dialect, args, nil)
	if err != nil {
		return err
	}

	src := ingest.Source{Location: args[0]}
	report, err := importer.Parse(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", src, err)
	}
	if pc.chronological {
		entries := timeline.Build(report.Readings)
		report.Readings = make([]domain.Reading, 0, len(entries))
		for _, e := range entries {
			report.Readings = append(report.Readings, e.Reading)
		}
	}
	result := plausibility.Check(report, pc.env.Config.Plausibility)

	if pc.format == "json" {
		response := adapters.MapReportDomainToApi(report)
		response.Source = src.String()
		check := adapters.MapPlausibilityDomainToApi(result)
		response.Plausibility = &check

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}

	return pc.reporter.Handle(src.String(), report, result)
}
