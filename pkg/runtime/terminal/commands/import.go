package commands

import (
	"fmt"

	"github.com/de-tools/bp-atlas/pkg/services/ingest"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	dialect string
	env     *Env
}

func NewImportCmd(env *Env) *cobra.Command {
	ic := &ImportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "import <file|s3://bucket/key>...",
		Short: "Parse reports and store their readings",
		Args:  cobra.MinimumNArgs(1),
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.dialect, "dialect", "", "Report dialect (default from config)")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, db, err := ic.env.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	importer, err := ic.env.importer(ctx, ic.dialect, args, store)
	if err != nil {
		return err
	}

	sources := make([]ingest.Source, 0, len(args))
	for _, arg := range args {
		sources = append(sources, ingest.Source{Location: arg})
	}

	failed := 0
	out := cmd.OutOrStdout()
	for _, res := range importer.Import(ctx, sources) {
		if res.Err != nil {
			failed++
			fmt.Fprintf(out, "FAILED %s: %v\n", res.Source, res.Err)
			continue
		}
		fmt.Fprintf(out, "OK     %s: %d readings, id %s\n", res.Source, len(res.Report.Readings), res.ReportID)
	}

	zerolog.Ctx(ctx).Info().Int("sources", len(sources)).Int("failed", failed).Msg("import finished")
	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(sources))
	}
	return nil
}
