package commands

import (
	"github.com/de-tools/bp-atlas/pkg/adapters"
	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/de-tools/bp-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type ReadingsCmd struct {
	from     string
	to       string
	env      *Env
	reporter *export.Reporter
}

func NewReadingsCmd(env *Env, reporter *export.Reporter) *cobra.Command {
	rc := &ReadingsCmd{env: env, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "readings",
		Short: "List stored readings",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.to, "to", "", "Last day to include (YYYY-MM-DD)")

	return cmd
}

func (rc *ReadingsCmd) run(cmd *cobra.Command, args []string) error {
	from, err := parseDay(rc.from, "from")
	if err != nil {
		return err
	}
	to, err := parseDay(rc.to, "to")
	if err != nil {
		return err
	}
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}

	store, db, err := rc.env.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := store.ListReadings(cmd.Context(), from, to)
	if err != nil {
		return err
	}

	readings := make([]domain.Reading, 0, len(records))
	for _, rec := range records {
		readings = append(readings, adapters.MapStoreReadingToDomain(rec))
	}
	return rc.reporter.HandleReadings(readings)
}
