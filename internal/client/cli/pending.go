package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newPendingCommand(app func() *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List changes waiting to be synchronized",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().runPending(cmd.Context())
		},
	}
}

func (c *Cli) runPending(ctx context.Context) error {
	changes, err := c.journal.Pending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending changes: %w", err)
	}

	if c.format == FormatJSON {
		return c.printJSON(changes)
	}

	if len(changes) == 0 {
		c.io.Println("✓ No pending changes")
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CHANGE ID\tTIMESTAMP\tTABLE\tOPERATION\tRECORD ID")
	for _, change := range changes {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			change.ID,
			change.Timestamp.Format(time.RFC3339),
			change.Table,
			change.Operation,
			change.RecordID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	c.io.Printf("\nTotal: %d pending change(s)\n", len(changes))
	return nil
}
