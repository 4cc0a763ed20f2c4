package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/meetsync/internal/client/sync"
)

func newSyncCommand(app func() *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Send pending changes to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().runSync(cmd.Context())
		},
	}
}

func (c *Cli) runSync(ctx context.Context) error {
	result, err := c.syncer.TriggerSync(ctx)
	if err != nil {
		var terr *sync.TransportError
		switch {
		case errors.Is(err, sync.ErrNetworkUnavailable):
			return fmt.Errorf("server is unreachable, changes stay in the journal: %w", err)
		case errors.Is(err, sync.ErrMissingCredentials):
			return fmt.Errorf("not authenticated. Please run 'meetsync login' first")
		case errors.As(err, &terr):
			return fmt.Errorf("synchronization failed after %d attempts, changes stay in the journal: %w", terr.Attempts, terr.Err)
		}
		return fmt.Errorf("synchronization failed: %w", err)
	}

	if c.format == FormatJSON {
		return c.printJSON(result.Response)
	}

	if result.Submitted == 0 {
		c.io.Println("✓ Nothing to synchronize")
		return nil
	}

	c.io.Println("✓ Synchronization completed successfully!")
	c.io.Println()
	c.io.Printf("Sent to server:     %d change(s)\n", result.Submitted)
	c.io.Printf("Applied by server:  %d change(s)\n", result.AppliedChanges)
	if result.Attempts > 1 {
		c.io.Printf("Attempts:           %d\n", result.Attempts)
	}

	if len(result.Conflicts) > 0 {
		c.io.Println()
		c.io.Printf("Conflicts: %d\n", len(result.Conflicts))
		for _, conflict := range result.Conflicts {
			c.io.Printf("  - %s %s/%s: %s\n", conflict.Resolution, conflict.Table, conflict.RecordID, conflict.ChangeID)
		}
	}

	return nil
}
