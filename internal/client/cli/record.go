package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/meetsync/internal/models"
)

func newRecordCommand(app func() *Cli) *cobra.Command {
	var data, dataFile string

	cmd := &cobra.Command{
		Use:   "record <table> <operation> <record-id>",
		Short: "Record a local change in the journal",
		Long: `Record a local change in the journal.

Tables: events, participants, votes.
Operations: CREATE, UPDATE, DELETE (DELETE needs no data).`,
		Example: `  meetsync record events CREATE E1 --data '{"id":"E1","owner_id":"u1","title":"Board games"}'
  meetsync record votes UPDATE V1 --data-file vote.json
  meetsync record participants DELETE P1`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().runRecord(cmd.Context(), args[0], args[1], args[2], data, dataFile)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "entity snapshot as JSON")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "path to file with entity snapshot")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")

	return cmd
}

func (c *Cli) runRecord(ctx context.Context, table, operation, recordID, data, dataFile string) error {
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}

	if dataFile != "" {
		content, err := os.ReadFile(dataFile)
		if err != nil {
			return fmt.Errorf("failed to read data file: %w", err)
		}
		data = string(content)
	}

	var payload any
	if strings.TrimSpace(data) != "" {
		payload = json.RawMessage(data)
	}

	change, err := c.syncer.RecordLocalChange(ctx,
		models.Table(strings.ToLower(table)),
		models.Operation(strings.ToUpper(operation)),
		recordID, payload, userID)
	if err != nil {
		return fmt.Errorf("failed to record change: %w", err)
	}

	if c.format == FormatJSON {
		return c.printJSON(change)
	}

	c.io.Printf("✓ Recorded %s %s %s (change %s)\n", change.Operation, change.Table, change.RecordID, change.ID)
	return nil
}
