package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/meetsync/internal/client/storage"
)

// statusReport состояние клиента для вывода в JSON
type statusReport struct {
	ExpiresAt     time.Time `json:"expires_at,omitzero"`
	UserID        string    `json:"user_id,omitempty"`
	Authenticated bool      `json:"authenticated"`
	Expired       bool      `json:"expired"`
	Online        bool      `json:"online"`
	Pending       int       `json:"pending"`
}

func newStatusCommand(app func() *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication, connectivity and pending changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	report := statusReport{}

	auth, err := c.session.Current(ctx)
	switch {
	case err == nil:
		report.Authenticated = true
		report.UserID = auth.UserID
		report.ExpiresAt = auth.ExpiresAt
		report.Expired = auth.Expired(time.Now())
	case errors.Is(err, storage.ErrAuthNotFound):
	default:
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	pending, err := c.syncer.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending changes: %w", err)
	}
	report.Pending = pending
	report.Online = c.network.IsAvailable(ctx)

	if c.format == FormatJSON {
		return c.printJSON(report)
	}

	c.io.Println("=== Status ===")
	c.io.Println()
	if !report.Authenticated {
		c.io.Println("Authentication: not authenticated")
		c.io.Println("Run 'meetsync login' to authenticate.")
	} else {
		c.io.Printf("Authentication: %s\n", report.UserID)
		if !report.ExpiresAt.IsZero() {
			c.io.Printf("Token expires:  %s\n", report.ExpiresAt.Format(time.RFC3339))
		}
		if report.Expired {
			c.io.Println("⚠️  Token has expired. Please login again.")
		}
	}

	if report.Online {
		c.io.Println("Server:         reachable")
	} else {
		c.io.Println("Server:         unreachable")
	}

	if report.Pending > 0 {
		c.io.Printf("⚠️  Pending sync: %d change(s) waiting to be synchronized\n", report.Pending)
		c.io.Println("Run 'meetsync sync' to synchronize with server.")
	} else {
		c.io.Println("✓ All changes synchronized with server")
	}

	return nil
}
