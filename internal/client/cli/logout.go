package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCommand(app func() *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved access token",
		Long:  "Remove the saved access token. Pending changes stay in the journal until the next sync.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().runLogout(cmd.Context())
		},
	}
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.session.Logout(ctx); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	c.io.Println("✓ Logged out")
	return nil
}
