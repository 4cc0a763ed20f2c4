package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newLoginCommand(app func() *Cli) *cobra.Command {
	var token, tokenFile string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save an access token issued by the authentication service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().runLogin(cmd.Context(), token, tokenFile)
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "access token (not recommended, prefer --token-file or prompt)")
	cmd.Flags().StringVar(&tokenFile, "token-file", "", "path to file containing access token")

	return cmd
}

func (c *Cli) runLogin(ctx context.Context, token, tokenFile string) error {
	switch {
	case token != "":
	case tokenFile != "":
		content, err := os.ReadFile(tokenFile)
		if err != nil {
			return fmt.Errorf("failed to read token file: %w", err)
		}
		token = strings.TrimSpace(string(content))
	default:
		secret, err := c.io.ReadSecret("Access token: ")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = secret
	}

	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	auth, err := c.session.Login(ctx, token)
	if err != nil {
		return err
	}

	if c.format == FormatJSON {
		return c.printJSON(map[string]any{
			"user_id":    auth.UserID,
			"expires_at": auth.ExpiresAt,
		})
	}

	c.io.Println("✓ Login successful!")
	c.io.Printf("User ID: %s\n", auth.UserID)
	if !auth.ExpiresAt.IsZero() {
		c.io.Printf("Token expires: %s\n", auth.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
