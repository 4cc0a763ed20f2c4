package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// Форматы вывода
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatText, FormatJSON}

// RootOptions глобальные флаги клиента
type RootOptions struct {
	ConfigPath string
	ServerURL  string
	DBPath     string
	Format     string
	Verbose    bool
}

// Builder создает Cli по глобальным флагам. Возвращаемая функция
// освобождает ресурсы (локальную БД).
type Builder func(ctx context.Context, opts *RootOptions) (*Cli, func() error, error)

// Root корневая команда клиента
type Root struct {
	cmd     *cobra.Command
	app     *Cli
	closeFn func() error
}

// NewRoot создает корневую команду meetsync
func NewRoot(build Builder, version string) *Root {
	opts := &RootOptions{}
	r := &Root{}

	cmd := &cobra.Command{
		Use:           "meetsync",
		Short:         "meetsync - offline-first sync client for group event scheduling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if cmd.Name() == "version" || r.app != nil {
				return nil
			}

			app, closeFn, err := build(cmd.Context(), opts)
			if err != nil {
				return err
			}
			app.format = opts.Format
			r.app = app
			r.closeFn = closeFn
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "", "server URL (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to local database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	app := func() *Cli { return r.app }
	cmd.AddCommand(newLoginCommand(app))
	cmd.AddCommand(newLogoutCommand(app))
	cmd.AddCommand(newRecordCommand(app))
	cmd.AddCommand(newPendingCommand(app))
	cmd.AddCommand(newSyncCommand(app))
	cmd.AddCommand(newStatusCommand(app))
	cmd.AddCommand(newVersionCommand(version))

	r.cmd = cmd
	return r
}

// Command возвращает cobra команду
func (r *Root) Command() *cobra.Command {
	return r.cmd
}

// Execute выполняет команду с контекстом
func (r *Root) Execute(ctx context.Context, args []string) error {
	r.cmd.SetArgs(args)
	return r.cmd.ExecuteContext(ctx)
}

// Close освобождает ресурсы, открытые Builder
func (r *Root) Close() error {
	if r.closeFn == nil {
		return nil
	}
	err := r.closeFn()
	r.closeFn = nil
	return err
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("meetsync client %s\n", version)
		},
	}
}
