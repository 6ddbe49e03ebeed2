// Package cli implements the tick command line.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tOgg1/tick/internal/config"
)

// rootOptions holds persistent flag values.
type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string
	backend    string
	dataDir    string
	jsonOutput bool

	// theme is set by `tick tui --theme`.
	theme string
}

// stdoutIsTerminal decides whether bare `tick` opens the TUI.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// Execute runs the tick command line.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "tick",
		Short:         "A small to-do list for the terminal",
		Long:          "tick keeps a single local task list. Run it without arguments for the interactive screen.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdoutIsTerminal() && !opts.jsonOutput {
				return runTUI(cmd, opts)
			}
			return runList(cmd, opts, "")
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/tick/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console|json")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: file|sqlite|memory")
	flags.StringVar(&opts.dataDir, "data-dir", "", "data directory")
	flags.BoolVar(&opts.jsonOutput, "json", false, "output as JSON")

	cmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newDoneCmd(opts),
		newEditCmd(opts),
		newRemoveCmd(opts),
		newClearCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newHistoryCmd(opts),
		newTUICmd(opts),
	)
	return cmd
}

// loadConfig resolves configuration: defaults < file < env < flags.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	loader := config.NewLoader()
	if o.configFile != "" {
		loader.SetConfigFile(o.configFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, Exitf(ExitCodeUsage, "%v", err)
	}
	cfg.Source = loader.ConfigFileUsed()

	if v := strings.TrimSpace(o.logLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(o.logFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := strings.TrimSpace(o.backend); v != "" {
		cfg.Storage.Backend = v
	}
	if v := strings.TrimSpace(o.dataDir); v != "" {
		cfg.Global.DataDir = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, Exitf(ExitCodeUsage, "invalid configuration: %v", err)
	}
	return cfg, nil
}
