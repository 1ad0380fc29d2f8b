package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

var (
	configPath     string
	verbose        bool
	jsonOutput     bool
	nonInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   "forage-ui",
	Short: "Interactive terminal widgets for shell scripts",
	Long: `forage-ui draws tables, pickers, prompts and progress steps in the
terminal so shell scripts can talk to people.

Interactive widgets need a terminal. When stdout is piped, or
FORAGE_UI_NON_INTERACTIVE is set, they fail with exit code 2; the
table, step, progress and alert commands fall back to plain lines.

Exit codes:
  0    success
  1    general error, or a declined confirmation
  2    interactive widget without a terminal
  3    invalid table data
  4    empty table
  5    data source failed
  6    configuration error
  130  cancelled by the user`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// setup loads the configuration and installs the default app for the
// command about to run.
func setup(cmd *cobra.Command, args []string) error {
	logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())
	logging.SetUserOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	for _, key := range cfg.Undecoded {
		logWarning("unknown config key %q in %s", key, cfg.Path)
	}
	if nonInteractive {
		cfg.NonInteractive = true
	}

	terminal.InstallSignalRestore()
	app.SetDefault(newApp(app.WithConfig(cfg), app.WithStreams(streamsOf(cmd))))
	return nil
}

// newApp is swapped in tests.
var newApp = app.New

// streamsOf binds the command's writers. Key input comes from stdin when it
// is a file.
func streamsOf(cmd *cobra.Command) terminal.Streams {
	s := terminal.Streams{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		s.In = f
	}
	return s
}

// Execute runs the root command and reports a failure the way the rest of
// the output looks. Cancellations and silent errors print nothing.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.IsUserCancelled(err) && err.Error() != "" {
		logError("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/forage-ui/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Never take over the terminal")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
