package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/system"
)

var stepCmd = &cobra.Command{
	Use:   "step [--title <title>] <command> [args...]",
	Short: "Run a command behind a spinner",
	Long: `Runs a command while a spinner and the command's latest output line
are shown. When the command ends the spinner is replaced by a success or
failure line with the elapsed time.

A single argument is split like a shell would:

  forage-ui step "make -j4 build"
  forage-ui step --title "Fetching" -- curl -fsSLO https://example.com/x.tgz`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStep,
}

var stepTitle string

func init() {
	stepCmd.Flags().StringVarP(&stepTitle, "title", "t", "", "Title shown next to the spinner (default the command)")
	stepCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(stepCmd)
}

// commandOf turns positional arguments into argv. A single argument is
// split with shell quoting rules.
func commandOf(args []string) (string, []string, error) {
	if len(args) == 1 {
		name, rest, err := system.SplitCommand(args[0])
		if err != nil {
			return "", nil, errors.ValidationError(err.Error())
		}
		return name, rest, nil
	}
	return args[0], args[1:], nil
}

func runStep(cmd *cobra.Command, args []string) error {
	name, cmdArgs, err := commandOf(args)
	if err != nil {
		return err
	}
	title := stepTitle
	if title == "" {
		title = system.QuoteCommand(name, cmdArgs...)
	}

	return component.RunStep(cmd.Context(), env(), title, func(ctx context.Context, status func(string)) error {
		return system.DefaultExecutor().Stream(ctx, func(line string) {
			status(strings.TrimSpace(line))
		}, name, cmdArgs...)
	})
}
