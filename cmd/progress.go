package cmd

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/system"
)

var progressCmd = &cobra.Command{
	Use:   "progress [--title <title>] <command> [args...]",
	Short: "Run a command behind a progress bar",
	Long: `Runs a command and draws a progress bar from its output. Lines that
start with a percentage move the bar; the rest of such a line, or any
other line, becomes the message next to it:

  42% unpacking
  0.42 unpacking
  unpacking`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProgress,
}

var progressTitle string

func init() {
	progressCmd.Flags().StringVarP(&progressTitle, "title", "t", "", "Title shown above the bar (default the command)")
	progressCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(progressCmd)
}

// parseProgress reads one output line. ok is false when the line carries
// no fraction.
func parseProgress(line string) (fraction float64, message string, ok bool) {
	line = strings.TrimSpace(line)
	head, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	if pct, found := strings.CutSuffix(head, "%"); found {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, line, false
		}
		return v / 100, rest, true
	}
	if strings.Contains(head, ".") {
		v, err := strconv.ParseFloat(head, 64)
		if err == nil && v >= 0 && v <= 1 {
			return v, rest, true
		}
	}
	return 0, line, false
}

func runProgress(cmd *cobra.Command, args []string) error {
	name, cmdArgs, err := commandOf(args)
	if err != nil {
		return err
	}
	title := progressTitle
	if title == "" {
		title = system.QuoteCommand(name, cmdArgs...)
	}

	return component.RunProgress(cmd.Context(), env(), title, func(ctx context.Context, report func(component.Progress)) error {
		var current component.Progress
		return system.DefaultExecutor().Stream(ctx, func(line string) {
			fraction, message, ok := parseProgress(line)
			if ok {
				current.Fraction = fraction
			}
			current.Message = message
			report(current)
		}, name, cmdArgs...)
	})
}
