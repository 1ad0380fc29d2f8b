package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/live"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/tui"
)

var selectCmd = &cobra.Command{
	Use:   "select [file|-]",
	Short: "Pick one row of a table",
	Long: `Shows a table and prints the row the user picks.

Use arrow keys or j/k to move, PgUp/PgDn to page, Enter to pick and
Esc or q to cancel (exit code 130).

With --watch or --poll the table is reloaded while the user is choosing.
The selection stays on the same row (see --track) as rows move around.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSelect,
}

var (
	selectData       dataFlags
	selectWatch      bool
	selectPoll       time.Duration
	selectTrack      string
	selectFullscreen bool
	selectViewport   int
	selectIndex      int
	selectPrint      string
)

func init() {
	selectData.register(selectCmd)
	selectCmd.Flags().BoolVarP(&selectWatch, "watch", "w", false, "Reload the file when it changes")
	selectCmd.Flags().DurationVar(&selectPoll, "poll", 0, "Reload the file or rerun --exec at this interval")
	selectCmd.Flags().StringVar(&selectTrack, "track", "key", "How the selection follows updates: key, index or column:<title>")
	selectCmd.Flags().BoolVar(&selectFullscreen, "fullscreen", false, "Browse in the whole terminal window")
	selectCmd.Flags().IntVar(&selectViewport, "viewport", 0, "Number of visible rows (default from config)")
	selectCmd.Flags().IntVar(&selectIndex, "selected", 0, "Initially selected row")
	selectCmd.Flags().StringVarP(&selectPrint, "print", "p", "row", "What to print: row, index or key")
	selectCmd.MarkFlagsMutuallyExclusive("watch", "poll")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, src, err := selectData.load(cmd, args)
	if err != nil {
		return err
	}
	if src.Stdin {
		useTTY()
	}

	tracking, err := parseTracking(selectTrack, data)
	if err != nil {
		return err
	}
	style, err := selectData.style()
	if err != nil {
		return err
	}
	updates, err := src.updates(ctx, selectWatch, selectPoll)
	if err != nil {
		return err
	}

	var sel component.Selection
	if selectFullscreen {
		sel, err = runFullscreen(cmd, data, tracking, updates)
	} else {
		sel, err = component.Select(ctx, env(), data, component.SelectOptions{
			Title:        selectData.title,
			Tracking:     &tracking,
			ViewportSize: selectViewport,
			Selected:     selectIndex,
			Style:        style,
			Updates:      updates,
		})
	}
	if err != nil {
		return err
	}

	logging.Debug("row selected", "index", sel.Index, "key", sel.Row.Key())
	return printRow(cmd, selectPrint, sel.Index, sel.Row)
}

func runFullscreen(cmd *cobra.Command, data table.Data, tracking live.Tracking, updates <-chan live.Update) (component.Selection, error) {
	none := component.Selection{Index: -1}
	a := app.Default
	if !a.Interactive() {
		return none, errors.NonInteractiveTerminal("select")
	}

	viewport := selectViewport
	if viewport <= 0 {
		viewport = a.Config.Table.ViewportSize
	}
	state, err := live.New(data,
		live.WithTracking(tracking),
		live.WithViewportSize(viewport),
		live.WithSelected(selectIndex),
	)
	if err != nil {
		return none, err
	}

	style := a.Config.TableStyle()
	override, err := selectData.style()
	if err != nil {
		return none, err
	}
	if override != nil {
		style = *override
	}

	opts := tui.Options{
		Title:         selectData.title,
		Style:         style,
		Theme:         a.Theme,
		Interrupt:     a.Config.InterruptPolicy(),
		FixedViewport: selectViewport > 0,
		Updates:       updates,
		Output:        a.Streams.Out,
		AltScreen:     true,
	}
	if a.Streams.In != nil {
		opts.Input = a.Streams.In
	}
	return tui.Run(cmd.Context(), state, opts)
}
