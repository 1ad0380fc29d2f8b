package component

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/keys"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/live"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/style"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// SelectOptions configures Select.
type SelectOptions struct {
	Title string
	// Tracking decides how the selection follows updates. Nil follows rows
	// by their key.
	Tracking *live.Tracking
	// ViewportSize is the number of visible rows. Zero uses the config.
	ViewportSize int
	// Selected is the initially selected row.
	Selected int
	// Style overrides the configured table style.
	Style *table.Style
	// Updates, when set, replaces the table while the user is choosing.
	Updates <-chan live.Update
}

// Selection is the outcome of Select. Row is taken from the data current
// at the moment of choosing, which may differ from the data passed in when
// updates arrived.
type Selection struct {
	Index int
	Row   table.Row
}

const selectHelp = "↑/↓ move • pgup/pgdn page • enter select • esc cancel"

// Select shows data as a scrollable table and returns the chosen row. The
// table is validated before the terminal is touched.
func Select(ctx context.Context, env *Env, data table.Data, opts SelectOptions) (Selection, error) {
	none := Selection{Index: -1}

	stateOpts := []live.Option{
		live.WithViewportSize(env.viewportSize(opts.ViewportSize)),
		live.WithSelected(opts.Selected),
	}
	if opts.Tracking != nil {
		stateOpts = append(stateOpts, live.WithTracking(*opts.Tracking))
	}
	state, err := live.New(data, stateOpts...)
	if err != nil {
		return none, err
	}

	s, err := env.open("select")
	if err != nil {
		return none, err
	}
	defer s.close()

	ts := env.tableStyle(opts.Style)
	theme := env.theme()
	width := env.width()

	var paintMu sync.Mutex
	paint := func() {
		paintMu.Lock()
		defer paintMu.Unlock()
		snap := state.Snapshot()
		if snap.Stopped {
			return
		}
		_ = s.r.Render(selectView(snap, ts, theme, width, opts.Title), terminal.Primary)
	}
	paint()

	var wg sync.WaitGroup
	consumeCtx, stopConsume := context.WithCancel(ctx)
	defer func() {
		stopConsume()
		wg.Wait()
	}()
	if opts.Updates != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := live.Consume(consumeCtx, state, opts.Updates, paint); err != nil {
				logging.Debug("select stopped following updates", "error", err)
			}
		}()
	}

	err = s.listen(ctx, state.Done(), func(k keys.KeyStroke) bool {
		if handleSelectKey(state, k) {
			paint()
		}
		return !state.Stopped()
	})

	stopConsume()
	wg.Wait()

	// Take the lock so no update paints after the frame is cleared.
	paintMu.Lock()
	_ = s.r.Clear()
	paintMu.Unlock()

	if err != nil {
		state.Cancel()
		return none, err
	}
	if !state.Stopped() {
		state.Cancel()
	}
	idx, err := state.Result()
	if err != nil {
		return none, err
	}
	return Selection{Index: idx, Row: state.Snapshot().Data.Rows[idx]}, nil
}

// handleSelectKey applies k to state and reports whether a repaint is due.
func handleSelectKey(state *live.State, k keys.KeyStroke) bool {
	switch k.Kind {
	case keys.Up:
		return state.MoveSelection(-1)
	case keys.Down:
		return state.MoveSelection(1)
	case keys.PageUp:
		return state.PageBy(-1)
	case keys.PageDown:
		return state.PageBy(1)
	case keys.Home:
		return state.MoveToStart()
	case keys.End:
		return state.MoveToEnd()
	case keys.Return:
		state.SelectCurrent()
	case keys.Escape:
		state.Cancel()
	case keys.Printable:
		switch k.Char {
		case 'k':
			return state.MoveSelection(-1)
		case 'j':
			return state.MoveSelection(1)
		case 'g':
			return state.MoveToStart()
		case 'G':
			return state.MoveToEnd()
		case 'q':
			state.Cancel()
		}
	}
	return false
}

func selectView(snap live.Snapshot, ts table.Style, theme *style.Theme, width int, title string) string {
	widths := ts.Layout(snap.Data, width)
	body := ts.RenderWindow(snap.Data, widths, snap.Viewport.Start, snap.Viewport.End(), snap.Selected, theme.Highlight)

	var b strings.Builder
	if title != "" {
		b.WriteString(theme.Title.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("%d/%d  %s", snap.Selected+1, snap.Data.Len(), selectHelp)))
	return b.String()
}
