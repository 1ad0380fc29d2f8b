package component

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/keys"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/live"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// MultiSelectOptions configures MultiSelect.
type MultiSelectOptions struct {
	Title string
	// Min is the fewest rows that may be confirmed.
	Min int
	// Max is the most rows that may be checked. Zero means no limit.
	Max int
	// Checked lists the initially checked rows.
	Checked []int
	// ViewportSize is the number of visible rows. Zero uses the config.
	ViewportSize int
	// Style overrides the configured table style.
	Style *table.Style
}

// Validate rejects limits that no selection over rows could satisfy.
func (o MultiSelectOptions) Validate(rows int) error {
	switch {
	case o.Min < 0 || o.Max < 0:
		return errors.ConfigError("invalid selection limits",
			fmt.Errorf("min %d and max %d must not be negative", o.Min, o.Max))
	case o.Max > 0 && o.Min > o.Max:
		return errors.ConfigError("invalid selection limits",
			fmt.Errorf("min %d is greater than max %d", o.Min, o.Max))
	case o.Min > rows:
		return errors.ConfigError("invalid selection limits",
			fmt.Errorf("min %d is greater than the %d available rows", o.Min, rows))
	case o.Max > 0 && len(o.Checked) > o.Max:
		return errors.ConfigError("invalid selection limits",
			fmt.Errorf("%d rows checked initially but max is %d", len(o.Checked), o.Max))
	}
	for _, i := range o.Checked {
		if i < 0 || i >= rows {
			return errors.ConfigError("invalid selection limits",
				fmt.Errorf("checked row %d out of range", i))
		}
	}
	return nil
}

const multiHelp = "space toggle • a all • enter confirm • esc cancel"

// MultiSelect lets the user check several rows and returns their indices
// in ascending order.
func MultiSelect(ctx context.Context, env *Env, data table.Data, opts MultiSelectOptions) ([]int, error) {
	state, err := live.New(data,
		live.WithViewportSize(env.viewportSize(opts.ViewportSize)),
		live.WithTracking(live.TrackIndex()),
	)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(data.Len()); err != nil {
		return nil, err
	}

	s, err := env.open("choose")
	if err != nil {
		return nil, err
	}
	defer s.close()

	ts := env.tableStyle(opts.Style)
	theme := env.theme()

	checked := make(map[int]bool, len(opts.Checked))
	for _, i := range opts.Checked {
		checked[i] = true
	}
	widths := ts.Layout(withMarkers(data, nil), env.width())
	message := ""

	limits := fmt.Sprintf("min %d", opts.Min)
	if opts.Max > 0 {
		limits += fmt.Sprintf(", max %d", opts.Max)
	}

	view := func() string {
		snap := state.Snapshot()
		display := withMarkers(data, checked)
		var b strings.Builder
		if opts.Title != "" {
			b.WriteString(theme.Title.Render(opts.Title) + "\n")
		}
		b.WriteString(ts.RenderWindow(display, widths, snap.Viewport.Start, snap.Viewport.End(), snap.Selected, theme.Highlight))
		b.WriteString("\n" + theme.Dim.Render(fmt.Sprintf("%d selected (%s)  %s", len(checked), limits, multiHelp)))
		if message != "" {
			b.WriteString("\n" + theme.Warning.Render(message))
		}
		return b.String()
	}
	_ = s.r.Render(view(), terminal.Primary)

	toggle := func(i int) {
		if checked[i] {
			delete(checked, i)
			return
		}
		if opts.Max > 0 && len(checked) >= opts.Max {
			message = fmt.Sprintf("at most %d rows can be selected", opts.Max)
			return
		}
		checked[i] = true
	}

	err = s.listen(ctx, state.Done(), func(k keys.KeyStroke) bool {
		message = ""
		switch {
		case k.Kind == keys.Printable && k.Char == ' ':
			toggle(state.Snapshot().Selected)
		case k.Kind == keys.Printable && k.Char == 'a':
			if len(checked) > 0 {
				clear(checked)
			} else {
				for i := 0; i < data.Len() && (opts.Max == 0 || i < opts.Max); i++ {
					checked[i] = true
				}
			}
		case k.Kind == keys.Return:
			if len(checked) < opts.Min {
				message = fmt.Sprintf("select at least %d rows", opts.Min)
				break
			}
			state.SelectCurrent()
			return false
		default:
			handleSelectKey(state, k)
		}
		if state.Stopped() {
			return false
		}
		_ = s.r.Render(view(), terminal.Primary)
		return true
	})
	_ = s.r.Clear()

	if err != nil {
		return nil, err
	}
	if _, err := state.Result(); err != nil {
		return nil, err
	}
	if !state.Stopped() {
		return nil, errors.UserCancelled()
	}

	out := make([]int, 0, len(checked))
	for i := range checked {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

// withMarkers prepends a check column to data.
func withMarkers(data table.Data, checked map[int]bool) table.Data {
	cols := make([]table.Column, 0, len(data.Columns)+1)
	cols = append(cols, table.Column{Title: "", Width: table.FixedWidth(3)})
	cols = append(cols, data.Columns...)

	rows := make([]table.Row, len(data.Rows))
	for i, r := range data.Rows {
		mark := "[ ]"
		if checked[i] {
			mark = "[x]"
		}
		rows[i] = table.Row{ID: r.ID, Cells: append([]string{mark}, r.Cells...)}
	}
	return table.Data{Columns: cols, Rows: rows}
}
