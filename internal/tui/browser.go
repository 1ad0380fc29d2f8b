// Package tui provides the full-screen table browser for forage-ui
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/keys"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/live"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/style"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// Options configures the browser.
type Options struct {
	Title string
	Style table.Style
	Theme *style.Theme
	Keys  *KeyMap

	// Interrupt decides what Ctrl+C does. Exit and continue both cancel.
	Interrupt keys.InterruptPolicy

	// FixedViewport keeps the state's viewport size instead of filling the
	// window.
	FixedViewport bool

	// Updates, when set, replaces the table while browsing.
	Updates <-chan live.Update

	// Input and Output default to the process terminal.
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
}

// refreshMsg tells the model the state changed underneath it.
type refreshMsg struct{}

// Model is the bubbletea model for the table browser
type Model struct {
	state  *live.State
	title  string
	style  table.Style
	theme  *style.Theme
	keys   KeyMap
	help   help.Model
	policy keys.InterruptPolicy
	fixed  bool

	width  int
	height int
}

// New creates a browser over state.
func New(state *live.State, opts Options) Model {
	km := DefaultKeyMap()
	if opts.Keys != nil {
		km = *opts.Keys
	}
	theme := opts.Theme
	if theme == nil {
		theme = style.Plain()
	}
	ts := opts.Style
	if ts.Glyphs == (table.Glyphs{}) {
		ts = table.DefaultStyle()
	}

	h := help.New()
	h.Styles.ShortKey = theme.Info
	h.Styles.ShortDesc = theme.Dim
	h.Styles.FullKey = theme.Info
	h.Styles.FullDesc = theme.Dim

	return Model{
		state:  state,
		title:  opts.Title,
		style:  ts,
		theme:  theme,
		keys:   km,
		help:   h,
		policy: opts.Interrupt,
		fixed:  opts.FixedViewport,
		width:  terminal.DefaultWidth,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.fixed {
			m.state.Resize(m.bodyHeight())
		}
		return m, nil

	case refreshMsg:
		if m.state.Stopped() {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Interrupt):
		if m.policy == keys.PolicyIgnore {
			return m, nil
		}
		logging.Debug("browser interrupted", "policy", m.policy)
		m.state.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.state.MoveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.state.MoveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.state.PageBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.state.PageBy(1)
	case key.Matches(msg, m.keys.Home):
		m.state.MoveToStart()
	case key.Matches(msg, m.keys.End):
		m.state.MoveToEnd()

	case key.Matches(msg, m.keys.Select):
		m.state.SelectCurrent()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit):
		m.state.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		if !m.fixed && m.height > 0 {
			m.state.Resize(m.bodyHeight())
		}
	}

	return m, nil
}

// chrome is the number of lines around the visible rows.
func (m Model) chrome() int {
	n := 3 // top border, header, bottom border
	if m.style.HeaderSeparator {
		n++
	}
	if m.title != "" {
		n++
	}
	n++ // footer
	if m.help.ShowAll {
		n += len(m.keys.FullHelp()[0])
	} else {
		n++
	}
	return n
}

func (m Model) bodyHeight() int {
	return max(1, m.height-m.chrome())
}

func (m Model) View() string {
	snap := m.state.Snapshot()
	if snap.Stopped {
		return ""
	}

	widths := m.style.Layout(snap.Data, m.width)
	body := m.style.RenderWindow(snap.Data, widths, snap.Viewport.Start, snap.Viewport.End(), snap.Selected, m.theme.Highlight)

	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.theme.Title.Render(m.title))
		b.WriteString("\n")
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.theme.Dim.Render(fmt.Sprintf("%d/%d", snap.Selected+1, snap.Data.Len())))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run shows the browser until the user selects, cancels or ctx ends.
func Run(ctx context.Context, state *live.State, opts Options) (component.Selection, error) {
	none := component.Selection{Index: -1}

	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}

	p := tea.NewProgram(New(state, opts), popts...)

	var wg sync.WaitGroup
	consumeCtx, stopConsume := context.WithCancel(ctx)
	if opts.Updates != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := live.Consume(consumeCtx, state, opts.Updates, func() {
				p.Send(refreshMsg{})
			})
			if err != nil {
				logging.Debug("browser stopped following updates", "error", err)
			}
		}()
	}

	_, err := p.Run()
	stopConsume()
	wg.Wait()

	if ctx.Err() != nil {
		state.Cancel()
		return none, ctx.Err()
	}
	if err != nil {
		state.Cancel()
		return none, fmt.Errorf("full-screen browser failed: %w", err)
	}
	if !state.Stopped() {
		state.Cancel()
	}

	idx, err := state.Result()
	if err != nil {
		return none, err
	}
	return component.Selection{Index: idx, Row: state.Snapshot().Data.Rows[idx]}, nil
}
