package live

import (
	"sync"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/viewport"
)

// DefaultViewportSize is the number of rows shown when no size is given.
const DefaultViewportSize = 10

type trackKind int

const (
	trackIndex trackKind = iota
	trackKey
)

// Tracking decides how the selection follows data replacement.
type Tracking struct {
	kind trackKind
	key  func(table.Row) string
}

// TrackIndex keeps the selected position only.
func TrackIndex() Tracking {
	return Tracking{kind: trackIndex}
}

// TrackRowKey follows the row whose key, as derived by fn, was selected.
func TrackRowKey(fn func(table.Row) string) Tracking {
	if fn == nil {
		fn = table.Row.Key
	}
	return Tracking{kind: trackKey, key: fn}
}

// TrackAutomatic follows rows by table.Row.Key.
func TrackAutomatic() Tracking {
	return TrackRowKey(table.Row.Key)
}

// Snapshot is a consistent copy of the state.
type Snapshot struct {
	Data     table.Data
	Selected int
	Viewport viewport.Viewport
	Key      string
	Stopped  bool
}

// Visible returns the rows inside the viewport.
func (s Snapshot) Visible() []table.Row {
	return s.Data.Rows[s.Viewport.Start:s.Viewport.End()]
}

// State is the shared {data, selection, viewport} triple.
type State struct {
	mu       sync.Mutex
	data     table.Data
	selected int
	vp       viewport.Viewport
	key      string
	tracking Tracking

	stopped   bool
	cancelled bool
	done      chan struct{}
}

// Option configures a State.
type Option func(*State)

// WithTracking sets the selection tracking strategy. The default is
// TrackAutomatic.
func WithTracking(t Tracking) Option {
	return func(s *State) {
		s.tracking = t
	}
}

// WithViewportSize sets how many rows are visible at once.
func WithViewportSize(n int) Option {
	return func(s *State) {
		s.vp.SetSize(n)
	}
}

// WithSelected sets the initially selected index. Out of range values are
// clamped.
func WithSelected(i int) Option {
	return func(s *State) {
		s.selected = i
	}
}

// New creates a state over data, which must be valid and non-empty.
func New(data table.Data, opts ...Option) (*State, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if data.Empty() {
		return nil, errors.EmptyTable()
	}

	s := &State{
		data:     data,
		vp:       viewport.New(DefaultViewportSize, data.Len()),
		tracking: TrackAutomatic(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.vp.SetTotal(data.Len())
	s.selectLocked(s.selected)
	return s, nil
}

func (s *State) keyOf(i int) string {
	if s.tracking.kind != trackKey || i < 0 || i >= s.data.Len() {
		return ""
	}
	return s.tracking.key(s.data.Rows[i])
}

// selectLocked clamps i, scrolls it into view and refreshes the key.
func (s *State) selectLocked(i int) {
	n := s.data.Len()
	if n == 0 {
		return
	}
	s.selected = max(0, min(i, n-1))
	s.vp.ScrollToShow(s.selected)
	s.key = s.keyOf(s.selected)
}

// MoveSelection moves the selection by delta rows, clamped to the table.
// It reports whether the selection changed.
func (s *State) MoveSelection(delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveLocked(s.selected + delta)
}

// MoveTo selects index, clamped to the table.
func (s *State) MoveTo(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveLocked(index)
}

// MoveToStart selects the first row.
func (s *State) MoveToStart() bool {
	return s.MoveTo(0)
}

// MoveToEnd selects the last row.
func (s *State) MoveToEnd() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveLocked(s.data.Len() - 1)
}

// PageBy moves by delta viewports.
func (s *State) PageBy(delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveLocked(s.selected + delta*s.vp.Size)
}

func (s *State) moveLocked(index int) bool {
	if s.stopped || s.data.Len() == 0 {
		return false
	}
	before := s.selected
	s.selectLocked(index)
	return s.selected != before
}

// Resize changes the number of visible rows, keeping the selection in
// view.
func (s *State) Resize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.SetSize(n)
	s.vp.ScrollToShow(s.selected)
}

// UpdateData replaces the table. Invalid or empty data is rejected with an
// InvalidTableData or EmptyTable error and the state is left untouched.
func (s *State) UpdateData(data table.Data) error {
	if err := data.Validate(); err != nil {
		return err
	}
	if data.Empty() {
		return errors.EmptyTable()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}

	target := s.selected
	if s.tracking.kind == trackKey {
		if idx := data.IndexOf(s.key, s.tracking.key); idx >= 0 {
			target = idx
		}
	}

	s.data = data
	s.vp.SetTotal(data.Len())
	s.selectLocked(target)
	return nil
}

// SelectCurrent stops the state with the current row as the result.
func (s *State) SelectCurrent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(false)
	return s.selected
}

// Cancel stops the state without a result.
func (s *State) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(true)
}

func (s *State) stopLocked(cancelled bool) {
	if s.stopped {
		return
	}
	s.stopped = true
	s.cancelled = cancelled
	close(s.done)
}

// Done is closed once SelectCurrent or Cancel has been called.
func (s *State) Done() <-chan struct{} {
	return s.done
}

// Stopped reports whether the state has been stopped.
func (s *State) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Result returns the selected index, or UserCancelled if the state was
// cancelled. Before the state stops it returns -1 and a nil error.
func (s *State) Result() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case !s.stopped:
		return -1, nil
	case s.cancelled:
		return -1, errors.UserCancelled()
	default:
		return s.selected, nil
	}
}

// Snapshot returns a consistent copy of the state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Data:     s.data,
		Selected: s.selected,
		Viewport: s.vp,
		Key:      s.key,
		Stopped:  s.stopped,
	}
}
