package live

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	uierrors "github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
)

func numbered(n int) table.Data {
	d := table.Data{Columns: []table.Column{table.Col("ID"), table.Col("Name")}}
	for i := 0; i < n; i++ {
		d.Rows = append(d.Rows, table.NewRow(fmt.Sprint(i), fmt.Sprintf("row %d", i)))
	}
	return d
}

func mustNew(t *testing.T, d table.Data, opts ...Option) *State {
	t.Helper()
	s, err := New(d, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestNew_Rejects(t *testing.T) {
	if _, err := New(numbered(0)); !errors.Is(err, uierrors.ErrEmptyTable) {
		t.Errorf("New(empty) error = %v, want EmptyTable", err)
	}

	bad := numbered(2)
	bad.Rows[1].Cells = bad.Rows[1].Cells[:1]
	if _, err := New(bad); !errors.Is(err, uierrors.ErrInvalidTableData) {
		t.Errorf("New(invalid) error = %v, want InvalidTableData", err)
	}
}

func TestState_Moves(t *testing.T) {
	s := mustNew(t, numbered(20), WithViewportSize(5))

	tests := []struct {
		name      string
		op        func() bool
		want      int
		wantStart int
	}{
		{"down", func() bool { return s.MoveSelection(1) }, 1, 0},
		{"clamp above", func() bool { return s.MoveSelection(-10) }, 0, 0},
		{"scroll down", func() bool { return s.MoveTo(7) }, 7, 3},
		{"end", s.MoveToEnd, 19, 15},
		{"clamp below", func() bool { return s.MoveSelection(5) }, 19, 15},
		{"page up", func() bool { return s.PageBy(-1) }, 14, 14},
		{"start", s.MoveToStart, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.op()
			snap := s.Snapshot()
			if snap.Selected != tt.want {
				t.Errorf("Selected = %d, want %d", snap.Selected, tt.want)
			}
			if snap.Viewport.Start != tt.wantStart {
				t.Errorf("Viewport.Start = %d, want %d", snap.Viewport.Start, tt.wantStart)
			}
			if !snap.Viewport.Visible(snap.Selected) {
				t.Error("selection should be visible")
			}
		})
	}
}

func TestState_MoveReportsChange(t *testing.T) {
	s := mustNew(t, numbered(3))

	if s.MoveSelection(-1) {
		t.Error("moving above the first row should report no change")
	}
	if !s.MoveSelection(1) {
		t.Error("moving down should report a change")
	}
}

func TestState_UpdateData_RowKeyFollowsReorder(t *testing.T) {
	d := numbered(5)
	s := mustNew(t, d, WithTracking(TrackRowKey(func(r table.Row) string { return r.Cells[1] })))
	s.MoveTo(3)

	reordered := table.Data{Columns: d.Columns}
	for i := len(d.Rows) - 1; i >= 0; i-- {
		reordered.Rows = append(reordered.Rows, d.Rows[i])
	}

	if err := s.UpdateData(reordered); err != nil {
		t.Fatalf("UpdateData() error = %v", err)
	}
	snap := s.Snapshot()
	if snap.Selected != 1 {
		t.Errorf("Selected = %d, want 1", snap.Selected)
	}
	if got := snap.Data.Rows[snap.Selected].Cells[1]; got != "row 3" {
		t.Errorf("selected row = %q, want %q", got, "row 3")
	}
	if snap.Key != "row 3" {
		t.Errorf("Key = %q, want %q", snap.Key, "row 3")
	}
}

func TestState_UpdateData_KeyMissingClamps(t *testing.T) {
	s := mustNew(t, numbered(10))
	s.MoveTo(8)

	if err := s.UpdateData(numbered(4)); err != nil {
		t.Fatalf("UpdateData() error = %v", err)
	}
	if got := s.Snapshot().Selected; got != 3 {
		t.Errorf("Selected = %d, want 3", got)
	}
}

func TestState_UpdateData_IndexTracking(t *testing.T) {
	d := numbered(5)
	s := mustNew(t, d, WithTracking(TrackIndex()))
	s.MoveTo(1)

	shifted := table.Data{Columns: d.Columns, Rows: append([]table.Row{table.NewRow("new", "row new")}, d.Rows...)}
	if err := s.UpdateData(shifted); err != nil {
		t.Fatalf("UpdateData() error = %v", err)
	}
	if got := s.Snapshot().Selected; got != 1 {
		t.Errorf("Selected = %d, want 1 (position kept)", got)
	}
}

func TestState_UpdateData_AutomaticUsesID(t *testing.T) {
	d := table.Data{
		Columns: []table.Column{table.Col("Name")},
		Rows: []table.Row{
			{ID: "a", Cells: []string{"same"}},
			{ID: "b", Cells: []string{"same"}},
		},
	}
	s := mustNew(t, d, WithSelected(1))

	swapped := table.Data{Columns: d.Columns, Rows: []table.Row{d.Rows[1], d.Rows[0]}}
	_ = s.UpdateData(swapped)

	if got := s.Snapshot().Selected; got != 0 {
		t.Errorf("Selected = %d, want 0", got)
	}
}

func TestState_UpdateData_RejectsAndKeepsState(t *testing.T) {
	s := mustNew(t, numbered(12), WithViewportSize(4))
	s.MoveTo(9)
	before := s.Snapshot()

	invalid := numbered(3)
	invalid.Rows[2].Cells = append(invalid.Rows[2].Cells, "extra")

	tests := []struct {
		name string
		data table.Data
		want error
	}{
		{"invalid", invalid, uierrors.ErrInvalidTableData},
		{"empty", numbered(0), uierrors.ErrEmptyTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.UpdateData(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("UpdateData() error = %v, want %v", err, tt.want)
			}
			after := s.Snapshot()
			if after.Selected != before.Selected || after.Viewport != before.Viewport || after.Data.Len() != before.Data.Len() {
				t.Errorf("state changed: before %+v after %+v", before.Viewport, after.Viewport)
			}
		})
	}
}

func TestState_SelectCurrent(t *testing.T) {
	s := mustNew(t, numbered(4))
	s.MoveTo(2)

	if idx, err := s.Result(); idx != -1 || err != nil {
		t.Errorf("Result() before stop = %d, %v", idx, err)
	}

	if got := s.SelectCurrent(); got != 2 {
		t.Errorf("SelectCurrent() = %d, want 2", got)
	}
	select {
	case <-s.Done():
	default:
		t.Fatal("Done() should be closed")
	}

	s.MoveTo(0)
	s.Cancel()
	idx, err := s.Result()
	if idx != 2 || err != nil {
		t.Errorf("Result() = %d, %v; want 2, nil", idx, err)
	}
}

func TestState_Cancel(t *testing.T) {
	s := mustNew(t, numbered(4))
	s.Cancel()
	s.Cancel()

	_, err := s.Result()
	if !uierrors.IsUserCancelled(err) {
		t.Errorf("Result() error = %v, want UserCancelled", err)
	}
	if !s.Stopped() || !s.Snapshot().Stopped {
		t.Error("state should be stopped")
	}
	if err := s.UpdateData(numbered(2)); err != nil {
		t.Errorf("UpdateData() after stop error = %v", err)
	}
	if s.Snapshot().Data.Len() != 4 {
		t.Error("updates after stop should be ignored")
	}
}

func TestSnapshot_Visible(t *testing.T) {
	s := mustNew(t, numbered(10), WithViewportSize(3), WithSelected(5))
	rows := s.Snapshot().Visible()

	if len(rows) != 3 || rows[2].Cells[0] != "5" {
		t.Errorf("Visible() = %v", rows)
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	s := mustNew(t, numbered(50), WithViewportSize(7))

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.MoveSelection(1 - 2*(i%2))
			s.PageBy(1)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = s.UpdateData(numbered(20 + i%40))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			snap := s.Snapshot()
			if snap.Selected < 0 || snap.Selected >= snap.Data.Len() {
				t.Errorf("selected %d out of range for %d rows", snap.Selected, snap.Data.Len())
				return
			}
			if !snap.Viewport.Visible(snap.Selected) {
				t.Errorf("selected %d outside viewport %+v", snap.Selected, snap.Viewport)
				return
			}
			if snap.Viewport.Total != snap.Data.Len() {
				t.Errorf("viewport total %d != rows %d", snap.Viewport.Total, snap.Data.Len())
				return
			}
		}
	}()
	wg.Wait()
}

func TestState_Resize(t *testing.T) {
	s := mustNew(t, numbered(20), WithViewportSize(10), WithSelected(15))

	s.Resize(3)
	snap := s.Snapshot()
	if snap.Viewport.Size != 3 || snap.Viewport.Start != 13 {
		t.Errorf("after Resize(3) viewport = %+v, want start 13 size 3", snap.Viewport)
	}
	if snap.Selected != 15 {
		t.Errorf("Resize moved the selection to %d", snap.Selected)
	}

	s.Resize(50)
	if got := s.Snapshot().Viewport.Start; got != 0 {
		t.Errorf("after Resize(50) start = %d, want 0", got)
	}
}
