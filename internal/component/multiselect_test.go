package component

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/testutil"
)

func TestMultiSelectOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    MultiSelectOptions
		wantErr bool
	}{
		{"defaults", MultiSelectOptions{}, false},
		{"min and max", MultiSelectOptions{Min: 1, Max: 3}, false},
		{"min equals rows", MultiSelectOptions{Min: 5}, false},
		{"negative min", MultiSelectOptions{Min: -1}, true},
		{"negative max", MultiSelectOptions{Max: -1}, true},
		{"min above max", MultiSelectOptions{Min: 3, Max: 2}, true},
		{"min above rows", MultiSelectOptions{Min: 6}, true},
		{"too many checked", MultiSelectOptions{Max: 1, Checked: []int{0, 1}}, true},
		{"checked out of range", MultiSelectOptions{Checked: []int{5}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate(5)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errors.GetExitCode(err) != errors.ExitConfigError {
				t.Errorf("Validate() exit code = %d, want config error", errors.GetExitCode(err))
			}
		})
	}
}

func TestMultiSelect(t *testing.T) {
	tests := []struct {
		name   string
		bursts []string
		opts   MultiSelectOptions
		want   []int
	}{
		{"toggle two", []string{" ", keyDown, " ", keyReturn}, MultiSelectOptions{}, []int{0, 1}},
		{"toggle off", []string{"  ", keyDown, " ", keyReturn}, MultiSelectOptions{}, []int{1}},
		{"max enforced", []string{" ", keyDown, " ", keyDown, " ", keyReturn}, MultiSelectOptions{Max: 2}, []int{0, 1}},
		{"min enforced", []string{keyReturn, keyDown, keyDown, " ", keyReturn}, MultiSelectOptions{Min: 1}, []int{2}},
		{"all respects max", []string{"a", keyReturn}, MultiSelectOptions{Max: 3}, []int{0, 1, 2}},
		{"all then none", []string{"a", "a", keyReturn}, MultiSelectOptions{}, []int{}},
		{"preselected", []string{keyEnd, " ", keyReturn}, MultiSelectOptions{Checked: []int{2}}, []int{2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.bursts...)
			got, err := MultiSelect(context.Background(), h.env, testutil.Numbered(5), tt.opts)
			if err != nil {
				t.Fatalf("MultiSelect() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MultiSelect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMultiSelect_Messages(t *testing.T) {
	h := newHarness(t, keyReturn)
	h.keys.EOF = false

	done := make(chan []int, 1)
	go func() {
		got, _ := MultiSelect(context.Background(), h.env, testutil.Numbered(3), MultiSelectOptions{Min: 1, Max: 1})
		done <- got
	}()

	waitFor(t, h.out, "select at least 1 rows")
	if !strings.Contains(h.out.Text(), "0 selected (min 1, max 1)") {
		t.Errorf("footer missing limits:\n%s", h.out.Text())
	}

	h.keys.Push(" ")
	waitFor(t, h.out, "[x]")
	h.keys.Push(keyDown + " ")
	waitFor(t, h.out, "at most 1 rows can be selected")

	h.keys.Push(keyReturn)
	if got := <-done; !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("MultiSelect() = %v, want [0]", got)
	}
}

func TestMultiSelect_Errors(t *testing.T) {
	h := newHarness(t, keyEscape)
	_, err := MultiSelect(context.Background(), h.env, testutil.Numbered(3), MultiSelectOptions{})
	if !errors.IsUserCancelled(err) {
		t.Errorf("MultiSelect(escape) error = %v", err)
	}

	h = newHarness(t, keyReturn)
	_, err = MultiSelect(context.Background(), h.env, testutil.Numbered(3), MultiSelectOptions{Min: 4})
	if errors.GetExitCode(err) != errors.ExitConfigError {
		t.Errorf("MultiSelect(min 4 of 3) error = %v", err)
	}
	if h.out.Raw() != "" {
		t.Error("misconfigured MultiSelect should not draw")
	}

	h.env.Interactive = false
	_, err = MultiSelect(context.Background(), h.env, testutil.Numbered(3), MultiSelectOptions{})
	if !errors.Is(err, errors.ErrNonInteractive) {
		t.Errorf("MultiSelect(non-interactive) error = %v", err)
	}
}
