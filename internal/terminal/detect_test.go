package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestIsInteractive(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"buffer is never interactive", nil, false},
		{"override wins", map[string]string{EnvNonInteractive: "1"}, false},
		{"dumb terminal", map[string]string{"TERM": "dumb"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInteractive(&buf, MapEnv(tt.env)); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("IsTerminal() should be false for a regular file")
	}
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal() should be false for a writer without Fd")
	}
}

func TestShouldColor(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"piped output", nil, false},
		{"force color", map[string]string{EnvForceColor: "1"}, true},
		{"force color zero", map[string]string{EnvForceColor: "0"}, false},
		{"no color beats force", map[string]string{EnvNoColor: "1", EnvForceColor: "1"}, false},
		{"empty no color ignored", map[string]string{EnvNoColor: "", EnvForceColor: "1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldColor(&buf, MapEnv(tt.env)); got != tt.want {
				t.Errorf("ShouldColor() = %v, want %v", got, tt.want)
			}
		})
	}
}
