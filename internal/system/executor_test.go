package system

import (
	"context"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{"make build", "make", []string{"build"}, false},
		{`sh -c "echo 'hi there'"`, "sh", []string{"-c", "echo 'hi there'"}, false},
		{"ls", "ls", []string{}, false},
		{"", "", nil, true},
		{`echo "unterminated`, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, args, err := SplitCommand(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if name != tt.wantName || !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("SplitCommand() = %q %q, want %q %q", name, args, tt.wantName, tt.wantArgs)
			}
		})
	}
}

func TestQuoteCommand(t *testing.T) {
	if got := QuoteCommand("echo", "hello world", "x"); got != `echo 'hello world' x` {
		t.Errorf("QuoteCommand() = %q", got)
	}
}

func TestOSExecutor_Stream(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}

	var lines []string
	err := DefaultExecutor().Stream(context.Background(), func(l string) {
		lines = append(lines, l)
	}, "sh", "-c", "echo first; echo second >&2; exit 3")

	if err == nil {
		t.Error("Stream should report the non-zero exit")
	}
	if want := []string{"first", "second"}; !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestOSExecutor_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}

	out, err := DefaultExecutor().Execute(context.Background(), "sh", "-c", "echo out; echo noise >&2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if string(out) != "out\n" {
		t.Errorf("Execute() = %q, want stdout only", out)
	}

	_, err = DefaultExecutor().Execute(context.Background(), "sh", "-c", "echo broken >&2; exit 2")
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Errorf("Execute() error = %v, want stderr in the message", err)
	}
}
