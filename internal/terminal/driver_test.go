package terminal

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"
)

func newPipeDriver(t *testing.T) (*Driver, *os.File, *bytes.Buffer) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe() error = %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	var out bytes.Buffer
	return NewDriver(r, &out), w, &out
}

func TestDriver_Cursor(t *testing.T) {
	var out bytes.Buffer
	d := NewDriver(nil, &out)

	if err := d.HideCursor(); err != nil {
		t.Fatalf("HideCursor() error = %v", err)
	}
	if err := d.HideCursor(); err != nil {
		t.Fatalf("HideCursor() error = %v", err)
	}
	if !d.CursorHidden() {
		t.Error("CursorHidden() should be true after HideCursor")
	}
	if err := d.ShowCursor(); err != nil {
		t.Fatalf("ShowCursor() error = %v", err)
	}

	if got, want := out.String(), seqHideCursor+seqShowCursor; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDriver_RestoreIdempotent(t *testing.T) {
	var out bytes.Buffer
	d := NewDriver(nil, &out)

	_ = d.HideCursor()
	for i := 0; i < 3; i++ {
		if err := d.Restore(); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
	}
	if got := strings.Count(out.String(), seqShowCursor); got != 1 {
		t.Errorf("show cursor written %d times, want 1", got)
	}
}

func TestDriver_EnableRawModeRejectsPipe(t *testing.T) {
	d, _, _ := newPipeDriver(t)

	if err := d.EnableRawMode(); err == nil {
		t.Fatal("EnableRawMode() should fail on a pipe")
	}
	if d.RawMode() {
		t.Error("RawMode() should be false after a failed enable")
	}
	if err := d.RestoreMode(); err != nil {
		t.Errorf("RestoreMode() without raw mode error = %v", err)
	}
}

func TestDriver_AcquireFailureLeavesCursorVisible(t *testing.T) {
	d, _, out := newPipeDriver(t)

	if _, err := d.Acquire(); err == nil {
		t.Fatal("Acquire() should fail on a pipe")
	}
	if d.CursorHidden() {
		t.Error("cursor should stay visible after failed Acquire")
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
	if Active() == d {
		t.Error("failed Acquire should not register the driver")
	}
}

func TestDriver_AcquireCursor(t *testing.T) {
	var out bytes.Buffer
	d := NewDriver(nil, &out)

	release, err := d.AcquireCursor()
	if err != nil {
		t.Fatalf("AcquireCursor() error = %v", err)
	}
	if Active() != d {
		t.Error("AcquireCursor should register the driver")
	}

	_ = release()
	_ = release()

	if Active() != nil {
		t.Error("release should unregister the driver")
	}
	if got, want := out.String(), seqHideCursor+seqShowCursor; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDriver_ReadByte(t *testing.T) {
	d, w, _ := newPipeDriver(t)

	if _, err := w.Write([]byte("ab")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	for _, want := range []byte("ab") {
		got, err := d.ReadByte(nil)
		if err != nil {
			t.Fatalf("ReadByte() error = %v", err)
		}
		if got != want {
			t.Errorf("ReadByte() = %q, want %q", got, want)
		}
	}
}

func TestDriver_ReadByteStop(t *testing.T) {
	d, _, _ := newPipeDriver(t)

	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := d.ReadByte(stop)
		done <- err
	}()

	close(stop)
	select {
	case err := <-done:
		if !errors.Is(err, ErrStopped) {
			t.Errorf("ReadByte() error = %v, want ErrStopped", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ReadByte did not observe stop")
	}
}

func TestDriver_ReadByteInterrupt(t *testing.T) {
	d, _, _ := newPipeDriver(t)

	d.Interrupt()
	d.Interrupt()

	b, err := d.ReadByte(nil)
	if err != nil {
		t.Fatalf("ReadByte() error = %v", err)
	}
	if b != InterruptByte {
		t.Errorf("ReadByte() = %#x, want %#x", b, InterruptByte)
	}
}

func TestDriver_ReadByteTimeout(t *testing.T) {
	d, w, _ := newPipeDriver(t)

	_, ok, err := d.ReadByteTimeout(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("ReadByteTimeout() error = %v", err)
	}
	if ok {
		t.Error("ReadByteTimeout() should time out on an empty pipe")
	}

	_, _ = w.Write([]byte{'['})
	b, ok, err := d.ReadByteTimeout(time.Second)
	if err != nil || !ok || b != '[' {
		t.Errorf("ReadByteTimeout() = %q, %v, %v; want '[', true, nil", b, ok, err)
	}
}

func TestDriver_SizeFallback(t *testing.T) {
	d := NewDriver(nil, &bytes.Buffer{})

	if _, _, ok := d.Size(); ok {
		t.Error("Size() should not succeed without a terminal")
	}
	if d.Width() != DefaultWidth {
		t.Errorf("Width() = %d, want %d", d.Width(), DefaultWidth)
	}
	if d.Height() != DefaultHeight {
		t.Errorf("Height() = %d, want %d", d.Height(), DefaultHeight)
	}
}

func TestHandleSignal(t *testing.T) {
	origExit := exitFunc
	defer func() { exitFunc = origExit }()

	var exitCode int
	exitFunc = func(code int) { exitCode = code }

	t.Run("terminate restores and exits", func(t *testing.T) {
		var out bytes.Buffer
		d := NewDriver(nil, &out)
		release, _ := d.AcquireCursor()
		defer release()

		exitCode = -1
		handleSignal(syscall.SIGTERM)

		if exitCode != 128+int(syscall.SIGTERM) {
			t.Errorf("exit code = %d, want %d", exitCode, 128+int(syscall.SIGTERM))
		}
		if d.CursorHidden() {
			t.Error("cursor should be restored before exit")
		}
	})

	t.Run("interrupt goes to active reader", func(t *testing.T) {
		d := NewDriver(nil, &bytes.Buffer{})
		release, _ := d.AcquireCursor()
		defer release()

		d.readers.Add(1)
		defer d.readers.Add(-1)

		exitCode = -1
		handleSignal(os.Interrupt)

		if exitCode != -1 {
			t.Errorf("exit should not be called, got %d", exitCode)
		}
		select {
		case <-d.interrupts:
		default:
			t.Error("interrupt should be queued for the reader")
		}
	})

	t.Run("interrupt without reader exits 130", func(t *testing.T) {
		exitCode = -1
		handleSignal(os.Interrupt)
		if exitCode != 130 {
			t.Errorf("exit code = %d, want 130", exitCode)
		}
	})
}
