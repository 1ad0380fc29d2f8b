package terminal

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	signalOnce sync.Once

	activeMu sync.Mutex
	active   *Driver

	// exitFunc is swapped in tests.
	exitFunc = os.Exit
)

func setActive(d *Driver) {
	activeMu.Lock()
	defer activeMu.Unlock()
	active = d
}

func clearActive(d *Driver) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active == d {
		active = nil
	}
}

// Active returns the driver currently holding the terminal, if any.
func Active() *Driver {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

// InstallSignalRestore registers the process-wide handler for interrupt,
// terminate, quit and hangup. It is safe to call more than once; only the
// first call installs the handler.
//
// A SIGINT that arrives while a widget is blocked reading keys is handed to
// that reader as InterruptByte so the configured interrupt policy applies.
// Every other signal restores the cursor and input mode of the active driver
// and exits with 128+signal.
func InstallSignalRestore() {
	signalOnce.Do(func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
		go func() {
			for sig := range ch {
				handleSignal(sig)
			}
		}()
	})
}

func handleSignal(sig os.Signal) {
	d := Active()
	if sig == os.Interrupt && d != nil && d.Reading() {
		d.Interrupt()
		return
	}
	if d != nil {
		_ = d.Restore()
	}
	exitFunc(signalExitCode(sig))
}

func signalExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
