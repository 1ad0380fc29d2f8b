package live

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
)

func TestConsume_AppliesUpdates(t *testing.T) {
	logging.Discard()
	s := mustNew(t, numbered(2))

	updates := make(chan Update, 3)
	updates <- Update{Data: numbered(5)}
	updates <- Update{Data: numbered(0)}
	updates <- Update{Data: numbered(7)}
	close(updates)

	var changes atomic.Int32
	err := Consume(context.Background(), s, updates, func() { changes.Add(1) })
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if got := s.Snapshot().Data.Len(); got != 7 {
		t.Errorf("rows = %d, want 7", got)
	}
	if changes.Load() != 2 {
		t.Errorf("onChange called %d times, want 2", changes.Load())
	}
}

func TestConsume_StreamErrorAbandons(t *testing.T) {
	logging.Discard()
	s := mustNew(t, numbered(3))

	boom := errors.New("source went away")
	updates := make(chan Update, 2)
	updates <- Update{Err: boom}
	updates <- Update{Data: numbered(9)}

	if err := Consume(context.Background(), s, updates, nil); !errors.Is(err, boom) {
		t.Errorf("Consume() error = %v, want %v", err, boom)
	}
	if got := s.Snapshot().Data.Len(); got != 3 {
		t.Errorf("rows = %d, want last valid 3", got)
	}
}

func TestConsume_StopsWithState(t *testing.T) {
	s := mustNew(t, numbered(3))
	updates := make(chan Update)

	done := make(chan error, 1)
	go func() {
		done <- Consume(context.Background(), s, updates, nil)
	}()

	s.SelectCurrent()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Consume() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Consume did not stop with the state")
	}
}

func TestConsume_StopsWithContext(t *testing.T) {
	s := mustNew(t, numbered(3))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Consume(ctx, s, make(chan Update), nil)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Consume did not stop with the context")
	}
}
