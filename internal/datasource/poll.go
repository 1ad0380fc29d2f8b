package datasource

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/live"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/system"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
)

// DefaultInterval is the poll interval used when none is given.
const DefaultInterval = 2 * time.Second

// Loader produces a fresh copy of the table.
type Loader func(ctx context.Context) (table.Data, error)

// FileLoader loads path on every call.
func FileLoader(path string) Loader {
	return func(context.Context) (table.Data, error) {
		return Load(path)
	}
}

// CommandLoader runs a command on every call and decodes its standard
// output.
func CommandLoader(format Format, name string, args ...string) Loader {
	return func(ctx context.Context) (table.Data, error) {
		out, err := system.DefaultExecutor().Execute(ctx, name, args...)
		if err != nil {
			return table.Data{}, errors.DataSourceError("exec",
				fmt.Errorf("%s: %w", system.QuoteCommand(name, args...), err))
		}
		return Decode(out, format)
	}
}

// Poller periodically reloads a table.
type Poller struct {
	interval time.Duration
	load     Loader
	initial  bool
	retries  int
}

// PollOption configures a Poller.
type PollOption func(*Poller)

// WithInitial delivers the first load immediately instead of after one
// interval.
func WithInitial(enabled bool) PollOption {
	return func(p *Poller) {
		p.initial = enabled
	}
}

// WithRetries tolerates up to n consecutive load failures before the
// stream is ended with an error.
func WithRetries(n int) PollOption {
	return func(p *Poller) {
		p.retries = n
	}
}

// NewPoller creates a Poller. A non-positive interval means DefaultInterval.
func NewPoller(interval time.Duration, load Loader, opts ...PollOption) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Poller{
		interval: interval,
		load:     load,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run starts the polling loop. It blocks until the context is cancelled or
// the loader has failed more than the allowed number of times in a row.
func (p *Poller) Run(ctx context.Context, out chan<- live.Update) error {
	logging.Debug("starting table poller", "interval", p.interval, "retries", p.retries)

	var last *table.Data
	failures := 0

	poll := func() error {
		d, err := p.load(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures++
			if failures > p.retries {
				err = errors.DataSourceError("poll", err)
				send(ctx, out, live.Update{Err: err})
				return err
			}
			logging.Warn("table poll failed, retrying", "error", err, "failures", failures)
			return nil
		}
		failures = 0
		if last != nil && reflect.DeepEqual(*last, d) {
			return nil
		}
		last = &d
		send(ctx, out, live.Update{Data: d})
		return nil
	}

	if p.initial {
		if err := poll(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Debug("table poller stopping")
			return nil
		case <-ticker.C:
			if err := poll(); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// Stream runs the poller in a goroutine. The channel is closed when it
// stops.
func (p *Poller) Stream(ctx context.Context) <-chan live.Update {
	out := make(chan live.Update)
	go func() {
		defer close(out)
		_ = p.Run(ctx, out)
	}()
	return out
}

func send(ctx context.Context, out chan<- live.Update, u live.Update) {
	select {
	case out <- u:
	case <-ctx.Done():
	}
}
