package live

import (
	"context"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
)

// Update is one item of a background data stream. A non-nil Err ends the
// stream.
type Update struct {
	Data table.Data
	Err  error
}

// Consume applies updates to s until the stream closes, s stops or ctx
// ends. onChange, if set, runs after every applied update.
//
// Invalid or empty updates are logged and skipped. A stream error is
// logged, the stream is abandoned, and the error is returned; s keeps its
// last valid data.
func Consume(ctx context.Context, s *State, updates <-chan Update, onChange func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.Done():
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			if u.Err != nil {
				logging.Warn("table data stream failed, keeping last data", "error", u.Err)
				return u.Err
			}
			if err := s.UpdateData(u.Data); err != nil {
				logging.Warn("ignoring table update", "error", err, "rows", u.Data.Len())
				continue
			}
			if onChange != nil && !s.Stopped() {
				onChange()
			}
		}
	}
}
