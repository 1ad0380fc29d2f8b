package component

import (
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/render"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// TableOptions configures Table.
type TableOptions struct {
	Title string
	// Style overrides the configured table style.
	Style *table.Style
}

// Table prints data once as a bordered table. Invalid data prints nothing;
// the error is logged as a warning and returned.
func Table(env *Env, data table.Data, opts TableOptions) error {
	out, err := env.tableStyle(opts.Style).Render(data, env.width())
	if err != nil {
		logging.Warn("not rendering invalid table", "error", err)
		return err
	}
	if opts.Title != "" {
		out = env.theme().Title.Render(opts.Title) + "\n" + out
	}
	return render.NewAppend(env.Streams).Render(out, terminal.Primary)
}
