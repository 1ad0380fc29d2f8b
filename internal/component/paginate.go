package component

import (
	"context"
	"fmt"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/keys"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/viewport"
)

// PaginateOptions configures Paginate.
type PaginateOptions struct {
	Title string
	// PageSize is the number of rows per page. Zero uses the config.
	PageSize int
	// Style overrides the configured table style.
	Style *table.Style
}

const pageHelp = "←/→ page • home/end • q quit"

// Paginate shows data one page at a time. Left, Right, PageUp and PageDown
// turn pages, Home and End jump to the first and last page, and Return,
// Escape or q leave the current page on screen and return.
func Paginate(ctx context.Context, env *Env, data table.Data, opts PaginateOptions) error {
	if err := data.Validate(); err != nil {
		return err
	}

	size := opts.PageSize
	if size <= 0 {
		size = env.config().Table.PageSize
	}

	s, err := env.open("page")
	if err != nil {
		return err
	}
	defer s.close()

	ts := env.tableStyle(opts.Style)
	theme := env.theme()
	// Widths come from every row so columns stay put while paging.
	widths := ts.Layout(data, env.width())
	pages := viewport.PageCount(data.Len(), size)
	page := 0

	view := func() string {
		pd := table.Data{Columns: data.Columns, Rows: viewport.Page(data.Rows, page, size)}
		out := ts.RenderWindow(pd, widths, 0, pd.Len(), -1, nil)
		if opts.Title != "" {
			out = theme.Title.Render(opts.Title) + "\n" + out
		}
		return out + "\n" + theme.Dim.Render(fmt.Sprintf("Page %d/%d  %s", page+1, pages, pageHelp))
	}
	_ = s.r.Render(view(), terminal.Primary)

	err = s.listen(ctx, nil, func(k keys.KeyStroke) bool {
		next := page
		switch k.Kind {
		case keys.Left, keys.PageUp, keys.Up:
			next--
		case keys.Right, keys.PageDown, keys.Down:
			next++
		case keys.Home:
			next = 0
		case keys.End:
			next = pages - 1
		case keys.Return, keys.Escape:
			return false
		case keys.Printable:
			switch k.Char {
			case 'h', 'p':
				next--
			case 'l', 'n', ' ':
				next++
			case 'q':
				return false
			}
		}
		next = viewport.ClampPage(next, data.Len(), size)
		if next != page {
			page = next
			_ = s.r.Render(view(), terminal.Primary)
		}
		return true
	})
	if err != nil {
		_ = s.r.Commit()
		return err
	}
	return s.r.Commit()
}
