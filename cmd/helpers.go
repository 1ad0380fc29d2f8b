package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/datasource"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/live"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/system"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
)

// env returns the widget environment of the default app.
func env() *component.Env {
	return app.Default.Env()
}

// cfg returns the loaded configuration.
func cfg() *config.Config {
	return app.Default.Config
}

// dataFlags are the flags shared by every command that shows a table.
type dataFlags struct {
	format string
	name   string
	title  string
	border string
	exec   string
}

func (f *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Data format: json, toml or yaml (default from the file extension, json for stdin)")
	cmd.Flags().StringVarP(&f.name, "data", "d", "", "Named data set under data_dir")
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Title shown above the table")
	cmd.Flags().StringVar(&f.border, "border", "", "Border style: rounded, square, double or ascii")
	cmd.Flags().StringVar(&f.exec, "exec", "", "Command whose output is the table (json unless --format says otherwise)")
}

// tableSource says where a table comes from. Path is empty for stdin and
// commands.
type tableSource struct {
	Path    string
	Format  datasource.Format
	Stdin   bool
	Command []string
}

// source resolves the positional argument and flags to a table source.
func (f *dataFlags) source(args []string) (tableSource, error) {
	var src tableSource

	switch {
	case f.exec != "":
		if f.name != "" || len(args) > 0 {
			return src, errors.ValidationError("--exec cannot be combined with --data or a file argument")
		}
		name, argv, err := system.SplitCommand(f.exec)
		if err != nil {
			return src, errors.ValidationError(fmt.Sprintf("invalid --exec: %v", err))
		}
		src.Command = append([]string{name}, argv...)
		src.Format = datasource.JSON
	case f.name != "":
		if len(args) > 0 {
			return src, errors.ValidationError("--data cannot be combined with a file argument")
		}
		path, err := cfg().ResolveData(f.name)
		if err != nil {
			return src, errors.ConfigError(fmt.Sprintf("failed to resolve data set %q", f.name), err)
		}
		if !system.DefaultFS().Exists(path) {
			return src, errors.ConfigError(fmt.Sprintf("data set %q not found", f.name), fmt.Errorf("%s does not exist", path))
		}
		src.Path = path
	case len(args) == 0 || args[0] == "-":
		src.Stdin = true
		src.Format = datasource.JSON
	default:
		src.Path = args[0]
	}

	if f.format != "" {
		format, err := datasource.ParseFormat(f.format)
		if err != nil {
			return src, errors.ValidationError(err.Error())
		}
		src.Format = format
	} else if !src.Stdin && src.Command == nil {
		format, err := datasource.FormatOf(src.Path)
		if err != nil {
			return src, errors.ValidationError(err.Error())
		}
		src.Format = format
	}
	return src, nil
}

// load reads the table described by args and flags.
func (f *dataFlags) load(cmd *cobra.Command, args []string) (table.Data, tableSource, error) {
	src, err := f.source(args)
	if err != nil {
		return table.Data{}, src, err
	}
	logging.Debug("loading table", "path", src.Path, "format", src.Format, "stdin", src.Stdin, "command", src.Command)

	var data table.Data
	if src.Stdin {
		data, err = datasource.Read(cmd.InOrStdin(), src.Format)
	} else {
		data, err = src.loader()(cmd.Context())
	}
	return data, src, err
}

// style returns the --border override, or nil to use the configured style.
func (f *dataFlags) style() (*table.Style, error) {
	if f.border == "" {
		return nil, nil
	}
	g, err := table.ParseBorder(f.border)
	if err != nil {
		return nil, errors.ValidationError(err.Error())
	}
	s := cfg().TableStyle()
	s.Glyphs = g
	return &s, nil
}

// loader reloads src for the poller.
func (s tableSource) loader() datasource.Loader {
	if s.Command != nil {
		return datasource.CommandLoader(s.Format, s.Command[0], s.Command[1:]...)
	}
	return func(context.Context) (table.Data, error) {
		return datasource.LoadAs(s.Path, s.Format)
	}
}

// updates starts the producer chosen by --watch or --poll. It returns nil
// when neither is set.
func (s tableSource) updates(ctx context.Context, watch bool, poll time.Duration) (<-chan live.Update, error) {
	if !watch && poll <= 0 {
		return nil, nil
	}
	if s.Stdin {
		return nil, errors.ValidationError("--watch and --poll need a file, not stdin")
	}
	if watch && s.Command != nil {
		return nil, errors.ValidationError("--exec can be polled but not watched")
	}
	if watch {
		w, err := datasource.NewWatcher(s.Path, datasource.WithFormat(s.Format))
		if err != nil {
			return nil, err
		}
		return w.Stream(ctx), nil
	}
	return datasource.NewPoller(poll, s.loader()).Stream(ctx), nil
}

// useTTY points key input at the controlling terminal. It is needed when
// the table itself arrived on stdin.
func useTTY() {
	tty, err := os.Open("/dev/tty")
	if err != nil {
		logging.Debug("no controlling terminal", "error", err)
		return
	}
	a := app.Default
	s := a.Streams
	s.In = tty
	app.SetDefault(newApp(app.WithConfig(a.Config), app.WithStreams(s)))
}

// parseTracking parses --track: "key" follows row IDs, "index" keeps the
// position, and "column:<title>" follows the value of a column.
func parseTracking(s string, data table.Data) (live.Tracking, error) {
	switch {
	case s == "" || s == "key":
		return live.TrackAutomatic(), nil
	case s == "index":
		return live.TrackIndex(), nil
	case strings.HasPrefix(s, "column:"):
		title := strings.TrimPrefix(s, "column:")
		for i, c := range data.Columns {
			if strings.EqualFold(c.Title, title) {
				return live.TrackRowKey(func(r table.Row) string {
					if i < len(r.Cells) {
						return r.Cells[i]
					}
					return ""
				}), nil
			}
		}
		return live.Tracking{}, errors.ValidationError(fmt.Sprintf("unknown column %q", title))
	default:
		return live.Tracking{}, errors.ValidationError(fmt.Sprintf("unknown tracking %q (want key, index or column:<title>)", s))
	}
}

// printRow writes a chosen row as requested by --print.
func printRow(cmd *cobra.Command, mode string, index int, row table.Row) error {
	out := cmd.OutOrStdout()
	switch mode {
	case "", "row":
		_, err := fmt.Fprintln(out, strings.Join(row.Cells, "\t"))
		return err
	case "index":
		_, err := fmt.Fprintln(out, strconv.Itoa(index))
		return err
	case "key":
		_, err := fmt.Fprintln(out, row.Key())
		return err
	default:
		return errors.ValidationError(fmt.Sprintf("unknown print mode %q (want row, index or key)", mode))
	}
}
