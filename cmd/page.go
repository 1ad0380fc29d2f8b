package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
)

var pageCmd = &cobra.Command{
	Use:   "page [file|-]",
	Short: "Page through a table",
	Long: `Shows a table one page at a time. Left/Right (or h/l) turn pages,
Home/End jump to the first or last page and q or Enter quits.

Without a terminal the whole table is printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPage,
}

var (
	pageData dataFlags
	pageSize int
)

func init() {
	pageData.register(pageCmd)
	pageCmd.Flags().IntVarP(&pageSize, "page-size", "n", 0, "Rows per page (default from config)")
	rootCmd.AddCommand(pageCmd)
}

func runPage(cmd *cobra.Command, args []string) error {
	data, src, err := pageData.load(cmd, args)
	if err != nil {
		return err
	}
	if src.Stdin {
		useTTY()
	}
	style, err := pageData.style()
	if err != nil {
		return err
	}

	err = component.Paginate(cmd.Context(), env(), data, component.PaginateOptions{
		Title:    pageData.title,
		PageSize: pageSize,
		Style:    style,
	})
	if errors.Is(err, errors.ErrNonInteractive) {
		logging.Debug("not interactive, printing the whole table")
		return component.Table(env(), data, component.TableOptions{Title: pageData.title, Style: style})
	}
	return err
}
