package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm <question>",
	Short: "Ask a yes/no question",
	Long: `Asks a yes/no question. Exits 0 for yes and 1 for no, so it fits in
shell conditions:

  if forage-ui confirm "Delete the cache?"; then rm -rf cache; fi`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConfirm,
}

var confirmDefault bool

// errDeclined is the silent exit status of a "no" answer.
var errDeclined = errors.New(errors.ExitGeneralError, "")

func init() {
	confirmCmd.Flags().BoolVar(&confirmDefault, "default", false, "Answer taken on Enter")
	rootCmd.AddCommand(confirmCmd)
}

func runConfirm(cmd *cobra.Command, args []string) error {
	yes, err := component.Confirm(cmd.Context(), env(), strings.Join(args, " "), component.ConfirmOptions{
		Default: confirmDefault,
	})
	if err != nil {
		return err
	}
	if !yes {
		return errDeclined
	}
	return nil
}
