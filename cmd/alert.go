package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
)

var alertCmd = &cobra.Command{
	Use:   "alert <level> <message>...",
	Short: "Print status messages",
	Long: `Prints one line per message with the indicator of its level: info,
success, warning or error. Warnings and errors go to stderr.

With --group the messages are indented under a heading:

  forage-ui alert warning --group "Preflight" "disk 91% full" "swap off"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAlert,
}

var (
	alertGroup  string
	alertStrict bool
)

func init() {
	alertCmd.Flags().StringVarP(&alertGroup, "group", "g", "", "Heading to nest the messages under")
	alertCmd.Flags().BoolVar(&alertStrict, "strict", false, "Exit 1 when the level is error")
	rootCmd.AddCommand(alertCmd)
}

func runAlert(cmd *cobra.Command, args []string) error {
	level, err := component.ParseLevel(args[0])
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	alerts := make([]component.Alert, 0, len(args)-1)
	for _, text := range args[1:] {
		alerts = append(alerts, component.Message{Level: level, Text: text})
	}
	if alertGroup != "" {
		alerts = []component.Alert{component.NewGroup(alertGroup, alerts...)}
	}

	top, err := component.Alerts(env(), alerts...)
	if err != nil {
		return err
	}
	if alertStrict && top == component.LevelError {
		return errDeclined
	}
	return nil
}
