package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration in effect, defaults included, as TOML.
With --path only the location of the config file is printed.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configPathOnly bool

func init() {
	configCmd.Flags().BoolVar(&configPathOnly, "path", false, "Print the config file location only")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	c := cfg()
	if configPathOnly {
		path := c.Path
		if path == "" {
			path = config.DefaultPath()
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	}
	out := cmd.OutOrStdout()
	if c.Path == "" {
		fmt.Fprintln(out, "# no config file found, showing defaults")
	} else {
		fmt.Fprintf(out, "# %s\n", c.Path)
	}
	return toml.NewEncoder(out).Encode(c)
}
