package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
)

var chooseCmd = &cobra.Command{
	Use:   "choose [file|-]",
	Short: "Pick several rows of a table",
	Long: `Shows a table with a checkbox per row and prints every checked row,
one per line. Space toggles a row, a toggles all rows and Enter confirms.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChoose,
}

var (
	chooseData    dataFlags
	chooseMin     int
	chooseMax     int
	chooseChecked []int
	choosePrint   string
)

func init() {
	chooseData.register(chooseCmd)
	chooseCmd.Flags().IntVar(&chooseMin, "min", 0, "Fewest rows that may be confirmed")
	chooseCmd.Flags().IntVar(&chooseMax, "max", 0, "Most rows that may be checked (0 for no limit)")
	chooseCmd.Flags().IntSliceVar(&chooseChecked, "checked", nil, "Rows checked at the start")
	chooseCmd.Flags().StringVarP(&choosePrint, "print", "p", "row", "What to print: row, index or key")
	rootCmd.AddCommand(chooseCmd)
}

func runChoose(cmd *cobra.Command, args []string) error {
	data, src, err := chooseData.load(cmd, args)
	if err != nil {
		return err
	}
	if src.Stdin {
		useTTY()
	}
	style, err := chooseData.style()
	if err != nil {
		return err
	}

	picked, err := component.MultiSelect(cmd.Context(), env(), data, component.MultiSelectOptions{
		Title:   chooseData.title,
		Min:     chooseMin,
		Max:     chooseMax,
		Checked: chooseChecked,
		Style:   style,
	})
	if err != nil {
		return err
	}

	for _, i := range picked {
		if err := printRow(cmd, choosePrint, i, data.Rows[i]); err != nil {
			return err
		}
	}
	return nil
}
