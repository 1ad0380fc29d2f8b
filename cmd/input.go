package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
)

var inputCmd = &cobra.Command{
	Use:   "input [prompt]",
	Short: "Read a line of text",
	Long:  `Reads one line of text and prints it. Esc cancels with exit code 130.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInput,
}

var (
	inputDefault     string
	inputPlaceholder string
	inputPassword    bool
	inputLimit       int
	inputPattern     string
	inputRequired    bool
)

func init() {
	inputCmd.Flags().StringVar(&inputDefault, "default", "", "Value returned when the entry is left empty")
	inputCmd.Flags().StringVar(&inputPlaceholder, "placeholder", "", "Hint shown while the entry is empty")
	inputCmd.Flags().BoolVar(&inputPassword, "password", false, "Mask the typed characters")
	inputCmd.Flags().IntVar(&inputLimit, "limit", 0, "Maximum number of characters")
	inputCmd.Flags().StringVar(&inputPattern, "pattern", "", "Regular expression the value must match")
	inputCmd.Flags().BoolVar(&inputRequired, "required", false, "Reject an empty value")
	rootCmd.AddCommand(inputCmd)
}

// inputValidator builds the check run on Enter from --pattern and
// --required.
func inputValidator(pattern string, required bool) (func(string) error, error) {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("invalid --pattern: %v", err))
		}
	}
	if re == nil && !required {
		return nil, nil
	}
	return func(v string) error {
		if v == "" {
			if required {
				return fmt.Errorf("a value is required")
			}
			return nil
		}
		if re != nil && !re.MatchString(v) {
			return fmt.Errorf("must match %s", pattern)
		}
		return nil
	}, nil
}

func runInput(cmd *cobra.Command, args []string) error {
	prompt := "›"
	if len(args) > 0 {
		prompt = args[0]
	}
	validate, err := inputValidator(inputPattern, inputRequired)
	if err != nil {
		return err
	}

	opts := component.InputOptions{
		Default:     inputDefault,
		Placeholder: inputPlaceholder,
		Limit:       inputLimit,
		Validate:    validate,
	}
	if inputPassword {
		opts.Mask = '•'
	}

	value, err := component.Input(cmd.Context(), env(), prompt, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
	return err
}
