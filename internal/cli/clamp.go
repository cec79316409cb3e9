package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formpreview/pkg/validation"
)

func newClampCmd(a *app) *cobra.Command {
	var min, max float64
	cmd := &cobra.Command{
		Use:     "clamp <value>",
		Short:   "Snap a number into [min, max] the way a range input does",
		Example: "  formpreview clamp --min 1 --max 10 42\n  formpreview clamp --min -5 --max 5 -- -9",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("min") {
				min = a.settings.RangeMin
			}
			if !cmd.Flags().Changed("max") {
				max = a.settings.RangeMax
			}
			field := validation.NewRangeField(min, max)
			fmt.Fprintln(cmd.OutOrStdout(), field.Input(args[0]))
			return nil
		},
	}
	cmd.Flags().Float64Var(&min, "min", 0, "lower bound (default range.min)")
	cmd.Flags().Float64Var(&max, "max", 0, "upper bound (default range.max)")
	return cmd
}
