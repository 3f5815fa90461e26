package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gocalc/internal/session"
)

var (
	diffOrder  int
	lowerBound string
	upperBound string
	limitPoint string
)

var diffCmd = &cobra.Command{
	Use:   "diff <expression>",
	Short: "Differentiate an expression",
	Long: `Returns the derivative of an expression.

Examples:
  calc diff "x^3 + sin(x)"
  calc diff --order 2 "x^3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return submit(cmd, session.Command{
			Mode:  session.ModeDifferentiate,
			Input: strings.Join(args, " "),
			Params: map[string]string{
				session.ParamVar:   variable,
				session.ParamOrder: strconv.Itoa(diffOrder),
			},
		})
	},
}

var integrateCmd = &cobra.Command{
	Use:   "integrate <expression>",
	Short: "Integrate an expression",
	Long: `Returns an antiderivative, or the definite integral when both limits
are given.

Examples:
  calc integrate "sin(x)"
  calc integrate --lower 0 --upper 3 "2*x"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return submit(cmd, session.Command{
			Mode:  session.ModeIntegrate,
			Input: strings.Join(args, " "),
			Params: map[string]string{
				session.ParamVar:   variable,
				session.ParamLower: lowerBound,
				session.ParamUpper: upperBound,
			},
		})
	},
}

var limitCmd = &cobra.Command{
	Use:   "limit <expression>",
	Short: "Limit of an expression",
	Long: `Returns the limit as the variable approaches a point. Use "oo" or
"-oo" for infinity.

Examples:
  calc limit --point 0 "sin(x)/x"
  calc limit --point oo "1/x"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return submit(cmd, session.Command{
			Mode:  session.ModeLimit,
			Input: strings.Join(args, " "),
			Params: map[string]string{
				session.ParamVar:   variable,
				session.ParamPoint: limitPoint,
			},
		})
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(integrateCmd)
	rootCmd.AddCommand(limitCmd)

	for _, c := range []*cobra.Command{diffCmd, integrateCmd, limitCmd} {
		c.Flags().StringVar(&variable, "var", "x", "variable")
	}
	diffCmd.Flags().IntVarP(&diffOrder, "order", "n", 1, "derivative order")
	integrateCmd.Flags().StringVar(&lowerBound, "lower", "", "lower limit")
	integrateCmd.Flags().StringVar(&upperBound, "upper", "", "upper limit")
	limitCmd.Flags().StringVarP(&limitPoint, "point", "p", "", "point to approach")
	_ = limitCmd.MarkFlagRequired("point")
}
