package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gocalc/internal/session"
)

var evalMode string

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression",
	Long: `Evaluates an arithmetic expression. The basic mode knows + - * / and
sqrt; the scientific mode adds ^, trigonometric, logarithmic and rounding
functions and the constants pi, e and tau. The symbolic mode simplifies
exactly and keeps free variables.

Examples:
  calc eval "2 + 2"
  calc eval --mode scientific "sin(pi/2) + 2^10"
  calc eval --mode symbolic "(x+1)^2 - x^2"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return submit(cmd, session.Command{
			Mode:  session.Mode(evalMode),
			Input: strings.Join(args, " "),
		})
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve <equation>",
	Short: "Solve an equation for one variable",
	Long: `Solves "lhs = rhs" for a variable and lists the real solutions.

Examples:
  calc solve "x^2 = 4"
  calc solve --var t "2*t + 1 = 0"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return submit(cmd, session.Command{
			Mode:   session.ModeSolve,
			Input:  strings.Join(args, " "),
			Params: map[string]string{session.ParamVar: variable},
		})
	},
}

var variable string

func init() {
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(solveCmd)

	evalCmd.Flags().StringVarP(&evalMode, "mode", "m", string(session.ModeBasic), "basic, scientific or symbolic")
	solveCmd.Flags().StringVar(&variable, "var", "x", "variable to solve for")
}
