package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gocalc/internal/session"
	"github.com/njchilds90/gocalc/internal/units"
)

var (
	matrixOp string
	matrixB  string
	category string

	plotMin  float64
	plotMax  float64
	plotStep float64
)

var matrixCmd = &cobra.Command{
	Use:   "matrix <A>",
	Short: "Matrix operations",
	Long: `Applies an operation to matrix A, and to B for add, subtract and
multiply. Rows are separated by ';' or newlines, entries by ',' or spaces.

Operations: add, subtract, multiply, determinant, inverse, transpose, trace

Examples:
  calc matrix --op det "1,2;3,4"
  calc matrix --op multiply --b "5;6" "1,2;3,4"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return submit(cmd, session.Command{
			Mode:   session.ModeMatrix,
			Input:  strings.Join(args, " "),
			Params: map[string]string{session.ParamOp: matrixOp, session.ParamB: matrixB},
		})
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert between units",
	Long: `Converts a value between two units of one category.

Examples:
  calc convert 5 km mi
  calc convert --category temperature 100 c f`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return submit(cmd, session.Command{
			Mode:  session.ModeConvert,
			Input: args[0],
			Params: map[string]string{
				session.ParamCategory: category,
				session.ParamFrom:     args[1],
				session.ParamTo:       args[2],
			},
		})
	},
}

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the known units",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		for _, c := range units.Categories() {
			list, err := units.Units(c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s:\n", c)
			for _, u := range list {
				fmt.Fprintf(out, "  %-12s %s\n", u.Name, u.Symbol)
			}
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <numbers...>",
	Short: "Descriptive statistics",
	Long: `Summarizes a sample. Numbers may be separated by commas, semicolons
or spaces.

Examples:
  calc stats 1 2 3 4
  calc stats "2.5, 3.5; 7"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return submit(cmd, session.Command{Mode: session.ModeStatistics, Input: strings.Join(args, " ")})
	},
}

var plotCmd = &cobra.Command{
	Use:   "plot <expression>",
	Short: "Sample a function",
	Long: `Evaluates an expression over a range and prints one "x y" pair per
line. Points where the function is undefined are marked.

Examples:
  calc plot "sin(x)"
  calc plot --min 0 --max 4 --step 0.5 "sqrt(x)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]string{session.ParamVar: variable}
		for name, v := range map[string]float64{session.ParamMin: plotMin, session.ParamMax: plotMax, session.ParamStep: plotStep} {
			if cmd.Flags().Changed(name) {
				params[name] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		return submit(cmd, session.Command{Mode: session.ModePlot, Input: strings.Join(args, " "), Params: params})
	},
}

func init() {
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(plotCmd)

	matrixCmd.Flags().StringVar(&matrixOp, "op", "determinant", "operation")
	matrixCmd.Flags().StringVar(&matrixB, "b", "", "second matrix")

	convertCmd.Flags().StringVarP(&category, "category", "c", string(units.Length), "length, mass or temperature")

	plotCmd.Flags().StringVar(&variable, "var", "x", "variable")
	plotCmd.Flags().Float64Var(&plotMin, "min", -10, "range start, config value when unset")
	plotCmd.Flags().Float64Var(&plotMax, "max", 10, "range end, config value when unset")
	plotCmd.Flags().Float64Var(&plotStep, "step", 0.1, "sampling step, config value when unset")
}
