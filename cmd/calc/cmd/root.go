package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gocalc/internal/config"
	"github.com/njchilds90/gocalc/internal/logger"
	"github.com/njchilds90/gocalc/internal/session"
)

var (
	cfgFile      string
	outputFormat string
	logLevel     string
	showLaTeX    bool

	calc *session.Session
)

// errReported marks a failure whose description was already written.
var errReported = errors.New("calc: command failed")

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "Multi-mode calculator",
	Long: `calc evaluates arithmetic and symbolic expressions, converts units,
summarizes samples and works with small matrices.

Modes:
  eval       - arithmetic (basic or scientific namespace) and simplification
  solve      - solve an equation for one variable
  diff       - symbolic derivative
  integrate  - antiderivative or definite integral
  limit      - limit at a point or at infinity
  matrix     - determinant, inverse, products and more
  convert    - length, mass and temperature units
  stats      - descriptive statistics
  plot       - sample a function over a range
  repl       - interactive session
  batch      - JSON commands on stdin`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	rootCmd.PersistentFlags().BoolVar(&showLaTeX, "latex", false, "print symbolic results as LaTeX")
}

// setup loads configuration and builds the session shared by every
// subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	switch outputFormat = strings.ToLower(outputFormat); outputFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = strings.ToLower(logLevel)
	}
	log, err := logger.Setup(cfg.Log)
	if err != nil {
		return err
	}
	calc = session.New(session.WithConfig(cfg), session.WithLogger(log))
	log.Debug("session started", "session_id", calc.ID(), "config", cfgFile)
	return nil
}

// submit runs one command through the session and prints the result.
func submit(cmd *cobra.Command, c session.Command) error {
	res := calc.Submit(c)
	if !res.OK() && outputFormat == "text" {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", res.Error)
		return errReported
	}
	if err := writeResult(cmd.OutOrStdout(), res, outputFormat); err != nil {
		return err
	}
	if !res.OK() {
		return errReported
	}
	return nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
