package cmd

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gocalc/internal/session"
)

const replHelp = `Enter an expression to evaluate it in the current mode. Prefix a line
with a mode to use it once, and add parameters after " | ":

  scientific: sin(pi/2)
  solve: x^2 = 4
  integrate: 2*x | lower=0 upper=3
  convert: 5 | category=length from=km to=mi

Commands:
  :mode [name]     show or change the current mode
  :history [n]     show recent history
  :clear           clear history
  :m+ [value]      add to memory (last result when no value)
  :m- [value]      subtract from memory
  :mr              recall memory
  :mc              clear memory
  :help            this text
  :quit            leave
`

var replMode string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive calculator",
	Long:  "Starts an interactive session that keeps history and memory.\n\n" + replHelp,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		mode := session.Mode(strings.ToLower(replMode))
		if !slices.Contains(session.Modes(), mode) {
			return fmt.Errorf("unknown mode %q", replMode)
		}
		return runRepl(cmd.InOrStdin(), cmd.OutOrStdout(), calc, mode, outputFormat)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVarP(&replMode, "mode", "m", string(session.ModeScientific), "initial mode")
}

func runRepl(in io.Reader, out io.Writer, s *session.Session, mode session.Mode, format string) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", mode)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			if err := writeResult(out, s.Submit(parseLine(line, mode)), format); err != nil {
				return err
			}
			continue
		}

		fields := strings.Fields(line)
		arg := ""
		if len(fields) > 1 {
			arg = fields[1]
		}
		switch fields[0] {
		case ":q", ":quit", ":exit":
			return nil
		case ":help", ":h":
			fmt.Fprint(out, replHelp)
		case ":mode":
			if arg == "" {
				fmt.Fprintf(out, "mode: %s\n", mode)
				continue
			}
			m := session.Mode(strings.ToLower(arg))
			if !slices.Contains(session.Modes(), m) {
				fmt.Fprintf(out, "error: unknown mode %q\n", arg)
				continue
			}
			mode = m
		case ":history":
			entries := s.HistoryTail()
			if arg != "" {
				n, err := strconv.Atoi(arg)
				if err != nil {
					fmt.Fprintf(out, "error: %q is not a count\n", arg)
					continue
				}
				entries = s.RecentHistory(n)
			}
			writeHistory(out, entries)
		case ":clear":
			s.ClearHistory()
		case ":m+", ":m-", ":mc", ":mr":
			params := map[string]string{}
			if arg != "" {
				params[session.ParamValue] = arg
			}
			res := s.Submit(session.Command{Mode: session.ModeMemory, Input: strings.TrimPrefix(fields[0], ":"), Params: params})
			if err := writeResult(out, res, format); err != nil {
				return err
			}
		default:
			fmt.Fprintf(out, "error: unknown command %s (try :help)\n", fields[0])
		}
	}
}

// parseLine turns "[mode:] input [| key=value ...]" into a command.
func parseLine(line string, mode session.Mode) session.Command {
	if prefix, rest, ok := strings.Cut(line, ":"); ok {
		m := session.Mode(strings.ToLower(strings.TrimSpace(prefix)))
		if slices.Contains(session.Modes(), m) {
			mode, line = m, rest
		}
	}
	c := session.Command{Mode: mode, Params: map[string]string{}}
	input, params, _ := strings.Cut(line, "|")
	c.Input = strings.TrimSpace(input)
	for _, kv := range strings.Fields(params) {
		k, v, _ := strings.Cut(kv, "=")
		c.Params[strings.ToLower(k)] = v
	}
	return c
}
