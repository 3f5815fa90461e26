package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gocalc/internal/session"
)

const maxLineBytes = 1 << 20 // 1 MiB

// batchRequest is one line of batch input.
type batchRequest struct {
	Mode   string            `json:"mode"`
	Input  string            `json:"input"`
	Params map[string]string `json:"params,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run JSON commands from stdin",
	Long: `Reads one JSON command per line from stdin and writes one JSON result
per line to stdout. All commands share one session, so history and
memory carry over between lines.

Example input:
  {"mode": "basic", "input": "6*7"}
  {"mode": "memory", "input": "add"}
  {"mode": "integrate", "input": "2*x", "params": {"lower": "0", "upper": "3"}}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBatch(cmd.InOrStdin(), cmd.OutOrStdout(), calc)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(r io.Reader, w io.Writer, s *session.Session) error {
	br := bufio.NewReaderSize(r, 64*1024)
	enc := json.NewEncoder(w)

	for line := 1; ; line++ {
		raw, tooLong, err := readLine(br)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		var out any
		switch text := strings.TrimSpace(string(raw)); {
		case tooLong:
			out = map[string]any{"line": line, "error": fmt.Sprintf("line exceeds %d bytes", maxLineBytes)}
		case text == "":
			continue
		default:
			out = batchLine(s, line, text)
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
}

// readLine returns the next line without its line ending. A line longer
// than maxLineBytes is still consumed to its end, but comes back empty with
// the bool set.
func readLine(br *bufio.Reader) ([]byte, bool, error) {
	var line []byte
	tooLong := false
	for {
		frag, isPrefix, err := br.ReadLine()
		if err != nil {
			return nil, false, err
		}
		if !tooLong {
			if len(line)+len(frag) > maxLineBytes {
				line, tooLong = nil, true
			} else {
				line = append(line, frag...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

func batchLine(s *session.Session, line int, text string) (out any) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("panic in batch line", "line", line, "panic", fmt.Sprint(rec), "stack", string(debug.Stack()))
			out = map[string]any{"line": line, "error": "internal error"}
		}
	}()

	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var req batchRequest
	if err := dec.Decode(&req); err != nil {
		return map[string]any{"line": line, "error": err.Error()}
	}
	// Ensure there's no trailing junk.
	if dec.More() {
		return map[string]any{"line": line, "error": "invalid JSON: trailing data"}
	}
	return s.Submit(session.Command{Mode: session.Mode(req.Mode), Input: req.Input, Params: req.Params})
}
