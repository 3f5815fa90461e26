package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/gocalc/internal/history"
	"github.com/njchilds90/gocalc/internal/session"
)

func writeResult(w io.Writer, res session.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	}
	_, err := io.WriteString(w, resultText(res))
	return err
}

func formatNumber(v float64) string {
	if calc != nil {
		return calc.FormatNumber(v)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// resultText renders a result for a terminal, one value per line.
func resultText(res session.Result) string {
	if !res.OK() {
		return "error: " + res.Error + "\n"
	}
	var b strings.Builder
	switch {
	case res.Summary != nil:
		s := res.Summary
		fmt.Fprintf(&b, "count:    %d\n", s.Count)
		fmt.Fprintf(&b, "mean:     %s\n", formatNumber(s.Mean))
		fmt.Fprintf(&b, "median:   %s\n", formatNumber(s.Median))
		fmt.Fprintf(&b, "stdev:    %s\n", formatNumber(s.StdDev))
		fmt.Fprintf(&b, "variance: %s\n", formatNumber(s.Variance))
		fmt.Fprintf(&b, "min:      %s\n", formatNumber(s.Min))
		fmt.Fprintf(&b, "max:      %s\n", formatNumber(s.Max))
		fmt.Fprintf(&b, "sum:      %s\n", formatNumber(s.Sum))
	case res.Points != nil:
		for _, p := range res.Points {
			y := "undefined"
			if p.Valid {
				y = formatNumber(p.Y)
			}
			fmt.Fprintf(&b, "%s\t%s\n", formatNumber(p.X), y)
		}
	case res.Matrix != nil && !res.Matrix.IsScalar():
		for _, row := range res.Matrix.Rows {
			b.WriteString("[" + strings.Join(row, ", ") + "]\n")
		}
	case showLaTeX && res.LaTeX != "":
		b.WriteString(res.LaTeX + "\n")
	default:
		b.WriteString(res.Text + "\n")
	}
	return b.String()
}

func writeHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "(no history)")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%3d  %-13s %s = %s\n", e.Seq, e.Mode, e.Expression, e.Result)
	}
}
