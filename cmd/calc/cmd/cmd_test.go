package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc/internal/session"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line   string
		mode   session.Mode
		want   session.Mode
		input  string
		params map[string]string
	}{
		{"sin(x)", session.ModeScientific, session.ModeScientific, "sin(x)", map[string]string{}},
		{"solve: x^2 = 4", session.ModeBasic, session.ModeSolve, "x^2 = 4", map[string]string{}},
		{"Integrate: 2*x | lower=0 upper=3", session.ModeBasic, session.ModeIntegrate, "2*x",
			map[string]string{"lower": "0", "upper": "3"}},
		{"foo: 1", session.ModeBasic, session.ModeBasic, "foo: 1", map[string]string{}},
	}
	for _, tc := range tests {
		got := parseLine(tc.line, tc.mode)
		assert.Equal(t, tc.want, got.Mode, tc.line)
		assert.Equal(t, tc.input, got.Input, tc.line)
		assert.Equal(t, tc.params, got.Params, tc.line)
	}
}

func TestRunRepl(t *testing.T) {
	in := strings.NewReader("2+2\n:mode basic\n1/0\n:m+ 5\n:mr\n:history\n:mode graph\n:quit\n3+3\n")
	var out bytes.Buffer

	s := session.New()
	require.NoError(t, runRepl(in, &out, s, session.ModeScientific, "text"))

	text := out.String()
	assert.Contains(t, text, "scientific> 4\n")
	assert.Contains(t, text, "basic> error: division by zero\n")
	assert.Contains(t, text, "2+2 = 4")
	assert.Contains(t, text, `error: unknown mode "graph"`)
	assert.NotContains(t, text, "6\n", "input after :quit is not read")
	assert.Equal(t, 5.0, s.MemoryRecall())
	assert.Len(t, s.RecentHistory(10), 1)
}

func TestRunRepl_EOF(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runRepl(strings.NewReader("1+1"), &out, session.New(), session.ModeBasic, "text"))
	assert.Contains(t, out.String(), "basic> 2\n")
}

func TestRunBatch(t *testing.T) {
	in := strings.Join([]string{
		`{"mode": "basic", "input": "6*7"}`,
		`{"mode": "memory", "input": "add"}`,
		``,
		`{"mode": "basic", "input": "1/0"}`,
		`{"mode": "basic", "extra": 1}`,
		`not json`,
	}, "\n")
	var out bytes.Buffer
	require.NoError(t, runBatch(strings.NewReader(in), &out, session.New()))

	var lines []map[string]any
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		lines = append(lines, m)
	}
	require.Len(t, lines, 5)

	assert.Equal(t, 42.0, lines[0]["number"])
	assert.Equal(t, "memory", lines[1]["mode"])
	assert.Equal(t, 42.0, lines[1]["number"])
	assert.Equal(t, "division by zero", lines[2]["error"])
	assert.Contains(t, lines[3]["error"], "unknown field")
	assert.Equal(t, 5.0, lines[3]["line"])
	assert.NotEmpty(t, lines[4]["error"])
	assert.Equal(t, 6.0, lines[4]["line"])
}

func TestRunBatch_OversizedLine(t *testing.T) {
	in := strings.Repeat("x", maxLineBytes+10) + "\n" +
		`{"mode": "basic", "input": "2+3"}` + "\n" +
		strings.Repeat(" ", maxLineBytes+1)
	var out bytes.Buffer
	require.NoError(t, runBatch(strings.NewReader(in), &out, session.New()))

	var lines []map[string]any
	dec := json.NewDecoder(&out)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 3)
	assert.Equal(t, 1.0, lines[0]["line"])
	assert.Contains(t, lines[0]["error"], "exceeds")
	assert.Equal(t, 5.0, lines[1]["number"])
	assert.Equal(t, 3.0, lines[2]["line"])
	assert.Contains(t, lines[2]["error"], "exceeds")
}

func TestWriteResult(t *testing.T) {
	res := session.New().Submit(session.Command{Mode: session.ModeBasic, Input: "2+2"})

	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, res, "yaml"))
	assert.Contains(t, buf.String(), "mode: basic\n")
	assert.Contains(t, buf.String(), "number: 4\n")

	buf.Reset()
	require.NoError(t, writeResult(&buf, res, "json"))
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "4", m["text"])
	assert.NotContains(t, m, "error")

	buf.Reset()
	require.NoError(t, writeResult(&buf, res, "text"))
	assert.Equal(t, "4\n", buf.String())
}

func TestResultText(t *testing.T) {
	s := session.New()

	res := s.Submit(session.Command{Mode: session.ModeStatistics, Input: "1 2 3"})
	text := resultText(res)
	assert.Contains(t, text, "count:    3\n")
	assert.Contains(t, text, "mean:     2\n")

	res = s.Submit(session.Command{Mode: session.ModeMatrix, Input: "1,2;3,4", Params: map[string]string{"op": "transpose"}})
	assert.Equal(t, "[1, 3]\n[2, 4]\n", resultText(res))

	res = s.Submit(session.Command{Mode: session.ModePlot, Input: "sqrt(x)",
		Params: map[string]string{"min": "-1", "max": "1", "step": "1"}})
	assert.Equal(t, "-1\tundefined\n0\t0\n1\t1\n", resultText(res))
}
