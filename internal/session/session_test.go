package session_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc/internal/calcerr"
	"github.com/njchilds90/gocalc/internal/config"
	"github.com/njchilds90/gocalc/internal/logger"
	"github.com/njchilds90/gocalc/internal/session"
)

func submit(s *session.Session, mode session.Mode, input string, params map[string]string) session.Result {
	return s.Submit(session.Command{Mode: mode, Input: input, Params: params})
}

// ============================================================
// Evaluation modes
// ============================================================

func TestSubmit_Basic(t *testing.T) {
	s := session.New()

	res := submit(s, session.ModeBasic, "2+2", nil)
	require.True(t, res.OK(), res.Text)
	assert.True(t, res.Numeric)
	assert.Equal(t, 4.0, res.Number)
	assert.Equal(t, "4", res.Text)

	hist := s.RecentHistory(1)
	require.Len(t, hist, 1)
	assert.Equal(t, 1, hist[0].Seq)
	assert.Equal(t, "basic", hist[0].Mode)
	assert.Equal(t, "2+2", hist[0].Expression)
	assert.Equal(t, "4", hist[0].Result)
}

func TestSubmit_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mode   session.Mode
		input  string
		params map[string]string
		want   error
	}{
		{"division by zero", session.ModeBasic, "1/0", nil, calcerr.ErrDivisionByZero},
		{"power in basic", session.ModeBasic, "2^3", nil, calcerr.ErrParse},
		{"blank", session.ModeBasic, "   ", nil, calcerr.ErrEmpty},
		{"unknown name", session.ModeScientific, "foo(1)", nil, calcerr.ErrUnknownSymbol},
		{"domain", session.ModeScientific, "sqrt(-1)", nil, calcerr.ErrDomain},
		{"unknown mode", session.Mode("graph"), "1", nil, calcerr.ErrParse},
		{"no equals", session.ModeSolve, "x^2 - 4", nil, calcerr.ErrMalformedEquation},
		{"one bound", session.ModeIntegrate, "x", map[string]string{"lower": "0"}, calcerr.ErrIncompleteBounds},
		{"bad order", session.ModeDifferentiate, "x", map[string]string{"order": "0"}, calcerr.ErrInvalidNumber},
		{"order too large", session.ModeDifferentiate, "x^3", map[string]string{"order": "51"}, calcerr.ErrInvalidNumber},
		{"huge order", session.ModeDifferentiate, "x^3", map[string]string{"order": "1000000000"}, calcerr.ErrInvalidNumber},
		{"divergent integral", session.ModeIntegrate, "1/x", map[string]string{"lower": "-1", "upper": "1"}, calcerr.ErrDomain},
		{"plot span overflow", session.ModePlot, "x", map[string]string{"min": "-1.7e308", "max": "1.7e308", "step": "1"}, calcerr.ErrInvalidNumber},
		{"plot too fine", session.ModePlot, "x", map[string]string{"min": "-1e300", "max": "1e300", "step": "1e-300"}, calcerr.ErrInvalidNumber},
		{"limit without point", session.ModeLimit, "x", nil, calcerr.ErrEmpty},
		{"unknown unit", session.ModeConvert, "1", map[string]string{"category": "length", "from": "kg", "to": "m"}, calcerr.ErrUnknownUnit},
		{"bad value", session.ModeConvert, "ten", map[string]string{"category": "length", "from": "m", "to": "km"}, calcerr.ErrInvalidNumber},
		{"bad sample", session.ModeStatistics, "1, two", nil, calcerr.ErrInvalidNumber},
		{"empty sample", session.ModeStatistics, " , ", nil, calcerr.ErrEmpty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := session.New()
			res := submit(s, tc.mode, tc.input, tc.params)
			require.False(t, res.OK())
			assert.ErrorIs(t, res.Err, tc.want)
			assert.Equal(t, calcerr.Describe(res.Err), res.Text)
			assert.Equal(t, res.Text, res.Error)
			assert.False(t, res.Numeric)
			assert.Empty(t, s.RecentHistory(10), "failures are not recorded")
		})
	}
}

func TestSubmit_ModeIsNormalized(t *testing.T) {
	res := submit(session.New(), session.Mode("  Scientific "), "sqrt(16) + sin(0)", nil)
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, session.ModeScientific, res.Mode)
	assert.Equal(t, 4.0, res.Number)
}

// ============================================================
// Symbolic modes
// ============================================================

func TestSubmit_Symbolic(t *testing.T) {
	s := session.New()

	res := submit(s, session.ModeSymbolic, "(x+1)^2 - x^2", nil)
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, "2*x + 1", res.Text)
	assert.NotEmpty(t, res.LaTeX)
	assert.False(t, res.Numeric)

	res = submit(s, session.ModeSolve, "x^2 = 4", nil)
	require.True(t, res.OK(), res.Text)
	require.NotNil(t, res.Solutions)
	assert.Equal(t, []string{"-2", "2"}, res.Solutions.Values)
	assert.Equal(t, "[-2, 2]", res.Text)

	res = submit(s, session.ModeSolve, "2*x + 1", map[string]string{"rhs": "0"})
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, "[-1/2]", res.Text)

	res = submit(s, session.ModeDifferentiate, "x^3", map[string]string{"order": "2"})
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, "6*x", res.Text)

	res = submit(s, session.ModeIntegrate, "2*x", map[string]string{"lower": "0", "upper": "3"})
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, "9", res.Text)
	assert.True(t, res.Numeric)
	assert.Equal(t, 9.0, res.Number)

	res = submit(s, session.ModeIntegrate, "1/x^2", map[string]string{"lower": "-1", "upper": "1"})
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, "oo", res.Text)
	assert.False(t, res.Numeric)
	assert.Empty(t, res.LaTeX)

	res = submit(s, session.ModeLimit, "sin(x)/x", map[string]string{"point": "0"})
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, "1", res.Text)

	res = submit(s, session.ModeLimit, "1/x", map[string]string{"point": "0"})
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, "does not exist", res.Text)
	assert.Empty(t, res.LaTeX)

	hist := s.RecentHistory(10)
	require.Len(t, hist, 8)
	assert.Equal(t, "2*x + 1 = 0", hist[2].Expression)
	assert.Equal(t, "d^2/dx^2 (x^3)", hist[3].Expression)
	assert.Equal(t, "integrate(2*x, x, 0, 3)", hist[4].Expression)
	assert.Equal(t, "oo", hist[5].Result)
	assert.Equal(t, "limit(sin(x)/x, x -> 0)", hist[6].Expression)
	assert.Equal(t, 7, hist[6].Seq)
}

func TestSubmit_Matrix(t *testing.T) {
	s := session.New()

	res := submit(s, session.ModeMatrix, "1,2;3,4", map[string]string{"op": "det"})
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, "-2", res.Text)
	assert.Equal(t, -2.0, res.Number)

	res = submit(s, session.ModeMatrix, "1,2,3;4,5,6", map[string]string{"op": "multiply", "b": "1,2;3,4"})
	assert.ErrorIs(t, res.Err, calcerr.ErrDimensionMismatch)

	res = submit(s, session.ModeMatrix, "0,0;0,0", map[string]string{"op": "inverse"})
	assert.ErrorIs(t, res.Err, calcerr.ErrSingular)

	res = submit(s, session.ModeMatrix, "1,2;3,4", nil)
	assert.ErrorIs(t, res.Err, calcerr.ErrEmpty)

	assert.Empty(t, s.RecentHistory(10), "matrix work is not recorded")
}

// ============================================================
// Scratch modes
// ============================================================

func TestSubmit_Convert(t *testing.T) {
	s := session.New()

	res := submit(s, session.ModeConvert, "1", map[string]string{"category": "length", "from": "km", "to": "m"})
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, 1000.0, res.Number)
	assert.Equal(t, "1000", res.Text)

	res = submit(s, session.ModeConvert, "", map[string]string{"category": "temperature", "from": "c", "to": "f", "value": "100"})
	require.True(t, res.OK(), res.Text)
	assert.InDelta(t, 212.0, res.Number, 1e-9)

	assert.Empty(t, s.RecentHistory(10), "conversions are not recorded")
}

func TestSubmit_Statistics(t *testing.T) {
	s := session.New()

	res := submit(s, session.ModeStatistics, "1, 2, 3, 4", nil)
	require.True(t, res.OK(), res.Text)
	require.NotNil(t, res.Summary)
	assert.Equal(t, 4, res.Summary.Count)
	assert.Equal(t, 2.5, res.Summary.Mean)
	assert.Equal(t, 2.5, res.Summary.Median)

	res = submit(s, session.ModeStatistics, "4", nil)
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, "n=1 mean=4 median=4 stdev=0 variance=0", res.Text)

	assert.Empty(t, s.RecentHistory(10))
}

func TestSubmit_Plot(t *testing.T) {
	s := session.New()

	res := submit(s, session.ModePlot, "x^2", nil)
	require.True(t, res.OK(), res.Text)
	assert.Len(t, res.Points, 201)
	assert.Equal(t, "201 points (201 valid)", res.Text)

	res = submit(s, session.ModePlot, "t", map[string]string{"var": "t", "min": "0", "max": "1", "step": "0.5"})
	require.True(t, res.OK(), res.Text)
	require.Len(t, res.Points, 3)
	assert.Equal(t, 1.0, res.Points[2].Y)

	res = submit(s, session.ModePlot, "x", map[string]string{"step": "fast"})
	assert.ErrorIs(t, res.Err, calcerr.ErrInvalidNumber)
}

// ============================================================
// Memory and history
// ============================================================

func TestMemory(t *testing.T) {
	s := session.New()

	res := submit(s, session.ModeMemory, "add", map[string]string{"value": "5"})
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, 5.0, res.Number)

	res = submit(s, session.ModeMemory, "", map[string]string{"op": "subtract", "value": "2"})
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, 3.0, s.MemoryRecall())

	res = submit(s, session.ModeMemory, "recall", nil)
	assert.Equal(t, 3.0, res.Number)

	res = submit(s, session.ModeMemory, "clear", nil)
	assert.Equal(t, 0.0, res.Number)
	assert.Equal(t, 0.0, s.MemoryRecall())
	assert.Empty(t, s.RecentHistory(10), "memory operations are not recorded")
}

func TestMemory_UsesLastResult(t *testing.T) {
	s := session.New()

	res := submit(s, session.ModeMemory, "m+", nil)
	assert.ErrorIs(t, res.Err, calcerr.ErrEmpty)

	submit(s, session.ModeBasic, "6*7", nil)
	submit(s, session.ModeBasic, "1/0", nil)
	res = submit(s, session.ModeMemory, "m+", nil)
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, 42.0, s.MemoryRecall())

	res = submit(s, session.ModeMemory, "M-", nil)
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, 0.0, s.MemoryRecall())
}

func TestMemory_Errors(t *testing.T) {
	s := session.New()
	res := submit(s, session.ModeMemory, "swap", nil)
	assert.ErrorIs(t, res.Err, calcerr.ErrParse)
	res = submit(s, session.ModeMemory, "add", map[string]string{"value": "abc"})
	assert.ErrorIs(t, res.Err, calcerr.ErrInvalidNumber)
	res = submit(s, session.ModeMemory, "", nil)
	assert.ErrorIs(t, res.Err, calcerr.ErrEmpty)
}

func TestHistory_RecentAndClear(t *testing.T) {
	cfg := config.Default()
	cfg.Display.HistoryTail = 2
	s := session.New(session.WithConfig(cfg))

	for _, in := range []string{"1+1", "2+2", "3+3"} {
		submit(s, session.ModeBasic, in, nil)
	}
	tail := s.HistoryTail()
	require.Len(t, tail, 2)
	assert.Equal(t, "2+2", tail[0].Expression)
	assert.Equal(t, "6", tail[1].Result)
	assert.Len(t, s.RecentHistory(100), 3)

	s.ClearHistory()
	assert.Empty(t, s.RecentHistory(5))

	submit(s, session.ModeBasic, "4+4", nil)
	assert.Equal(t, 1, s.RecentHistory(1)[0].Seq)
}

func TestPrecision(t *testing.T) {
	cfg := config.Default()
	cfg.Display.Precision = 4
	res := submit(session.New(session.WithConfig(cfg)), session.ModeBasic, "2/3", nil)
	require.True(t, res.OK(), res.Text)
	assert.Equal(t, "0.6667", res.Text)
}

// ============================================================
// Session plumbing
// ============================================================

func TestID(t *testing.T) {
	a, b := session.New(), session.New()
	_, err := uuid.Parse(a.ID())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestFailuresAreLogged(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	log, err := logger.New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)
	s := session.New(session.WithLogger(log))

	submit(s, session.ModeBasic, "2+2", nil)
	submit(s, session.ModeBasic, "1/0", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "command failed", entry["msg"])
	assert.Equal(t, s.ID(), entry["session_id"])
	assert.Equal(t, "basic", entry["mode"])
	assert.Equal(t, "EvaluationError", entry["class"])
	assert.Equal(t, "DivisionByZero", entry["kind"])
}

func TestConcurrentSubmit(t *testing.T) {
	s := session.New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			submit(s, session.ModeBasic, "1+1", nil)
		}()
	}
	wg.Wait()

	hist := s.RecentHistory(100)
	require.Len(t, hist, 50)
	seen := map[int]bool{}
	for _, e := range hist {
		seen[e.Seq] = true
	}
	assert.Len(t, seen, 50)
}
