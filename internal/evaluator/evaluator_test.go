package evaluator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc/internal/calcerr"
	"github.com/njchilds90/gocalc/internal/evaluator"
)

func TestEvaluate_Values(t *testing.T) {
	cases := []struct {
		in   string
		mode evaluator.Mode
		want float64
	}{
		{"2+3*4", evaluator.Basic, 14},
		{"(2+3)*4", evaluator.Basic, 20},
		{"7/2", evaluator.Basic, 3.5},
		{"sqrt(16)", evaluator.Basic, 4},
		{"-3 - -2", evaluator.Basic, -1},
		{"2^10", evaluator.Scientific, 1024},
		{"2**10", evaluator.Scientific, 1024},
		{"2^3^2", evaluator.Scientific, 512},
		{"-2^2", evaluator.Scientific, -4},
		{"factorial(5)", evaluator.Scientific, 120},
		{"log(8, 2)", evaluator.Scientific, 3},
		{"ln(e)", evaluator.Scientific, 1},
		{"log10(1000)", evaluator.Scientific, 3},
		{"log2(8)", evaluator.Scientific, 3},
		{"round(2.5)", evaluator.Scientific, 2},
		{"round(3.14159, 2)", evaluator.Scientific, 3.14},
		{"trunc(-2.7)", evaluator.Scientific, -2},
		{"pow(2, -1)", evaluator.Scientific, 0.5},
		{"hypot(3, 4)", evaluator.Scientific, 5},
		{"degrees(pi)", evaluator.Scientific, 180},
		{"radians(180)", evaluator.Scientific, math.Pi},
		{"tau / 2", evaluator.Scientific, math.Pi},
		{"sin(pi/2) + cos(0)", evaluator.Scientific, 2},
		{"2*π", evaluator.Scientific, 2 * math.Pi},
		{"cos(π)", evaluator.Scientific, -1},
	}
	for _, tc := range cases {
		got, err := evaluator.Evaluate(tc.in, tc.mode)
		require.NoError(t, err, tc.in)
		assert.InDelta(t, tc.want, got, 1e-9, tc.in)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	cases := []struct {
		in   string
		mode evaluator.Mode
		want error
	}{
		{"sin(1)", evaluator.Basic, calcerr.ErrUnknownSymbol},
		{"pi", evaluator.Basic, calcerr.ErrUnknownSymbol},
		{"2^3", evaluator.Basic, calcerr.ErrParse},
		{"1/0", evaluator.Basic, calcerr.ErrDivisionByZero},
		{"0^-1", evaluator.Scientific, calcerr.ErrDivisionByZero},
		{"sqrt(-1)", evaluator.Basic, calcerr.ErrDomain},
		{"log(-1)", evaluator.Scientific, calcerr.ErrDomain},
		{"log(8, 1)", evaluator.Scientific, calcerr.ErrDomain},
		{"asin(2)", evaluator.Scientific, calcerr.ErrDomain},
		{"factorial(-1)", evaluator.Scientific, calcerr.ErrDomain},
		{"factorial(2.5)", evaluator.Scientific, calcerr.ErrDomain},
		{"exp(1000)", evaluator.Scientific, calcerr.ErrDomain},
		{"(-8)^(1/3)", evaluator.Scientific, calcerr.ErrDomain},
		{"foo(1)", evaluator.Scientific, calcerr.ErrUnknownSymbol},
		{"y + 1", evaluator.Scientific, calcerr.ErrUnknownSymbol},
		{"__import__(1)", evaluator.Scientific, calcerr.ErrUnknownSymbol},
		{"2+", evaluator.Scientific, calcerr.ErrParse},
		{"(2", evaluator.Scientific, calcerr.ErrParse},
		{"2 $ 3", evaluator.Scientific, calcerr.ErrParse},
		{"2x", evaluator.Scientific, calcerr.ErrParse},
		{"sin(1, 2)", evaluator.Scientific, calcerr.ErrParse},
		{"   ", evaluator.Scientific, calcerr.ErrEmpty},
	}
	for _, tc := range cases {
		_, err := evaluator.Evaluate(tc.in, tc.mode)
		assert.ErrorIs(t, err, tc.want, tc.in)
	}
}

func TestEvaluate_UnknownMode(t *testing.T) {
	_, err := evaluator.Evaluate("1", evaluator.Mode("hex"))
	assert.ErrorIs(t, err, calcerr.ErrParse)
}

func TestEvaluateWith_Bindings(t *testing.T) {
	got, err := evaluator.EvaluateWith("x*2 + 1", evaluator.Basic, map[string]float64{"x": 3})
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)
}

func TestSample_DefaultDomain(t *testing.T) {
	pts, err := evaluator.Sample("x^2", evaluator.Scientific, "x", evaluator.DefaultDomain)
	require.NoError(t, err)
	require.Len(t, pts, 201)
	assert.InDelta(t, -10.0, pts[0].X, 1e-12)
	assert.InDelta(t, 100.0, pts[0].Y, 1e-9)
	assert.InDelta(t, 10.0, pts[200].X, 1e-9)
	for _, p := range pts {
		assert.True(t, p.Valid)
	}
}

func TestSample_MarksInvalidPoints(t *testing.T) {
	pts, err := evaluator.Sample("sqrt(x)", evaluator.Scientific, "x", evaluator.Domain{Min: -2, Max: 2, Step: 1})
	require.NoError(t, err)
	require.Len(t, pts, 5)
	assert.False(t, pts[0].Valid)
	assert.False(t, pts[1].Valid)
	assert.True(t, pts[2].Valid)
	assert.InDelta(t, math.Sqrt2, pts[4].Y, 1e-12)
}

func TestSample_Unplottable(t *testing.T) {
	_, err := evaluator.Sample("sqrt(x)", evaluator.Scientific, "x", evaluator.Domain{Min: -3, Max: -1, Step: 1})
	assert.ErrorIs(t, err, calcerr.ErrDomain)
}

func TestSample_UnknownName(t *testing.T) {
	_, err := evaluator.Sample("y + 1", evaluator.Scientific, "x", evaluator.DefaultDomain)
	assert.ErrorIs(t, err, calcerr.ErrUnknownSymbol)
}

func TestSample_BadDomain(t *testing.T) {
	domains := []evaluator.Domain{
		{Min: 0, Max: 1, Step: 0},
		{Min: 1, Max: 0, Step: 0.1},
		{Min: -1e300, Max: 1e300, Step: 1e-300},
		{Min: -1.7e308, Max: 1.7e308, Step: 1},
		{Min: 0, Max: math.NaN(), Step: 1},
		{Min: 0, Max: 1, Step: math.NaN()},
		{Min: 0, Max: math.Inf(1), Step: 1},
		{Min: 0, Max: evaluator.MaxSamplePoints, Step: 1},
	}
	for _, d := range domains {
		_, err := evaluator.Sample("x", evaluator.Scientific, "x", d)
		assert.ErrorIs(t, err, calcerr.ErrInvalidNumber, "%+v", d)
	}
}

func TestSample_LargestDomain(t *testing.T) {
	pts, err := evaluator.Sample("x", evaluator.Scientific, "x", evaluator.Domain{Min: 0, Max: evaluator.MaxSamplePoints - 1, Step: 1})
	require.NoError(t, err)
	assert.Len(t, pts, evaluator.MaxSamplePoints)
}
