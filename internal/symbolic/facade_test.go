package symbolic_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc/algebra"
	"github.com/njchilds90/gocalc/internal/calcerr"
	"github.com/njchilds90/gocalc/internal/symbolic"
)

func newFacade() *symbolic.Facade {
	return symbolic.New(symbolic.Kernel{Newton: algebra.NewtonOptions{SearchRange: 100, Tol: 1e-10, MaxIter: 100}})
}

// ============================================================
// Simplify
// ============================================================

func TestSimplify(t *testing.T) {
	f := newFacade()
	out, err := f.Simplify("(x+1)^2 - x^2")
	require.NoError(t, err)
	assert.Equal(t, "2*x + 1", out)
}

func TestSimplify_Errors(t *testing.T) {
	f := newFacade()
	_, err := f.Simplify("1/0")
	assert.ErrorIs(t, err, calcerr.ErrDivisionByZero)
	_, err = f.Simplify("2 +")
	assert.ErrorIs(t, err, calcerr.ErrParse)
	_, err = f.Simplify(" ")
	assert.ErrorIs(t, err, calcerr.ErrEmpty)
}

func TestSimplify_SyntaxErrorDoesNotLeak(t *testing.T) {
	_, err := newFacade().Simplify("2 +")
	require.Error(t, err)
	assert.ErrorIs(t, err, calcerr.ErrParse)

	var se *algebra.SyntaxError
	assert.False(t, errors.As(err, &se), "kernel syntax error reachable through %v", err)
	assert.Contains(t, err.Error(), "syntax error at position")
}

// ============================================================
// Solve
// ============================================================

func TestEquation(t *testing.T) {
	f := newFacade()
	sol, err := f.Equation("x^2 = 4", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"-2", "2"}, sol.Values)
	assert.Equal(t, "[-2, 2]", sol.String())

	sol, err = f.Equation("x^2 == 2", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"-sqrt(2)", "sqrt(2)"}, sol.Values)
}

func TestEquation_MissingEquals(t *testing.T) {
	_, err := newFacade().Equation("x^2 - 4", "x")
	assert.ErrorIs(t, err, calcerr.ErrMalformedEquation)
}

func TestEquation_NoRealSolutionIsNotAnError(t *testing.T) {
	sol, err := newFacade().Equation("x^2 = -1", "x")
	require.NoError(t, err)
	assert.Empty(t, sol.Values)
	assert.True(t, sol.ComplexOmitted)
	assert.Equal(t, "no real solutions", sol.String())
}

func TestEquation_Identity(t *testing.T) {
	sol, err := newFacade().Equation("x = x", "x")
	require.NoError(t, err)
	assert.True(t, sol.All)
}

func TestSolve_Rational(t *testing.T) {
	sol, err := newFacade().Solve("2*x + 1", "0", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"-1/2"}, sol.Values)
}

func TestSolve_BadVariable(t *testing.T) {
	_, err := newFacade().Solve("x", "1", "1x")
	assert.ErrorIs(t, err, calcerr.ErrParse)
}

// ============================================================
// Calculus
// ============================================================

func TestDifferentiate(t *testing.T) {
	f := newFacade()
	cases := []struct {
		order int
		want  string
	}{
		{1, "3*x^2"},
		{2, "6*x"},
		{3, "6"},
		{4, "0"},
	}
	for _, tc := range cases {
		out, err := f.Differentiate("x^3", "x", tc.order)
		require.NoError(t, err, tc.order)
		assert.Equal(t, tc.want, out, tc.order)
	}
}

func TestDifferentiate_OrderOutOfRange(t *testing.T) {
	f := newFacade()
	for _, order := range []int{0, -1, symbolic.MaxDerivativeOrder + 1, 1_000_000_000} {
		_, err := f.Differentiate("x^3", "x", order)
		assert.ErrorIs(t, err, calcerr.ErrInvalidNumber, order)
	}
	_, err := f.Differentiate("sin(x)", "x", symbolic.MaxDerivativeOrder)
	assert.NoError(t, err)
}

func TestIntegrate(t *testing.T) {
	f := newFacade()

	out, err := f.Integrate("2*x", "x", "0", "3")
	require.NoError(t, err)
	assert.Equal(t, "9", out)

	out, err = f.Integrate("x", "x", "", "")
	require.NoError(t, err)
	assert.Equal(t, "x^2/2", out)

	out, err = f.Integrate("exp(x^2)", "x", "", "")
	require.NoError(t, err)
	assert.Equal(t, "integrate(exp(x^2), x)", out)
}

func TestIntegrate_NumericFallback(t *testing.T) {
	out, err := newFacade().Integrate("exp(x^2)", "x", "0", "1")
	require.NoError(t, err)
	v, perr := strconv.ParseFloat(out, 64)
	require.NoError(t, perr)
	assert.InDelta(t, 1.4626517459, v, 1e-9)
}

func TestIntegrate_Divergent(t *testing.T) {
	f := newFacade()
	cases := []struct{ expr, lower, upper, want string }{
		{"1/x^2", "-1", "1", "oo"},
		{"1/x^2", "1", "-1", "-oo"},
		{"-1/x^2", "-1", "1", "-oo"},
		{"1/x", "0", "1", "oo"},
		{"1/(x-1)^2", "0", "3", "oo"},
	}
	for _, tc := range cases {
		out, err := f.Integrate(tc.expr, "x", tc.lower, tc.upper)
		require.NoError(t, err, tc.expr)
		assert.Equal(t, tc.want, out, "%s over [%s, %s]", tc.expr, tc.lower, tc.upper)
	}
}

func TestIntegrate_DoesNotConverge(t *testing.T) {
	f := newFacade()
	for _, expr := range []string{"1/x", "1/x^3", "tan(x)"} {
		lower, upper := "-1", "1"
		if expr == "tan(x)" {
			lower, upper = "0", "2"
		}
		out, err := f.Integrate(expr, "x", lower, upper)
		assert.ErrorIs(t, err, calcerr.ErrDomain, "%s gave %q", expr, out)
		assert.Empty(t, out)
	}
}

func TestIntegrate_IntegrableSingularity(t *testing.T) {
	out, err := newFacade().Integrate("1/sqrt(x)", "x", "0", "1")
	require.NoError(t, err)
	assert.Equal(t, "2", out)
}

func TestIntegrate_Bounds(t *testing.T) {
	f := newFacade()
	_, err := f.Integrate("x", "x", "0", "")
	assert.ErrorIs(t, err, calcerr.ErrIncompleteBounds)
	_, err = f.Integrate("x", "x", "", "1")
	assert.ErrorIs(t, err, calcerr.ErrIncompleteBounds)
	_, err = f.Integrate("x", "x", "a", "1")
	assert.ErrorIs(t, err, calcerr.ErrInvalidNumber)
}

func TestLimit(t *testing.T) {
	f := newFacade()
	cases := []struct{ expr, point, want string }{
		{"sin(x)/x", "0", "1"},
		{"(x^2 - 1)/(x - 1)", "1", "2"},
		{"1/x", "0", "does not exist"},
		{"1/x", "oo", "0"},
		{"x", "inf", "oo"},
	}
	for _, tc := range cases {
		out, err := f.Limit(tc.expr, "x", tc.point)
		require.NoError(t, err, tc.expr)
		assert.Equal(t, tc.want, out, tc.expr)
	}
}

func TestLimit_BlankPoint(t *testing.T) {
	_, err := newFacade().Limit("x", "x", "")
	assert.ErrorIs(t, err, calcerr.ErrEmpty)
}

// ============================================================
// Matrices
// ============================================================

func TestMatrixOp(t *testing.T) {
	f := newFacade()

	res, err := f.MatrixOp("1,2;3,4", "", symbolic.OpDeterminant)
	require.NoError(t, err)
	assert.True(t, res.IsScalar())
	assert.Equal(t, "-2", res.Scalar)

	res, err = f.MatrixOp("1 2\n3 4", "", symbolic.OpInverse)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"-2", "1"}, {"3/2", "-1/2"}}, res.Rows)

	res, err = f.MatrixOp("1,2;3,4", "5;6", symbolic.OpMultiply)
	require.NoError(t, err)
	assert.Equal(t, "[[17], [39]]", res.String())

	res, err = f.MatrixOp("1,2;3,4", "1,1;1,1", symbolic.OpSubtract)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"0", "1"}, {"2", "3"}}, res.Rows)

	res, err = f.MatrixOp("1,2,3", "", symbolic.OpTranspose)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"2"}, {"3"}}, res.Rows)

	res, err = f.MatrixOp("1,2;3,4", "", symbolic.OpTrace)
	require.NoError(t, err)
	assert.Equal(t, "5", res.Scalar)
}

func TestMatrixOp_InverseOfSmallExactDeterminant(t *testing.T) {
	f := newFacade()

	res, err := f.MatrixOp("0.0000001,0;0,0.0000001", "", symbolic.OpInverse)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"10000000", "0"}, {"0", "10000000"}}, res.Rows)

	res, err = f.MatrixOp("0.0000001,0;0,0.0000001", "", symbolic.OpDeterminant)
	require.NoError(t, err)
	assert.Equal(t, "1/100000000000000", res.Scalar)
}

func TestMatrixOp_Errors(t *testing.T) {
	f := newFacade()
	cases := []struct {
		a, b string
		op   symbolic.MatrixOp
		want error
	}{
		{"1,2;2,4", "", symbolic.OpInverse, calcerr.ErrSingular},
		{"1,2;3,4;5,6", "", symbolic.OpDeterminant, calcerr.ErrNotSquare},
		{"1,2,3", "", symbolic.OpInverse, calcerr.ErrNotSquare},
		{"1,2;3,4", "1,2,3", symbolic.OpAdd, calcerr.ErrDimensionMismatch},
		{"1,2;3,4", "1,2,3", symbolic.OpMultiply, calcerr.ErrDimensionMismatch},
		{"1,2;3,4", "", symbolic.OpAdd, calcerr.ErrEmpty},
		{"", "", symbolic.OpDeterminant, calcerr.ErrEmpty},
		{"1,2;3", "", symbolic.OpDeterminant, calcerr.ErrParse},
		{"1,x;3,4", "", symbolic.OpDeterminant, calcerr.ErrParse},
		{"1,2;3,4", "", symbolic.MatrixOp("pivot"), calcerr.ErrParse},
	}
	for _, tc := range cases {
		_, err := f.MatrixOp(tc.a, tc.b, tc.op)
		assert.ErrorIs(t, err, tc.want, "%s %q", tc.op, tc.a)
	}
}

func TestParseMatrixOp(t *testing.T) {
	op, err := symbolic.ParseMatrixOp(" DET ")
	require.NoError(t, err)
	assert.Equal(t, symbolic.OpDeterminant, op)
	_, err = symbolic.ParseMatrixOp("pivot")
	assert.ErrorIs(t, err, calcerr.ErrParse)
}

// ============================================================
// Backend failures
// ============================================================

type panickyBackend struct{ symbolic.Kernel }

func (panickyBackend) Diff(algebra.Expr, string, int) algebra.Expr { panic("boom") }
func (panickyBackend) Det(*algebra.Matrix) algebra.Expr {
	panic("algebra: division by zero")
}

func TestBackendPanicsAreRecovered(t *testing.T) {
	f := symbolic.New(panickyBackend{})

	_, err := f.Differentiate("x^2", "x", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, calcerr.ErrDomain)

	_, err = f.MatrixOp("1,2;3,4", "", symbolic.OpDeterminant)
	assert.ErrorIs(t, err, calcerr.ErrDivisionByZero)
}

func TestNilBackendUsesKernel(t *testing.T) {
	out, err := symbolic.New(nil).Differentiate("x^2", "x", 1)
	require.NoError(t, err)
	assert.Equal(t, "2*x", out)
}
