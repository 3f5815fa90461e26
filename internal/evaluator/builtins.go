package evaluator

import (
	"math"

	"github.com/njchilds90/gocalc/internal/calcerr"
)

// builtin describes a numeric function callable from expressions.
type builtin struct {
	minArgs int
	maxArgs int
	fn      func(args []float64) (float64, error)
}

func unary(f func(float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) { return f(args[0]), nil }
}

func domainErr(format string, args ...any) error {
	return calcerr.New(calcerr.ErrDomain, format, args...)
}

var basicBuiltins = map[string]builtin{
	"sqrt": {minArgs: 1, maxArgs: 1, fn: builtinSqrt},
}

var scientificBuiltins = map[string]builtin{
	"sqrt": {minArgs: 1, maxArgs: 1, fn: builtinSqrt},

	// Trigonometry.
	"sin": {minArgs: 1, maxArgs: 1, fn: unary(math.Sin)},
	"cos": {minArgs: 1, maxArgs: 1, fn: unary(math.Cos)},
	"tan": {minArgs: 1, maxArgs: 1, fn: unary(math.Tan)},
	"asin": {minArgs: 1, maxArgs: 1, fn: func(args []float64) (float64, error) {
		if args[0] < -1 || args[0] > 1 {
			return 0, domainErr("asin(%g) outside [-1, 1]", args[0])
		}
		return math.Asin(args[0]), nil
	}},
	"acos": {minArgs: 1, maxArgs: 1, fn: func(args []float64) (float64, error) {
		if args[0] < -1 || args[0] > 1 {
			return 0, domainErr("acos(%g) outside [-1, 1]", args[0])
		}
		return math.Acos(args[0]), nil
	}},
	"atan": {minArgs: 1, maxArgs: 1, fn: unary(math.Atan)},

	// Hyperbolic.
	"sinh": {minArgs: 1, maxArgs: 1, fn: unary(math.Sinh)},
	"cosh": {minArgs: 1, maxArgs: 1, fn: unary(math.Cosh)},
	"tanh": {minArgs: 1, maxArgs: 1, fn: unary(math.Tanh)},

	// Exponentials and logs.
	"exp": {minArgs: 1, maxArgs: 1, fn: unary(math.Exp)},
	"ln":  {minArgs: 1, maxArgs: 1, fn: builtinLn},
	"log": {minArgs: 1, maxArgs: 2, fn: builtinLog},
	"log10": {minArgs: 1, maxArgs: 1, fn: func(args []float64) (float64, error) {
		if args[0] <= 0 {
			return 0, domainErr("log10 of non-positive value %g", args[0])
		}
		return math.Log10(args[0]), nil
	}},
	"log2": {minArgs: 1, maxArgs: 1, fn: func(args []float64) (float64, error) {
		if args[0] <= 0 {
			return 0, domainErr("log2 of non-positive value %g", args[0])
		}
		return math.Log2(args[0]), nil
	}},

	// Powers.
	"pow": {minArgs: 2, maxArgs: 2, fn: func(args []float64) (float64, error) {
		return power(args[0], args[1])
	}},
	"hypot": {minArgs: 2, maxArgs: 2, fn: func(args []float64) (float64, error) {
		return math.Hypot(args[0], args[1]), nil
	}},

	// Rounding.
	"abs":   {minArgs: 1, maxArgs: 1, fn: unary(math.Abs)},
	"round": {minArgs: 1, maxArgs: 2, fn: builtinRound},
	"floor": {minArgs: 1, maxArgs: 1, fn: unary(math.Floor)},
	"ceil":  {minArgs: 1, maxArgs: 1, fn: unary(math.Ceil)},
	"trunc": {minArgs: 1, maxArgs: 1, fn: unary(math.Trunc)},

	"factorial": {minArgs: 1, maxArgs: 1, fn: builtinFactorial},

	// Angle helpers.
	"degrees": {minArgs: 1, maxArgs: 1, fn: unary(func(v float64) float64 { return v * 180 / math.Pi })},
	"radians": {minArgs: 1, maxArgs: 1, fn: unary(func(v float64) float64 { return v * math.Pi / 180 })},
}

var scientificConstants = map[string]float64{
	"pi":  math.Pi,
	"π":   math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
}

func builtinSqrt(args []float64) (float64, error) {
	if args[0] < 0 {
		return 0, domainErr("sqrt of negative value %g", args[0])
	}
	return math.Sqrt(args[0]), nil
}

func builtinLn(args []float64) (float64, error) {
	if args[0] <= 0 {
		return 0, domainErr("log of non-positive value %g", args[0])
	}
	return math.Log(args[0]), nil
}

// builtinLog is the natural log, or log base args[1] when given.
func builtinLog(args []float64) (float64, error) {
	v, err := builtinLn(args[:1])
	if err != nil || len(args) == 1 {
		return v, err
	}
	base := args[1]
	if base <= 0 || base == 1 {
		return 0, domainErr("invalid log base %g", base)
	}
	return v / math.Log(base), nil
}

// builtinRound rounds half to even, optionally to ndigits decimals.
func builtinRound(args []float64) (float64, error) {
	if len(args) == 1 {
		return math.RoundToEven(args[0]), nil
	}
	nd := args[1]
	if nd != math.Trunc(nd) {
		return 0, domainErr("round ndigits must be an integer, got %g", nd)
	}
	scale := math.Pow(10, nd)
	if math.IsInf(scale, 0) || scale == 0 {
		return args[0], nil
	}
	return math.RoundToEven(args[0]*scale) / scale, nil
}

func builtinFactorial(args []float64) (float64, error) {
	n := args[0]
	if n < 0 || n != math.Trunc(n) {
		return 0, domainErr("factorial of %g is undefined", n)
	}
	if n > 170 {
		return 0, domainErr("factorial(%g) overflows", n)
	}
	acc := 1.0
	for i := 2.0; i <= n; i++ {
		acc *= i
	}
	return acc, nil
}

func power(base, exp float64) (float64, error) {
	if base == 0 && exp < 0 {
		return 0, calcerr.New(calcerr.ErrDivisionByZero, "0 raised to negative power %g", exp)
	}
	if base < 0 && exp != math.Trunc(exp) {
		return 0, domainErr("negative base %g with fractional exponent %g", base, exp)
	}
	return math.Pow(base, exp), nil
}
