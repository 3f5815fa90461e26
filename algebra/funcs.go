package algebra

import (
	"math"
	"math/big"
)

// ============================================================
// Func: named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr  { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr  { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr  { return funcOf("tan", arg).Simplify() }
func ExpOf(arg Expr) Expr  { return funcOf("exp", arg).Simplify() }
func LnOf(arg Expr) Expr   { return funcOf("ln", arg).Simplify() }
func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }
func AbsOf(arg Expr) Expr  { return funcOf("abs", arg).Simplify() }
func AsinOf(arg Expr) Expr { return funcOf("asin", arg).Simplify() }
func AcosOf(arg Expr) Expr { return funcOf("acos", arg).Simplify() }
func AtanOf(arg Expr) Expr { return funcOf("atan", arg).Simplify() }
func SinhOf(arg Expr) Expr { return funcOf("sinh", arg).Simplify() }
func CoshOf(arg Expr) Expr { return funcOf("cosh", arg).Simplify() }
func TanhOf(arg Expr) Expr { return funcOf("tanh", arg).Simplify() }
func SignOf(arg Expr) Expr { return funcOf("sign", arg).Simplify() }

var floatFuncs = map[string]func(float64) (float64, bool){
	"sin":  func(v float64) (float64, bool) { return math.Sin(v), true },
	"cos":  func(v float64) (float64, bool) { return math.Cos(v), true },
	"tan":  func(v float64) (float64, bool) { return math.Tan(v), true },
	"exp":  func(v float64) (float64, bool) { return math.Exp(v), true },
	"ln":   func(v float64) (float64, bool) { return math.Log(v), v > 0 },
	"abs":  func(v float64) (float64, bool) { return math.Abs(v), true },
	"asin": func(v float64) (float64, bool) { return math.Asin(v), v >= -1 && v <= 1 },
	"acos": func(v float64) (float64, bool) { return math.Acos(v), v >= -1 && v <= 1 },
	"atan": func(v float64) (float64, bool) { return math.Atan(v), true },
	"sinh": func(v float64) (float64, bool) { return math.Sinh(v), true },
	"cosh": func(v float64) (float64, bool) { return math.Cosh(v), true },
	"tanh": func(v float64) (float64, bool) { return math.Tanh(v), true },
	"floor": func(v float64) (float64, bool) {
		return math.Floor(v), true
	},
	"ceil": func(v float64) (float64, bool) { return math.Ceil(v), true },
	"sign": func(v float64) (float64, bool) {
		switch {
		case v > 0:
			return 1, true
		case v < 0:
			return -1, true
		}
		return 0, true
	},
}

// IsFunction reports whether name is a function the kernel knows.
func IsFunction(name string) bool {
	_, ok := floatFuncs[name]
	return ok
}

func applyFloat(name string, v float64) (*Num, bool) {
	fn, ok := floatFuncs[name]
	if !ok {
		return nil, false
	}
	r, ok := fn(v)
	if !ok {
		return nil, false
	}
	return floatNum(r)
}

// piMultiple returns k when e is k*pi for a rational k.
func piMultiple(e Expr) (*big.Rat, bool) {
	if e.Equal(Pi) {
		return big.NewRat(1, 1), true
	}
	if m, ok := e.(*Mul); ok && len(m.factors) == 2 && m.factors[1].Equal(Pi) {
		if c, ok2 := m.factors[0].(*Num); ok2 && c.Exact() {
			return c.Rat(), true
		}
	}
	return nil, false
}

// Simplify folds exact special values. Approximate arguments are
// evaluated in floating point; exact ones such as sin(1) stay symbolic.
func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if n, ok := arg.(*Num); ok && !n.Exact() {
		if r, ok2 := applyFloat(f.name, n.Float64()); ok2 {
			return r
		}
	}
	if n, ok := arg.(*Num); ok {
		switch f.name {
		case "abs":
			return numAbs(n)
		case "sign":
			return N(int64(n.val.Sign()))
		case "floor", "ceil":
			q, r := new(big.Int).QuoRem(n.val.Num(), n.val.Denom(), new(big.Int))
			if r.Sign() != 0 {
				if f.name == "floor" && n.IsNegative() {
					q.Sub(q, big.NewInt(1))
				}
				if f.name == "ceil" && n.IsPositive() {
					q.Add(q, big.NewInt(1))
				}
			}
			return &Num{val: new(big.Rat).SetInt(q)}
		}
	}
	if k, ok := piMultiple(arg); ok {
		twice := new(big.Rat).Mul(k, big.NewRat(2, 1))
		switch f.name {
		case "sin":
			if k.IsInt() {
				return N(0)
			}
			if twice.IsInt() {
				// sin((2m+1)*pi/2) = (-1)^m
				m := new(big.Int).Sub(twice.Num(), big.NewInt(1))
				m.Div(m, big.NewInt(2))
				if m.Bit(0) == 0 {
					return N(1)
				}
				return N(-1)
			}
		case "cos":
			if k.IsInt() {
				if k.Num().Bit(0) == 0 {
					return N(1)
				}
				return N(-1)
			}
			if twice.IsInt() {
				return N(0)
			}
		case "tan":
			if k.IsInt() {
				return N(0)
			}
		}
	}
	switch f.name {
	case "sin", "tan", "asin", "atan", "sinh", "tanh":
		if isNumEqual(arg, 0) {
			return N(0)
		}
	case "cos", "cosh":
		if isNumEqual(arg, 0) {
			return N(1)
		}
	case "acos":
		if isNumEqual(arg, 1) {
			return N(0)
		}
	case "ln":
		if isNumEqual(arg, 1) {
			return N(0)
		}
		if arg.Equal(E) {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if isNumEqual(arg, 0) {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.arg
		}
	case "abs":
		if _, ok := arg.(*Const); ok {
			return arg // pi and e are positive
		}
		if m, ok := arg.(*Mul); ok {
			if coeff, ok2 := m.factors[0].(*Num); ok2 && coeff.IsNegative() {
				return MulOf(numNeg(coeff), AbsOf(&Mul{factors: m.factors[1:]}))
			}
		}
	}
	return &Func{name: f.name, arg: arg}
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case "sin", "cos", "tan", "exp", "ln", "sinh", "cosh", "tanh":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case "asin":
		return "\\arcsin\\left(" + f.arg.LaTeX() + "\\right)"
	case "acos":
		return "\\arccos\\left(" + f.arg.LaTeX() + "\\right)"
	case "atan":
		return "\\arctan\\left(" + f.arg.LaTeX() + "\\right)"
	case "abs":
		return "\\left|" + f.arg.LaTeX() + "\\right|"
	case "floor":
		return "\\lfloor " + f.arg.LaTeX() + " \\rfloor"
	case "ceil":
		return "\\lceil " + f.arg.LaTeX() + " \\rceil"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(f.arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(f.arg))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(f.arg), N(2)))
	case "exp":
		outer = ExpOf(f.arg)
	case "ln":
		outer = PowOf(f.arg, N(-1))
	case "asin":
		outer = PowOf(AddOf(N(1), MulOf(N(-1), PowOf(f.arg, N(2)))), F(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(AddOf(N(1), MulOf(N(-1), PowOf(f.arg, N(2)))), F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(f.arg, N(2))), N(-1))
	case "sinh":
		outer = CoshOf(f.arg)
	case "cosh":
		outer = SinhOf(f.arg)
	case "tanh":
		outer = AddOf(N(1), MulOf(N(-1), PowOf(TanhOf(f.arg), N(2))))
	case "abs":
		outer = SignOf(f.arg)
	case "floor", "ceil", "sign":
		return N(0)
	default:
		return MulOf(funcOf("D["+f.name+"]", f.arg), du)
	}
	return MulOf(outer, du)
}

func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	if n.Exact() {
		if folded, isNum := funcOf(f.name, n).Simplify().(*Num); isNum {
			return folded, true
		}
	}
	return applyFloat(f.name, n.Float64())
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}
