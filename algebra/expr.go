// Package algebra is a deterministic symbolic math kernel with exact
// rational arithmetic (math/big.Rat).
//
// Expressions are immutable trees built from Num, Sym, Const, Add, Mul, Pow
// and Func nodes, either through the constructors (N, S, AddOf, ...) or by
// parsing text with Parse. The kernel panics on arithmetic that has no value
// (a zero denominator in a constructor, a non-finite float); callers that
// accept untrusted input are expected to recover.
package algebra

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
}

// ============================================================
// Num: rational number, exact unless produced by float math
// ============================================================

type Num struct {
	val    *big.Rat
	approx bool
}

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("algebra: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NFloat wraps a finite float as an approximate number.
func NFloat(f float64) *Num {
	n, ok := floatNum(f)
	if !ok {
		panic(fmt.Sprintf("algebra: non-finite value %v", f))
	}
	return n
}

// NRat wraps an exact rational. r is copied.
func NRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func floatNum(f float64) (*Num, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return &Num{val: new(big.Rat).SetFloat64(f), approx: true}, true
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(big.NewRat(-1, 1)) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }

// Exact reports whether n was produced without floating-point rounding.
func (n *Num) Exact() bool { return !n.approx }

func (n *Num) String() string {
	if n.approx {
		return strconv.FormatFloat(n.Float64(), 'g', 12, 64)
	}
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.approx || n.val.IsInt() {
		return n.String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func numAdd(a, b *Num) *Num {
	return &Num{val: new(big.Rat).Add(a.val, b.val), approx: a.approx || b.approx}
}
func numMul(a, b *Num) *Num {
	return &Num{val: new(big.Rat).Mul(a.val, b.val), approx: a.approx || b.approx}
}
func numNeg(a *Num) *Num { return &Num{val: new(big.Rat).Neg(a.val), approx: a.approx} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("algebra: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val), approx: a.approx}
}
func numAbs(a *Num) *Num {
	r := new(big.Rat).Abs(a.val)
	return &Num{val: r, approx: a.approx}
}
func numCmp(a, b *Num) int { return a.val.Cmp(b.val) }

// numPowInt raises a to an integer power exactly. a must be non-zero when
// e is negative.
func numPowInt(a *Num, e int64) *Num {
	neg := e < 0
	if neg {
		e = -e
	}
	result := N(1)
	result.approx = a.approx
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = numMul(result, base)
		}
		base = numMul(base, base)
		e >>= 1
	}
	if neg {
		return numRecip(result)
	}
	return result
}

// ============================================================
// Sym: symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym      { return &Sym{name: name} }
func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string  { return s.name }
func (s *Sym) Eval() (*Num, bool) {
	return nil, false
}
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) Name() string          { return s.name }
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}
func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

// ============================================================
// Const: named mathematical constant
// ============================================================

type Const struct {
	name  string
	latex string
	value float64
}

var (
	Pi = &Const{name: "pi", latex: "\\pi", value: math.Pi}
	E  = &Const{name: "e", latex: "e", value: math.E}
)

func (c *Const) Simplify() Expr        { return c }
func (c *Const) String() string        { return c.name }
func (c *Const) LaTeX() string         { return c.latex }
func (c *Const) Sub(string, Expr) Expr { return c }
func (c *Const) Diff(string) Expr      { return N(0) }
func (c *Const) Eval() (*Num, bool)    { return floatNum(c.value) }
func (c *Const) Equal(other Expr) bool { o, ok := other.(*Const); return ok && o.name == c.name }

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.val.Cmp(big.NewRat(v, 1)) == 0
}

// isUndefined reports whether e contains a power of zero with a
// non-positive exponent, such as the result of substituting 0 into 1/x.
func isUndefined(e Expr) bool {
	switch v := e.(type) {
	case *Pow:
		if bn, ok := v.base.(*Num); ok && bn.IsZero() {
			if en, ok2 := v.exp.(*Num); ok2 && !en.IsPositive() {
				return true
			}
		}
		return isUndefined(v.base) || isUndefined(v.exp)
	case *Add:
		for _, t := range v.terms {
			if isUndefined(t) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if isUndefined(f) {
				return true
			}
		}
	case *Func:
		return isUndefined(v.arg)
	}
	return false
}

// IsUndefined reports whether e contains a division by zero.
func IsUndefined(e Expr) bool { return isUndefined(e) }
