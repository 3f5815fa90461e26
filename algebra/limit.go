package algebra

import (
	"math"
	"strconv"
)

// ============================================================
// Limits
// ============================================================

// LimitKind classifies a limit value.
type LimitKind int

const (
	LimitFinite LimitKind = iota
	LimitPosInf
	LimitNegInf
	LimitNone
)

// LimitPoint is the approach point: a finite expression or ±infinity.
type LimitPoint struct {
	At       Expr
	Infinity int // +1 or -1 for ±oo, 0 for a finite point
}

func FinitePoint(e Expr) LimitPoint { return LimitPoint{At: e} }
func InfinitePoint(sign int) LimitPoint {
	if sign < 0 {
		return LimitPoint{Infinity: -1}
	}
	return LimitPoint{Infinity: 1}
}

func (p LimitPoint) String() string {
	switch {
	case p.Infinity > 0:
		return "oo"
	case p.Infinity < 0:
		return "-oo"
	}
	return p.At.String()
}

// LimitResult holds the result of a limit computation.
type LimitResult struct {
	Value   Expr
	Kind    LimitKind
	Success bool
	Error   string
}

func (r LimitResult) String() string {
	switch r.Kind {
	case LimitPosInf:
		return "oo"
	case LimitNegInf:
		return "-oo"
	case LimitNone:
		return "does not exist"
	}
	if r.Value == nil {
		return ""
	}
	return r.Value.String()
}

// Limit computes the limit of expr as varName approaches point. It tries
// direct substitution, L'Hôpital on 0/0 quotients and Taylor expansion,
// then falls back to probing both sides numerically. A symbolic value is
// rejected when the two sides visibly disagree.
func Limit(expr Expr, varName string, point LimitPoint) LimitResult {
	expr = expr.Simplify()
	if point.Infinity != 0 {
		return limitAtInfinity(expr, varName, point.Infinity)
	}
	approach := approachFinite(expr, varName, point.At)
	sym := limitRecursive(expr, varName, point.At, 5)
	if sym.Success {
		if approach.Kind == LimitNone && approach.Success {
			return approach
		}
		return sym
	}
	if approach.Success {
		return approach
	}
	return sym
}

func limitAtInfinity(expr Expr, varName string, sign int) LimitResult {
	t := "_" + varName
	substituted := expr.Sub(varName, MulOf(N(int64(sign)), PowOf(S(t), N(-1))))
	sym := limitRecursive(substituted, t, N(0), 5)
	approach := approachInfinite(expr, varName, sign)
	diverges := approach.Success && (approach.Kind == LimitPosInf || approach.Kind == LimitNegInf)
	if sym.Success && !diverges {
		return sym
	}
	if approach.Success {
		return approach
	}
	return LimitResult{Error: "limit could not be determined: " + expr.String() + " as " + varName + " -> " + InfinitePoint(sign).String()}
}

func limitRecursive(expr Expr, varName string, point Expr, maxLhopital int) LimitResult {
	expr = expr.Simplify()
	subbed := expr.Sub(varName, point).Simplify()
	if !isUndefined(subbed) {
		if v, ok := subbed.Eval(); ok {
			f := v.Float64()
			if !math.IsNaN(f) && !math.IsInf(f, 0) {
				return LimitResult{Value: subbed, Success: true}
			}
		} else if !hasSymbol(subbed, varName) && len(FreeSymbols(subbed)) > 0 {
			return LimitResult{Value: subbed, Success: true}
		}
	}
	if maxLhopital > 0 {
		if num, denom, ok := extractQuotient(expr); ok {
			nv, nok := num.Sub(varName, point).Simplify().Eval()
			dv, dok := denom.Sub(varName, point).Simplify().Eval()
			if nok && dok && nv.IsZero() && dv.IsZero() {
				dNum := Diff(num, varName)
				dDen := Diff(denom, varName)
				return limitRecursive(MulOf(dNum, PowOf(dDen, N(-1))), varName, point, maxLhopital-1)
			}
		}
	}
	if _, ok := point.Eval(); ok {
		series := TaylorSeries(expr, varName, point, 4)
		subSeries := series.Sub(varName, point).Simplify()
		if !isUndefined(subSeries) {
			if v, ok2 := subSeries.Eval(); ok2 {
				f := v.Float64()
				if !math.IsNaN(f) && !math.IsInf(f, 0) {
					return LimitResult{Value: subSeries, Success: true}
				}
			}
		}
	}
	return LimitResult{
		Error: "limit could not be determined: " + expr.String() + " as " + varName + " -> " + point.String(),
	}
}

func extractQuotient(e Expr) (num, denom Expr, ok bool) {
	if p, isPow := e.(*Pow); isPow {
		if en, isNum := p.exp.(*Num); isNum && en.IsNegOne() {
			return N(1), p.base, true
		}
		return nil, nil, false
	}
	m, isMul := e.(*Mul)
	if !isMul {
		return nil, nil, false
	}
	var numFactors, denomFactors []Expr
	for _, f := range m.factors {
		if p, isPow := f.(*Pow); isPow {
			if en, isNum := p.exp.(*Num); isNum && en.IsNegative() {
				denomFactors = append(denomFactors, PowOf(p.base, numNeg(en)))
				continue
			}
		}
		numFactors = append(numFactors, f)
	}
	if len(denomFactors) == 0 {
		return nil, nil, false
	}
	return MulOf(numFactors...), MulOf(denomFactors...), true
}

// ============================================================
// Numeric probing
// ============================================================

func evalAt(expr Expr, varName string, x float64) (float64, bool) {
	xn, ok := floatNum(x)
	if !ok {
		return 0, false
	}
	v, ok := expr.Sub(varName, xn).Eval()
	if !ok {
		return 0, false
	}
	f := v.Float64()
	return f, !math.IsNaN(f) && !math.IsInf(f, 0)
}

// roundSig rounds to 9 significant digits so converged approaches print cleanly.
func roundSig(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 9, 64), 64)
	return r
}

const divergeThreshold = 1e5

func approachFinite(expr Expr, varName string, point Expr) LimitResult {
	p, ok := point.Eval()
	if !ok {
		return LimitResult{}
	}
	x0 := p.Float64()
	l1, okl1 := evalAt(expr, varName, x0-1e-4)
	r1, okr1 := evalAt(expr, varName, x0+1e-4)
	l2, okl2 := evalAt(expr, varName, x0-1e-7)
	r2, okr2 := evalAt(expr, varName, x0+1e-7)
	if !okl1 || !okr1 || !okl2 || !okr2 {
		return LimitResult{}
	}
	leftGrows := math.Abs(l2) > divergeThreshold && math.Abs(l2) > math.Abs(l1)
	rightGrows := math.Abs(r2) > divergeThreshold && math.Abs(r2) > math.Abs(r1)
	switch {
	case leftGrows && rightGrows:
		if l2 > 0 && r2 > 0 {
			return LimitResult{Kind: LimitPosInf, Success: true}
		}
		if l2 < 0 && r2 < 0 {
			return LimitResult{Kind: LimitNegInf, Success: true}
		}
		return LimitResult{Kind: LimitNone, Success: true}
	case leftGrows || rightGrows:
		return LimitResult{Kind: LimitNone, Success: true}
	}
	scale := math.Max(1, math.Abs(l2))
	if math.Abs(l2-r2) <= 1e-4*scale {
		v, _ := floatNum(roundSig((l2 + r2) / 2))
		return LimitResult{Value: v, Success: true}
	}
	if math.Abs(l1-r1) > 1e-3*scale && math.Abs(l2-r2) > 1e-3*scale {
		return LimitResult{Kind: LimitNone, Success: true}
	}
	return LimitResult{}
}

func approachInfinite(expr Expr, varName string, sign int) LimitResult {
	s := float64(sign)
	v1, ok1 := evalAt(expr, varName, s*1e4)
	v2, ok2 := evalAt(expr, varName, s*1e6)
	v3, ok3 := evalAt(expr, varName, s*1e8)
	if !ok1 || !ok2 || !ok3 {
		return LimitResult{}
	}
	if math.Abs(v3) > divergeThreshold && math.Abs(v3) > math.Abs(v2) && math.Abs(v2) > math.Abs(v1) {
		if v3 > 0 {
			return LimitResult{Kind: LimitPosInf, Success: true}
		}
		return LimitResult{Kind: LimitNegInf, Success: true}
	}
	if math.Abs(v3-v2) <= 1e-3*math.Max(1, math.Abs(v3)) {
		v, _ := floatNum(roundSig(v3))
		return LimitResult{Value: v, Success: true}
	}
	return LimitResult{Kind: LimitNone, Success: true}
}
