package algebra

import (
	"math"
	"sort"
)

// ============================================================
// Singularities of an integrand
// ============================================================

// SingularityKind classifies how an integrand behaves next to a point where
// it is unbounded.
type SingularityKind int

const (
	// SingularIntegrable: the integrand blows up slower than 1/|x-c|.
	SingularIntegrable SingularityKind = iota
	// SingularPositive: the integral diverges to +infinity.
	SingularPositive
	// SingularNegative: the integral diverges to -infinity.
	SingularNegative
	// SingularDivergent: the integrand diverges with opposite signs on the
	// two sides, so the integral has no value.
	SingularDivergent
)

// Singularity is a point of [a, b] where the integrand is unbounded.
type Singularity struct {
	At   float64
	Kind SingularityKind
}

// divergenceOrder is the growth order |f| ~ |x-c|^-p at or above which the
// integral over a neighbourhood of c diverges. It sits a little under 1 to
// absorb the error of the two-point estimate.
const divergenceOrder = 0.95

// Singularities finds the points of [a, b] where a denominator, a tan or a
// logarithm of expr vanishes, and classifies each. Points are solved with
// the kernel solver, so non-polynomial denominators rely on the Newton sweep.
func Singularities(expr Expr, varName string, a, b float64, opts NewtonOptions) []Singularity {
	if a > b {
		a, b = b, a
	}
	if r := math.Max(math.Abs(a), math.Abs(b)); r > opts.SearchRange {
		opts.SearchRange = r
	}
	var zeros []Expr
	collectVanishing(expr, varName, &zeros)

	var points []float64
	for _, z := range zeros {
		for _, s := range Solve(z, varName, opts).Solutions {
			v, ok := s.Eval()
			if !ok {
				continue
			}
			c := v.Float64()
			if c >= a && c <= b {
				points = append(points, c)
			}
		}
	}
	sort.Float64s(points)

	var out []Singularity
	for i, c := range points {
		if i > 0 && math.Abs(c-points[i-1]) <= 1e-9*math.Max(1, math.Abs(c)) {
			continue
		}
		out = append(out, Singularity{At: c, Kind: classifySingularity(expr, varName, c, a, b)})
	}
	return out
}

// collectVanishing appends every subexpression whose zeros make expr
// unbounded.
func collectVanishing(e Expr, varName string, out *[]Expr) {
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			collectVanishing(t, varName, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectVanishing(f, varName, out)
		}
	case *Pow:
		collectVanishing(v.base, varName, out)
		collectVanishing(v.exp, varName, out)
		if n, ok := v.exp.Eval(); ok && n.IsNegative() && hasSymbol(v.base, varName) {
			*out = append(*out, v.base)
		}
	case *Func:
		collectVanishing(v.arg, varName, out)
		if !hasSymbol(v.arg, varName) {
			return
		}
		switch v.name {
		case "tan":
			*out = append(*out, CosOf(v.arg))
		case "ln":
			*out = append(*out, v.arg)
		}
	}
}

// classifySingularity estimates the growth order of expr on each side of c
// that lies inside [a, b] from two samples close to c.
func classifySingularity(expr Expr, varName string, c, a, b float64) SingularityKind {
	at := func(x float64) (float64, bool) {
		xn, ok := floatNum(x)
		if !ok {
			return 0, false
		}
		n, ok := expr.Sub(varName, xn).Eval()
		if !ok {
			return 0, false
		}
		return n.Float64(), true
	}

	signs := map[int]bool{}
	for _, side := range []float64{-1, 1} {
		room := b - c
		if side < 0 {
			room = c - a
		}
		if room <= 0 {
			continue
		}
		near := math.Min(1e-3, room/2)
		nearer := near * 1e-3
		f1, ok1 := at(c + side*near)
		f2, ok2 := at(c + side*nearer)
		if !ok1 || !ok2 {
			continue
		}
		if math.IsInf(f2, 0) || math.IsNaN(f2) {
			signs[sign(f2)] = true
			continue
		}
		if f1 == 0 || math.Abs(f2) <= math.Abs(f1) {
			continue
		}
		order := math.Log(math.Abs(f2)/math.Abs(f1)) / math.Log(near/nearer)
		if order >= divergenceOrder {
			signs[sign(f2)] = true
		}
	}
	switch {
	case len(signs) == 0:
		return SingularIntegrable
	case len(signs) > 1 || signs[0]:
		return SingularDivergent
	case signs[1]:
		return SingularPositive
	}
	return SingularNegative
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
