package algebra

import (
	"fmt"
	"math"
	"math/big"
	"sort"
)

// ============================================================
// Solvers
// ============================================================

// SolveResult holds the real solutions of an equation. AllValues marks an
// identity; Complex marks that non-real roots were discarded.
type SolveResult struct {
	Solutions []Expr
	ExactForm bool
	AllValues bool
	Complex   bool
	Error     string
}

// NewtonOptions tunes the numeric root sweep used when no closed form
// applies.
type NewtonOptions struct {
	SearchRange float64
	Tol         float64
	MaxIter     int
}

// Solve finds the real values of varName for which residual = 0.
// Polynomials are solved exactly where possible (rational roots, then the
// quadratic formula); other equations fall back to a Newton sweep.
func Solve(residual Expr, varName string, opts NewtonOptions) SolveResult {
	residual = Expand(residual)
	if !hasSymbol(residual, varName) {
		if n, ok := residual.(*Num); ok && n.IsZero() {
			return SolveResult{AllValues: true, ExactForm: true}
		}
		return SolveResult{ExactForm: true}
	}
	if !isPolynomial(residual, varName) {
		return SolvePolynomialNewton(residual, varName, opts.SearchRange, opts.Tol, opts.MaxIter)
	}
	coeffs := PolyCoeffs(residual, varName)
	if rats, ok := exactCoeffs(coeffs); ok {
		return solveRational(rats, varName, opts)
	}
	switch Degree(residual, varName) {
	case 1:
		return SolveLinear(coeffOrZero(coeffs, 1), coeffOrZero(coeffs, 0))
	case 2:
		return SolveQuadraticExact(coeffOrZero(coeffs, 2), coeffOrZero(coeffs, 1), coeffOrZero(coeffs, 0))
	}
	return SolvePolynomialNewton(residual, varName, opts.SearchRange, opts.Tol, opts.MaxIter)
}

func coeffOrZero(coeffs PolyCoeffsResult, d int) Expr {
	if c, ok := coeffs[d]; ok {
		return c
	}
	return N(0)
}

func solveRational(coeffs []*big.Rat, varName string, opts NewtonOptions) SolveResult {
	roots, rest := rationalRoots(coeffs)
	res := SolveResult{ExactForm: true}
	for _, r := range roots {
		res.Solutions = append(res.Solutions, NRat(r))
	}
	switch len(rest) - 1 {
	case 0:
	case 1:
		res.Solutions = append(res.Solutions, NRat(new(big.Rat).Quo(new(big.Rat).Neg(rest[0]), rest[1])))
	case 2:
		sols, complexRoots := quadraticSurds(rest[2], rest[1], rest[0])
		res.Solutions = append(res.Solutions, sols...)
		res.Complex = complexRoots
	case 3:
		cubic := SolveCubic(NRat(rest[3]), NRat(rest[2]), NRat(rest[1]), NRat(rest[0]))
		res.Solutions = append(res.Solutions, cubic.Solutions...)
		res.Complex = len(cubic.Solutions) < 3
		res.ExactForm = false
	default:
		newton := SolvePolynomialNewton(polyExpr(rest, varName), varName, opts.SearchRange, opts.Tol, opts.MaxIter)
		res.Solutions = append(res.Solutions, newton.Solutions...)
		res.ExactForm = false
	}
	res.Solutions = uniqueSorted(res.Solutions)
	return res
}

// quadraticSurds solves a*x^2 + b*x + c = 0 exactly, writing irrational
// roots as p + q*sqrt(m).
func quadraticSurds(a, b, c *big.Rat) ([]Expr, bool) {
	disc := new(big.Rat).Mul(b, b)
	disc.Sub(disc, new(big.Rat).Mul(big.NewRat(4, 1), new(big.Rat).Mul(a, c)))
	if disc.Sign() < 0 {
		return nil, true
	}
	twoA := new(big.Rat).Mul(big.NewRat(2, 1), a)
	center := new(big.Rat).Quo(new(big.Rat).Neg(b), twoA)
	if disc.Sign() == 0 {
		return []Expr{NRat(center)}, false
	}
	// sqrt(p/q) = sqrt(p*q)/q
	pq := new(big.Int).Mul(disc.Num(), disc.Denom())
	k, m := squareFactor(pq)
	scale := new(big.Rat).Quo(new(big.Rat).SetInt(k), new(big.Rat).SetInt(disc.Denom()))
	scale.Quo(scale, twoA)
	if m.Cmp(big.NewInt(1)) == 0 {
		return []Expr{
			NRat(new(big.Rat).Add(center, scale)),
			NRat(new(big.Rat).Sub(center, scale)),
		}, false
	}
	surd := &Pow{base: &Num{val: new(big.Rat).SetInt(m)}, exp: F(1, 2)}
	return []Expr{
		AddOf(NRat(center), MulOf(NRat(scale), surd)),
		AddOf(NRat(center), MulOf(numNeg(NRat(scale)), surd)),
	}, false
}

// uniqueSorted drops duplicate roots and orders numeric roots ascending.
func uniqueSorted(sols []Expr) []Expr {
	seen := map[string]bool{}
	out := make([]Expr, 0, len(sols))
	for _, s := range sols {
		key := s.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	values := make([]float64, len(out))
	for i, s := range out {
		v, ok := s.Eval()
		if !ok {
			return out
		}
		values[i] = v.Float64()
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return values[idx[i]] < values[idx[j]] })
	sorted := make([]Expr, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}

func SolveLinear(a, b Expr) SolveResult {
	an, aok := a.Eval()
	bn, bok := b.Eval()
	if aok && bok {
		if an.IsZero() {
			if bn.IsZero() {
				return SolveResult{AllValues: true, ExactForm: true}
			}
			return SolveResult{ExactForm: true}
		}
		return SolveResult{Solutions: []Expr{numMul(numNeg(bn), numRecip(an))}, ExactForm: true}
	}
	return SolveResult{Solutions: []Expr{MulOf(N(-1), b, PowOf(a, N(-1)))}, ExactForm: false}
}

func SolveQuadraticExact(a, b, c Expr) SolveResult {
	an, aok := a.Eval()
	bn, bok := b.Eval()
	cn, cok := c.Eval()
	if !aok || !bok || !cok {
		disc := AddOf(PowOf(b, N(2)), MulOf(N(-4), a, c))
		denom := MulOf(N(2), a)
		x1 := MulOf(AddOf(MulOf(N(-1), b), SqrtOf(disc)), PowOf(denom, N(-1)))
		x2 := MulOf(AddOf(MulOf(N(-1), b), MulOf(N(-1), SqrtOf(disc))), PowOf(denom, N(-1)))
		return SolveResult{Solutions: []Expr{x1, x2}, ExactForm: true}
	}
	if an.IsZero() {
		return SolveLinear(b, c)
	}
	if an.Exact() && bn.Exact() && cn.Exact() {
		sols, complexRoots := quadraticSurds(an.val, bn.val, cn.val)
		return SolveResult{Solutions: uniqueSorted(sols), ExactForm: true, Complex: complexRoots}
	}
	af, bf, cf := an.Float64(), bn.Float64(), cn.Float64()
	disc := bf*bf - 4*af*cf
	if disc < 0 {
		return SolveResult{Complex: true, Error: fmt.Sprintf("complex roots: %g ± %gi", -bf/(2*af), math.Sqrt(-disc)/(2*af))}
	}
	sq := math.Sqrt(disc)
	return SolveResult{Solutions: uniqueSorted([]Expr{NFloat((-bf - sq) / (2 * af)), NFloat((-bf + sq) / (2 * af))})}
}

func SolveCubic(a, b, c, d Expr) SolveResult {
	an, aok := a.Eval()
	bn, bok := b.Eval()
	cn, cok := c.Eval()
	dn, dok := d.Eval()
	if !aok || !bok || !cok || !dok {
		return SolveResult{Error: "SolveCubic requires numeric coefficients"}
	}
	af, bf, cf, df := an.Float64(), bn.Float64(), cn.Float64(), dn.Float64()
	if af == 0 {
		return SolveQuadraticExact(b, c, d)
	}
	p := (3*af*cf - bf*bf) / (3 * af * af)
	q := (2*bf*bf*bf - 9*af*bf*cf + 27*af*af*df) / (27 * af * af * af)
	offset := bf / (3 * af)
	disc := -(4*p*p*p + 27*q*q)

	var roots []Expr
	switch {
	case disc > 0:
		m := 2 * math.Sqrt(-p/3)
		theta := math.Acos(3*q/(p*m)) / 3
		for k := 0; k < 3; k++ {
			roots = append(roots, NFloat(m*math.Cos(theta-2*math.Pi*float64(k)/3)-offset))
		}
	case disc == 0:
		if q == 0 {
			roots = []Expr{NFloat(-offset)}
		} else {
			roots = []Expr{NFloat(3*q/p - offset), NFloat(-3*q/(2*p) - offset)}
		}
	default:
		A := math.Cbrt(-q/2 + math.Sqrt(q*q/4+p*p*p/27))
		B := 0.0
		if A != 0 {
			B = -p / (3 * A)
		}
		return SolveResult{Solutions: []Expr{NFloat(A + B - offset)}, Complex: true}
	}
	return SolveResult{Solutions: uniqueSorted(roots)}
}

// SolvePolynomialNewton sweeps Newton starts across [-searchRange,
// searchRange] and keeps the distinct roots that land inside it.
func SolvePolynomialNewton(expr Expr, varName string, searchRange, tol float64, maxIter int) SolveResult {
	if searchRange <= 0 {
		searchRange = 100
	}
	if tol <= 0 {
		tol = 1e-10
	}
	if maxIter <= 0 {
		maxIter = 100
	}
	deriv := Diff(expr, varName)
	at := func(e Expr, x float64) float64 {
		xn, ok := floatNum(x)
		if !ok {
			return math.NaN()
		}
		if n, ok := e.Sub(varName, xn).Eval(); ok {
			return n.Float64()
		}
		return math.NaN()
	}
	var roots []float64
	for i := 0; i <= 200; i++ {
		x := -searchRange + 2*searchRange*float64(i)/200
		for iter := 0; iter < maxIter; iter++ {
			fx := at(expr, x)
			if math.IsNaN(fx) {
				break
			}
			if math.Abs(fx) < tol {
				if math.Abs(x) > searchRange {
					break
				}
				dup := false
				for _, r := range roots {
					if math.Abs(r-x) < math.Max(tol*100, 1e-7) {
						dup = true
						break
					}
				}
				if !dup {
					roots = append(roots, x)
				}
				break
			}
			dfx := at(deriv, x)
			if math.IsNaN(dfx) || math.Abs(dfx) < 1e-15 {
				break
			}
			x -= fx / dfx
			if math.Abs(x) > searchRange*10 {
				break
			}
		}
	}
	sort.Float64s(roots)
	solutions := make([]Expr, len(roots))
	for i, r := range roots {
		solutions[i] = NFloat(r)
	}
	return SolveResult{Solutions: solutions}
}
