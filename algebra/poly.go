package algebra

import (
	"math/big"
	"sort"
)

// ============================================================
// Polynomial utilities
// ============================================================

func Degree(expr Expr, varName string) int {
	expr = expr.Simplify()
	switch v := expr.(type) {
	case *Sym:
		if v.name == varName {
			return 1
		}
		return 0
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == varName {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() {
				return int(n.val.Num().Int64())
			}
		}
		return 0
	case *Add:
		maxDeg := 0
		for _, t := range v.terms {
			if d := Degree(t, varName); d > maxDeg {
				maxDeg = d
			}
		}
		return maxDeg
	case *Mul:
		totalDeg := 0
		for _, f := range v.factors {
			totalDeg += Degree(f, varName)
		}
		return totalDeg
	}
	return 0
}

// isPolynomial reports whether e is a polynomial in varName: the variable
// appears only under non-negative integer powers.
func isPolynomial(e Expr, varName string) bool {
	if !hasSymbol(e, varName) {
		return true
	}
	switch v := e.(type) {
	case *Sym:
		return true
	case *Add:
		for _, t := range v.terms {
			if !isPolynomial(t, varName) {
				return false
			}
		}
		return true
	case *Mul:
		for _, f := range v.factors {
			if !isPolynomial(f, varName) {
				return false
			}
		}
		return true
	case *Pow:
		n, ok := v.exp.(*Num)
		return ok && n.Exact() && n.IsInteger() && !n.IsNegative() && isPolynomial(v.base, varName)
	}
	return false
}

type PolyCoeffsResult map[int]Expr

// PolyCoeffs maps each degree of varName to its coefficient. expr should
// already be expanded.
func PolyCoeffs(expr Expr, varName string) PolyCoeffsResult {
	result := PolyCoeffsResult{}
	extractCoeffs(expr.Simplify(), varName, result)
	return result
}

func extractCoeffs(e Expr, varName string, out PolyCoeffsResult) {
	switch v := e.(type) {
	case *Sym:
		if v.name == varName {
			addCoeff(out, 1, N(1))
		} else {
			addCoeff(out, 0, v)
		}
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == varName {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() {
				addCoeff(out, int(n.val.Num().Int64()), N(1))
				return
			}
		}
		addCoeff(out, 0, e)
	case *Mul:
		deg := 0
		coeffFactors := []Expr{}
		for _, f := range v.factors {
			if d := Degree(f, varName); d > 0 {
				deg += d
			} else {
				coeffFactors = append(coeffFactors, f)
			}
		}
		addCoeff(out, deg, MulOf(coeffFactors...))
	case *Add:
		for _, t := range v.terms {
			extractCoeffs(t, varName, out)
		}
	default:
		addCoeff(out, 0, e)
	}
}

func addCoeff(out PolyCoeffsResult, deg int, val Expr) {
	if existing, ok := out[deg]; ok {
		out[deg] = AddOf(existing, val)
	} else {
		out[deg] = val.Simplify()
	}
}

// exactCoeffs returns the coefficients from degree 0 up as exact
// rationals, or false when any coefficient is symbolic or approximate.
func exactCoeffs(coeffs PolyCoeffsResult) ([]*big.Rat, bool) {
	maxDeg := 0
	for d := range coeffs {
		if d < 0 {
			return nil, false
		}
		if d > maxDeg {
			maxDeg = d
		}
	}
	out := make([]*big.Rat, maxDeg+1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	for d, c := range coeffs {
		n, ok := c.(*Num)
		if !ok || !n.Exact() {
			return nil, false
		}
		out[d] = n.Rat()
	}
	for len(out) > 1 && out[len(out)-1].Sign() == 0 {
		out = out[:len(out)-1]
	}
	return out, true
}

func polyExpr(coeffs []*big.Rat, varName string) Expr {
	terms := make([]Expr, 0, len(coeffs))
	for d, c := range coeffs {
		if c.Sign() == 0 {
			continue
		}
		terms = append(terms, MulOf(NRat(c), PowOf(S(varName), N(int64(d)))))
	}
	return AddOf(terms...)
}

func hornerRat(coeffs []*big.Rat, x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, coeffs[i])
	}
	return acc
}

// deflate divides the polynomial by (x - r) for a known root r.
func deflate(coeffs []*big.Rat, r *big.Rat) []*big.Rat {
	n := len(coeffs) - 1
	out := make([]*big.Rat, n)
	carry := new(big.Rat)
	for i := n; i >= 1; i-- {
		carry = new(big.Rat).Add(coeffs[i], new(big.Rat).Mul(carry, r))
		out[i-1] = carry
	}
	return out
}

const maxRootSearch = 1_000_000

// rationalRoots finds the rational roots of a polynomial with rational
// coefficients and returns them with the remaining cofactor. Roots are
// reported with multiplicity.
func rationalRoots(coeffs []*big.Rat) (roots []*big.Rat, rest []*big.Rat) {
	rest = coeffs
	for len(rest) > 1 && rest[0].Sign() == 0 {
		roots = append(roots, new(big.Rat))
		rest = rest[1:]
	}
	for len(rest) > 1 {
		ints := integerCoeffs(rest)
		lead, constant := new(big.Int).Abs(ints[len(ints)-1]), new(big.Int).Abs(ints[0])
		if !lead.IsInt64() || !constant.IsInt64() || lead.Int64() > maxRootSearch || constant.Int64() > maxRootSearch {
			return roots, rest
		}
		found := false
		for _, p := range divisors(constant.Int64()) {
			for _, q := range divisors(lead.Int64()) {
				for _, sign := range []int64{1, -1} {
					cand := big.NewRat(sign*p, q)
					if hornerRat(rest, cand).Sign() == 0 {
						roots = append(roots, cand)
						rest = deflate(rest, cand)
						found = true
						break
					}
				}
				if found {
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return roots, rest
		}
	}
	return roots, rest
}

func integerCoeffs(coeffs []*big.Rat) []*big.Int {
	lcm := big.NewInt(1)
	for _, c := range coeffs {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Quo(d, g))
	}
	out := make([]*big.Int, len(coeffs))
	for i, c := range coeffs {
		scaled := new(big.Rat).Mul(c, new(big.Rat).SetInt(lcm))
		out[i] = new(big.Int).Set(scaled.Num())
	}
	return out
}

func divisors(n int64) []int64 {
	if n == 0 {
		return []int64{1}
	}
	var small, large []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d == 0 {
			small = append(small, d)
			if d*d != n {
				large = append(large, n/d)
			}
		}
	}
	sort.Slice(large, func(i, j int) bool { return large[i] < large[j] })
	return append(small, large...)
}
