package algebra

import (
	"math"
)

// ============================================================
// Top-level convenience functions
// ============================================================

func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}

func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

func DiffN(expr Expr, varName string, n int) Expr {
	result := expr
	for i := 0; i < n; i++ {
		result = Diff(result, varName)
	}
	return result
}

func Expand(e Expr) Expr { return expandExpr(e).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		expanded := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			expanded[i] = expandExpr(f)
		}
		for i, f := range expanded {
			if a, ok := f.(*Add); ok {
				rest := make([]Expr, 0, len(expanded)-1)
				for j, ef := range expanded {
					if j != i {
						rest = append(rest, ef)
					}
				}
				terms := make([]Expr, len(a.terms))
				for k, t := range a.terms {
					terms[k] = expandExpr(MulOf(append([]Expr{t}, rest...)...))
				}
				return expandExpr(AddOf(terms...))
			}
		}
		return MulOf(expanded...)
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.Exact() {
			exp := n.val.Num().Int64()
			base := expandExpr(v.base)
			if _, isAdd := base.(*Add); isAdd && exp >= 0 && exp <= 10 {
				result := Expr(N(1))
				for i := int64(0); i < exp; i++ {
					result = distribute(result, base)
				}
				return result
			}
			return PowOf(base, v.exp)
		}
		return PowOf(expandExpr(v.base), expandExpr(v.exp))
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	}
	return e
}

// distribute multiplies two expanded expressions term by term. Building
// the product with MulOf would fold equal sums back into a power.
func distribute(a, b Expr) Expr {
	terms := func(e Expr) []Expr {
		if s, ok := e.(*Add); ok {
			return s.terms
		}
		return []Expr{e}
	}
	var products []Expr
	for _, ta := range terms(a) {
		for _, tb := range terms(b) {
			products = append(products, MulOf(ta, tb))
		}
	}
	return AddOf(products...)
}

// ============================================================
// Free Symbols
// ============================================================

func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

func hasSymbol(e Expr, varName string) bool {
	_, ok := FreeSymbols(e)[varName]
	return ok
}

// ============================================================
// Integration (rule-based symbolic + numerical)
// ============================================================

// Integrate returns an antiderivative of expr without the constant of
// integration. The bool is false when no rule applies.
func Integrate(expr Expr, varName string) (Expr, bool) {
	expr = expr.Simplify()
	x := S(varName)
	if !hasSymbol(expr, varName) {
		return MulOf(expr, x), true
	}
	switch v := expr.(type) {
	case *Sym:
		return MulOf(F(1, 2), PowOf(x, N(2))), true
	case *Pow:
		if n, ok := v.exp.(*Num); ok {
			if a, _, lin := linearCoeffs(v.base, varName); lin {
				if n.IsNegOne() {
					return MulOf(numRecip(a), LnOf(AbsOf(v.base))), true
				}
				newExp := numAdd(n, N(1))
				return MulOf(numRecip(numMul(a, newExp)), PowOf(v.base, newExp)), true
			}
		}
		if !hasSymbol(v.base, varName) {
			if a, _, lin := linearCoeffs(v.exp, varName); lin {
				return MulOf(PowOf(v.base, v.exp), PowOf(MulOf(a, LnOf(v.base)), N(-1))), true
			}
		}
		return nil, false
	case *Mul:
		constant := []Expr{}
		rest := []Expr{}
		for _, f := range v.factors {
			if hasSymbol(f, varName) {
				rest = append(rest, f)
			} else {
				constant = append(constant, f)
			}
		}
		if len(constant) == 0 {
			return integrateProduct(rest, varName)
		}
		intInner, ok := Integrate(MulOf(rest...), varName)
		if !ok {
			return nil, false
		}
		return MulOf(append(constant, intInner)...), true
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			intT, ok := Integrate(t, varName)
			if !ok {
				return nil, false
			}
			terms[i] = intT
		}
		return AddOf(terms...), true
	case *Func:
		return integrateFunc(v, varName)
	}
	return nil, false
}

// integrateProduct handles products with no constant factor by expanding
// polynomial products.
func integrateProduct(factors []Expr, varName string) (Expr, bool) {
	product := MulOf(factors...)
	expanded := Expand(product)
	if expanded.Equal(product) {
		return nil, false
	}
	return Integrate(expanded, varName)
}

func integrateFunc(f *Func, varName string) (Expr, bool) {
	x := S(varName)
	u := f.arg
	a, _, lin := linearCoeffs(u, varName)
	if lin {
		inv := numRecip(a)
		switch f.name {
		case "sin":
			return MulOf(numNeg(inv), CosOf(u)), true
		case "cos":
			return MulOf(inv, SinOf(u)), true
		case "exp":
			return MulOf(inv, ExpOf(u)), true
		case "sinh":
			return MulOf(inv, CoshOf(u)), true
		case "cosh":
			return MulOf(inv, SinhOf(u)), true
		case "tan":
			return MulOf(numNeg(inv), LnOf(AbsOf(CosOf(u)))), true
		}
	}
	if sym, ok := u.(*Sym); ok && sym.name == varName {
		switch f.name {
		case "ln":
			return AddOf(MulOf(x, LnOf(x)), MulOf(N(-1), x)), true
		case "asin":
			return AddOf(
				MulOf(x, AsinOf(x)),
				SqrtOf(AddOf(N(1), MulOf(N(-1), PowOf(x, N(2))))),
			), true
		case "acos":
			return AddOf(
				MulOf(x, AcosOf(x)),
				MulOf(N(-1), SqrtOf(AddOf(N(1), MulOf(N(-1), PowOf(x, N(2)))))),
			), true
		case "atan":
			return AddOf(
				MulOf(x, AtanOf(x)),
				MulOf(F(-1, 2), LnOf(AddOf(N(1), PowOf(x, N(2))))),
			), true
		}
	}
	return nil, false
}

// linearCoeffs matches e = a*x + b with exact numeric a != 0 and b.
func linearCoeffs(e Expr, varName string) (a, b *Num, ok bool) {
	if !isPolynomial(e, varName) {
		return nil, nil, false
	}
	coeffs := PolyCoeffs(Expand(e), varName)
	for d := range coeffs {
		if d > 1 || d < 0 {
			return nil, nil, false
		}
	}
	an, aok := coeffs[1].(*Num)
	if !aok || an.IsZero() {
		return nil, nil, false
	}
	bn := N(0)
	if c, present := coeffs[0]; present {
		n, isNum := c.(*Num)
		if !isNum {
			return nil, nil, false
		}
		bn = n
	}
	return an, bn, true
}

var (
	gaussNodes = []float64{
		-0.9739065285171717, -0.8650633666889845, -0.6794095682990244,
		-0.4333953941292472, -0.1488743389816312, 0.1488743389816312,
		0.4333953941292472, 0.6794095682990244, 0.8650633666889845, 0.9739065285171717,
	}
	gaussWeights = []float64{
		0.0666713443086881, 0.1494513491505806, 0.2190863625159820,
		0.2692667193099963, 0.2955242247147529, 0.2955242247147529,
		0.2692667193099963, 0.2190863625159820, 0.1494513491505806, 0.0666713443086881,
	}
)

// DefiniteIntegrate approximates the integral of expr over [a, b] with
// composite 10-point Gauss-Legendre quadrature on the given number of
// panels. The bool is false when expr cannot be evaluated at a node.
func DefiniteIntegrate(expr Expr, varName string, a, b float64, panels int) (float64, bool) {
	if panels <= 0 {
		panels = 16
	}
	width := (b - a) / float64(panels)
	total := 0.0
	for p := 0; p < panels; p++ {
		lo := a + width*float64(p)
		mid := lo + width/2
		half := width / 2
		sum := 0.0
		for i, t := range gaussNodes {
			xi, ok := floatNum(mid + half*t)
			if !ok {
				return 0, false
			}
			v, ok := expr.Sub(varName, xi).Eval()
			if !ok {
				return 0, false
			}
			sum += gaussWeights[i] * v.Float64()
		}
		total += half * sum
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, false
	}
	return total, true
}

// ============================================================
// Taylor series
// ============================================================

func TaylorSeries(expr Expr, varName string, a Expr, order int) Expr {
	terms := []Expr{}
	current := expr
	factorial := N(1)
	for k := 0; k <= order; k++ {
		if k > 0 {
			factorial = numMul(factorial, N(int64(k)))
		}
		coeff := MulOf(current.Sub(varName, a), numRecip(factorial))
		if n, ok := coeff.(*Num); ok && n.IsZero() {
			current = Diff(current, varName)
			continue
		}
		shift := AddOf(S(varName), MulOf(N(-1), a))
		terms = append(terms, MulOf(coeff, PowOf(shift, N(int64(k)))))
		current = Diff(current, varName)
	}
	return AddOf(terms...)
}
