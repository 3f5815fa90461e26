package algebra

import (
	"math"
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Simplify flattens nested sums, folds numbers and merges like terms.
func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}
	type like struct {
		coeff *Num
		rest  Expr
	}
	numAccum := N(0)
	groups := map[string]*like{}
	order := []string{}
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, n)
			continue
		}
		coeff, rest := extractCoefficient(t)
		key := rest.String()
		g, seen := groups[key]
		if !seen {
			g = &like{coeff: N(0), rest: rest}
			groups[key] = g
			order = append(order, key)
		}
		g.coeff = numAdd(g.coeff, coeff)
	}
	sort.SliceStable(order, func(i, j int) bool {
		wi, wj := termWeight(groups[order[i]].rest), termWeight(groups[order[j]].rest)
		if wi != wj {
			return wi > wj
		}
		return order[i] < order[j]
	})
	result := []Expr{}
	for _, key := range order {
		g := groups[key]
		if g.coeff.IsZero() && !isUndefined(g.rest) {
			continue
		}
		if g.coeff.IsOne() {
			result = append(result, g.rest)
		} else {
			result = append(result, MulOf(g.coeff, g.rest))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return numAccum
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

// termWeight orders terms of a sum by descending polynomial degree.
func termWeight(e Expr) float64 {
	switch v := e.(type) {
	case *Num, *Const:
		return 0
	case *Sym, *Func:
		return 1
	case *Pow:
		if en, ok := v.exp.(*Num); ok {
			return en.Float64() * math.Max(termWeight(v.base), 1)
		}
		return 1
	case *Mul:
		w := 0.0
		for _, f := range v.factors {
			w += termWeight(f)
		}
		return w
	case *Add:
		w := 0.0
		for _, t := range v.terms {
			w = math.Max(w, termWeight(t))
		}
		return w
	}
	return 0
}

// negated returns -t when t prints with a leading minus sign.
func negated(t Expr) (Expr, bool) {
	switch v := t.(type) {
	case *Num:
		if v.IsNegative() {
			return numNeg(v), true
		}
	case *Mul:
		if c, ok := v.factors[0].(*Num); ok && c.IsNegative() {
			nc := numNeg(c)
			rest := v.factors[1:]
			if nc.IsOne() {
				if len(rest) == 1 {
					return rest[0], true
				}
				return &Mul{factors: rest}, true
			}
			return &Mul{factors: append([]Expr{nc}, rest...)}, true
		}
	}
	return nil, false
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		if i > 0 {
			if neg, ok := negated(t); ok {
				sb.WriteString(" - ")
				if _, isAdd := neg.(*Add); isAdd {
					sb.WriteString("(" + neg.String() + ")")
				} else {
					sb.WriteString(neg.String())
				}
				continue
			}
			sb.WriteString(" + ")
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

func (a *Add) LaTeX() string {
	var sb strings.Builder
	for i, t := range a.terms {
		if i > 0 {
			if neg, ok := negated(t); ok {
				sb.WriteString(" - " + neg.LaTeX())
				continue
			}
			sb.WriteString(" + ")
		}
		sb.WriteString(t.LaTeX())
	}
	return sb.String()
}

func (a *Add) Sub(varName string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Sub(varName, value)
	}
	return AddOf(newTerms...)
}

func (a *Add) Diff(varName string) Expr {
	dTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		dTerms[i] = t.Diff(varName)
	}
	return AddOf(dTerms...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) Terms() []Expr { return a.terms }

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Simplify flattens nested products, folds numbers into a leading
// coefficient and merges factors with a common base into one power.
func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	type powers struct {
		base  Expr
		exps  []Expr
		first Expr
	}
	coeff := N(1)
	groups := map[string]*powers{}
	order := []string{}
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
			continue
		}
		base, exp := f, Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		key := base.String()
		g, seen := groups[key]
		if !seen {
			g = &powers{base: base, first: f}
			groups[key] = g
			order = append(order, key)
		}
		g.exps = append(g.exps, exp)
	}
	others := []Expr{}
	for _, key := range order {
		g := groups[key]
		combined := g.first
		if len(g.exps) > 1 {
			combined = PowOf(g.base, AddOf(g.exps...))
		}
		switch c := combined.(type) {
		case *Num:
			coeff = numMul(coeff, c)
		case *Mul:
			for _, f := range c.factors {
				if n, ok := f.(*Num); ok {
					coeff = numMul(coeff, n)
				} else {
					others = append(others, f)
				}
			}
		default:
			others = append(others, combined)
		}
	}
	if coeff.IsZero() {
		for _, f := range others {
			if isUndefined(f) {
				return &Mul{factors: append([]Expr{coeff}, others...)}
			}
		}
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	sorted := make([]Expr, len(ks))
	for i := range ks {
		sorted[i] = ks[i].e
	}

	if coeff.IsOne() {
		if len(sorted) == 1 {
			return sorted[0]
		}
		return &Mul{factors: sorted}
	}
	return &Mul{factors: append([]Expr{coeff}, sorted...)}
}

// split separates the numeric coefficient (1 if absent) from the factors.
func (m *Mul) split() (*Num, []Expr) {
	if c, ok := m.factors[0].(*Num); ok {
		return c, m.factors[1:]
	}
	return N(1), m.factors
}

// fraction splits a product into numerator and denominator factors.
func (m *Mul) fraction() (coeff *Num, numer, denom []Expr) {
	coeff, factors := m.split()
	for _, f := range factors {
		if p, ok := f.(*Pow); ok {
			if en, ok2 := p.exp.(*Num); ok2 && en.IsNegative() {
				denom = append(denom, rawPow(p.base, numNeg(en)))
				continue
			}
		}
		numer = append(numer, f)
	}
	return coeff, numer, denom
}

func rawPow(base Expr, exp *Num) Expr {
	if exp.IsOne() {
		return base
	}
	return &Pow{base: base, exp: exp}
}

func (m *Mul) String() string {
	coeff, numer, denom := m.fraction()
	sign := ""
	if coeff.IsNegative() {
		sign = "-"
		coeff = numNeg(coeff)
	}
	parts := []string{}
	if coeff.approx {
		if !coeff.IsOne() {
			parts = append(parts, coeff.String())
		}
	} else {
		if p := coeff.val.Num(); p.Cmp(big.NewInt(1)) != 0 {
			parts = append(parts, p.String())
		}
		if q := coeff.val.Denom(); q.Cmp(big.NewInt(1)) != 0 {
			denom = append([]Expr{&Num{val: new(big.Rat).SetInt(q)}}, denom...)
		}
	}
	for _, f := range numer {
		if _, isAdd := f.(*Add); isAdd {
			parts = append(parts, "("+f.String()+")")
		} else {
			parts = append(parts, f.String())
		}
	}
	out := strings.Join(parts, "*")
	if out == "" {
		out = "1"
	}
	if len(denom) > 0 {
		out += "/" + denominatorString(denom)
	}
	return sign + out
}

func denominatorString(denom []Expr) string {
	if len(denom) == 1 {
		switch denom[0].(type) {
		case *Add, *Mul:
			return "(" + denom[0].String() + ")"
		}
		return denom[0].String()
	}
	parts := make([]string, len(denom))
	for i, d := range denom {
		if _, isAdd := d.(*Add); isAdd {
			parts[i] = "(" + d.String() + ")"
		} else {
			parts[i] = d.String()
		}
	}
	return "(" + strings.Join(parts, "*") + ")"
}

func (m *Mul) LaTeX() string {
	coeff, numer, denom := m.fraction()
	sign := ""
	if coeff.IsNegative() {
		sign = "-"
		coeff = numNeg(coeff)
	}
	latexJoin := func(fs []Expr) string {
		parts := make([]string, len(fs))
		for i, f := range fs {
			if _, isAdd := f.(*Add); isAdd {
				parts[i] = "\\left(" + f.LaTeX() + "\\right)"
			} else {
				parts[i] = f.LaTeX()
			}
		}
		return strings.Join(parts, " ")
	}
	if !coeff.IsOne() {
		numer = append([]Expr{coeff}, numer...)
	}
	top := latexJoin(numer)
	if top == "" {
		top = "1"
	}
	if len(denom) == 0 {
		return sign + top
	}
	return sign + "\\frac{" + top + "}{" + latexJoin(denom) + "}"
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(varName)
		others := make([]Expr, 0, len(m.factors)-1)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		if len(others) == 0 {
			terms[i] = dfi
		} else {
			terms[i] = MulOf(append([]Expr{dfi}, others...)...)
		}
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) Factors() []Expr { return m.factors }

// ============================================================
// Pow: base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if base.Equal(E) {
		return ExpOf(exp)
	}
	en, expIsNum := exp.(*Num)
	if expIsNum && en.IsZero() {
		return N(1)
	}
	if expIsNum && en.IsOne() {
		return base
	}

	// 0^0 and 0^negative stay unevaluated so callers can detect them.
	if bn, ok := base.(*Num); ok && bn.IsZero() {
		if expIsNum && !en.IsPositive() {
			return &Pow{base: base, exp: exp}
		}
		return N(0)
	}
	if bn, ok := base.(*Num); ok && bn.IsOne() && bn.Exact() {
		return N(1)
	}
	if bn, ok := base.(*Num); ok && expIsNum {
		if folded, ok2 := foldNumPow(bn, en); ok2 {
			return folded
		}
	}
	if expIsNum && en.IsInteger() && en.Exact() {
		switch b := base.(type) {
		case *Pow:
			return PowOf(b.base, MulOf(b.exp, en))
		case *Mul:
			factors := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				factors[i] = PowOf(f, en)
			}
			return MulOf(factors...)
		}
	}
	return &Pow{base: base, exp: exp}
}

// foldNumPow evaluates num^num when the result is representable: integer
// exponents exactly, rational roots of perfect powers exactly, square
// roots by extracting square factors, and approximate operands in floats.
func foldNumPow(b, e *Num) (Expr, bool) {
	if b.approx || e.approx {
		bf, ef := b.Float64(), e.Float64()
		if bf < 0 && !e.IsInteger() {
			return nil, false
		}
		n, ok := floatNum(math.Pow(bf, ef))
		return n, ok
	}
	if e.IsInteger() {
		k := e.val.Num()
		if k.IsInt64() && k.Int64() >= -1024 && k.Int64() <= 1024 {
			return numPowInt(b, k.Int64()), true
		}
		return nil, false
	}
	if b.IsNegative() {
		return nil, false
	}
	q := e.val.Denom()
	if !q.IsInt64() || q.Int64() > 16 {
		return nil, false
	}
	root, ok := exactRoot(b.val, q.Int64())
	if ok {
		return numPowInt(&Num{val: root}, e.val.Num().Int64()), true
	}
	if q.Int64() == 2 && e.val.Num().Cmp(big.NewInt(1)) == 0 && b.val.IsInt() {
		k, rest := squareFactor(b.val.Num())
		if k.Cmp(big.NewInt(1)) != 0 {
			return &Mul{factors: []Expr{
				&Num{val: new(big.Rat).SetInt(k)},
				&Pow{base: &Num{val: new(big.Rat).SetInt(rest)}, exp: F(1, 2)},
			}}, true
		}
	}
	return nil, false
}

// exactRoot returns the q-th root of a non-negative rational when both its
// numerator and denominator are perfect q-th powers.
func exactRoot(r *big.Rat, q int64) (*big.Rat, bool) {
	num, ok := intRoot(r.Num(), q)
	if !ok {
		return nil, false
	}
	den, ok := intRoot(r.Denom(), q)
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

func intRoot(n *big.Int, q int64) (*big.Int, bool) {
	if n.Sign() == 0 {
		return new(big.Int), true
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	guess := int64(math.Round(math.Pow(f, 1/float64(q))))
	for _, c := range []int64{guess - 1, guess, guess + 1} {
		if c <= 0 {
			continue
		}
		cand := big.NewInt(c)
		if new(big.Int).Exp(cand, big.NewInt(q), nil).Cmp(n) == 0 {
			return cand, true
		}
	}
	return nil, false
}

// squareFactor writes n = k^2 * rest with rest free of small square
// factors. Large inputs are returned unchanged.
func squareFactor(n *big.Int) (k, rest *big.Int) {
	k, rest = big.NewInt(1), new(big.Int).Set(n)
	if n.BitLen() > 62 {
		return k, rest
	}
	v := n.Int64()
	kk := int64(1)
	for d := int64(2); d*d <= v && d <= 1_000_000; d++ {
		for v%(d*d) == 0 {
			v /= d * d
			kk *= d
		}
	}
	return big.NewInt(kk), big.NewInt(v)
}

func (p *Pow) String() string {
	if en, ok := p.exp.(*Num); ok && en.Exact() {
		if en.val.Cmp(big.NewRat(1, 2)) == 0 {
			return "sqrt(" + p.base.String() + ")"
		}
		if en.IsNegative() {
			return "1/" + denominatorString([]Expr{rawPow(p.base, numNeg(en))})
		}
	}
	return wrapPowBase(p.base) + "^" + wrapPowExp(p.exp)
}

func wrapPowBase(e Expr) string {
	switch v := e.(type) {
	case *Add, *Mul, *Pow:
		return "(" + e.String() + ")"
	case *Num:
		if v.IsNegative() || (v.Exact() && !v.IsInteger()) {
			return "(" + e.String() + ")"
		}
	}
	return e.String()
}

func wrapPowExp(e Expr) string {
	switch v := e.(type) {
	case *Sym, *Const, *Func:
		return e.String()
	case *Num:
		if v.Exact() && v.IsInteger() && !v.IsNegative() {
			return e.String()
		}
	}
	return "(" + e.String() + ")"
}

func (p *Pow) LaTeX() string {
	if en, ok := p.exp.(*Num); ok && en.Exact() {
		if en.val.Cmp(big.NewRat(1, 2)) == 0 {
			return "\\sqrt{" + p.base.LaTeX() + "}"
		}
		if en.IsNegative() {
			return "\\frac{1}{" + rawPow(p.base, numNeg(en)).LaTeX() + "}"
		}
	}
	baseStr := p.base.LaTeX()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if !hasSymbol(p.exp, varName) {
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), du)
	}
	if !hasSymbol(p.base, varName) {
		return MulOf(PowOf(p.base, p.exp), LnOf(p.base), dv)
	}
	logTerm := MulOf(dv, LnOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 {
		return nil, false
	}
	if b.IsZero() && !e.IsPositive() {
		return nil, false
	}
	if b.Exact() && e.Exact() && e.IsInteger() {
		k := e.val.Num()
		if k.IsInt64() && k.Int64() >= -1024 && k.Int64() <= 1024 {
			return numPowInt(b, k.Int64()), true
		}
	}
	if b.IsNegative() && !e.IsInteger() {
		return nil, false
	}
	return floatNum(math.Pow(b.Float64(), e.Float64()))
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func extractCoefficient(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	return N(1), e
}
