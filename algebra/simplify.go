package algebra

import "sort"

// ============================================================
// Whole-expression simplification
// ============================================================

const maxSimplifyPasses = 10

// rewrite rebuilds e bottom-up, applying f to every rebuilt node.
func rewrite(e Expr, f func(Expr) Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = rewrite(t, f)
		}
		return f(AddOf(terms...))
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, x := range v.factors {
			factors[i] = rewrite(x, f)
		}
		return f(MulOf(factors...))
	case *Pow:
		return f(PowOf(rewrite(v.base, f), rewrite(v.exp, f)))
	case *Func:
		return f(funcOf(v.name, rewrite(v.arg, f)).Simplify())
	}
	return f(e)
}

// TrigSimplify replaces c*sin(u)^2 + c*cos(u)^2 by c wherever it occurs.
func TrigSimplify(e Expr) Expr {
	return rewrite(e.Simplify(), pythagorean).Simplify()
}

type trigSquare struct {
	sin   bool
	coeff *Num
	idx   int
}

func pythagorean(e Expr) Expr {
	add, ok := e.(*Add)
	if !ok {
		return e
	}
	byArg := map[string][]trigSquare{}
	for i, t := range add.terms {
		coeff, inner := extractCoefficient(t)
		p, ok := inner.(*Pow)
		if !ok || !isNumEqual(p.exp, 2) {
			continue
		}
		fn, ok := p.base.(*Func)
		if !ok || (fn.name != "sin" && fn.name != "cos") {
			continue
		}
		key := fn.arg.String()
		byArg[key] = append(byArg[key], trigSquare{sin: fn.name == "sin", coeff: coeff, idx: i})
	}

	keys := make([]string, 0, len(byArg))
	for k := range byArg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		squares := byArg[k]
		for i, a := range squares {
			for _, b := range squares[i+1:] {
				if a.sin == b.sin || numCmp(a.coeff, b.coeff) != 0 {
					continue
				}
				rest := make([]Expr, 0, len(add.terms)-1)
				for j, t := range add.terms {
					if j != a.idx && j != b.idx {
						rest = append(rest, t)
					}
				}
				return pythagorean(AddOf(append(rest, a.coeff)...))
			}
		}
	}
	return e
}

// DeepSimplify applies TrigSimplify until the expression stops changing.
func DeepSimplify(e Expr) Expr {
	curr := e.Simplify()
	for i := 0; i < maxSimplifyPasses; i++ {
		next := TrigSimplify(curr)
		if next.Equal(curr) {
			break
		}
		curr = next
	}
	return curr
}

// Simplify returns the shorter of the deep-simplified expression and its
// deep-simplified expansion, so (x+1)^2 - x^2 becomes 2*x + 1 while
// (x+1)^5 stays factored.
func Simplify(e Expr) Expr {
	direct := DeepSimplify(e)
	expanded := DeepSimplify(Expand(e))
	if len(expanded.String()) < len(direct.String()) {
		return expanded
	}
	return direct
}
