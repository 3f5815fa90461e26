package symbolic

import (
	"github.com/njchilds90/gocalc/algebra"
)

// Backend is the algebra capability the facade drives. Implementations may
// panic or report soft failures; the facade normalizes both.
type Backend interface {
	Parse(text string) (algebra.Expr, error)
	Simplify(e algebra.Expr) algebra.Expr
	Solve(residual algebra.Expr, variable string) algebra.SolveResult
	Diff(e algebra.Expr, variable string, order int) algebra.Expr
	Integrate(e algebra.Expr, variable string) (algebra.Expr, bool)
	DefiniteIntegrate(e algebra.Expr, variable string, a, b float64) (float64, bool)
	Singularities(e algebra.Expr, variable string, a, b float64) []algebra.Singularity
	Limit(e algebra.Expr, variable string, p algebra.LimitPoint) algebra.LimitResult
	Det(m *algebra.Matrix) algebra.Expr
	Inverse(m *algebra.Matrix) (*algebra.Matrix, error)
}

// Kernel is the default Backend over package algebra.
type Kernel struct {
	Newton algebra.NewtonOptions
	// Panels is the number of Gauss-Legendre panels for numeric integrals.
	Panels int
}

var _ Backend = Kernel{}

func (Kernel) Parse(text string) (algebra.Expr, error) { return algebra.Parse(text) }
func (Kernel) Simplify(e algebra.Expr) algebra.Expr    { return algebra.Simplify(e) }

func (k Kernel) Solve(residual algebra.Expr, variable string) algebra.SolveResult {
	return algebra.Solve(residual, variable, k.Newton)
}

func (Kernel) Diff(e algebra.Expr, variable string, order int) algebra.Expr {
	return algebra.Simplify(algebra.DiffN(e, variable, order))
}

func (Kernel) Integrate(e algebra.Expr, variable string) (algebra.Expr, bool) {
	f, ok := algebra.Integrate(e, variable)
	if !ok {
		return nil, false
	}
	return algebra.Simplify(f), true
}

func (k Kernel) DefiniteIntegrate(e algebra.Expr, variable string, a, b float64) (float64, bool) {
	return algebra.DefiniteIntegrate(e, variable, a, b, k.Panels)
}

func (k Kernel) Singularities(e algebra.Expr, variable string, a, b float64) []algebra.Singularity {
	return algebra.Singularities(e, variable, a, b, k.Newton)
}

func (Kernel) Limit(e algebra.Expr, variable string, p algebra.LimitPoint) algebra.LimitResult {
	return algebra.Limit(e, variable, p)
}

func (Kernel) Det(m *algebra.Matrix) algebra.Expr { return m.Det() }

func (Kernel) Inverse(m *algebra.Matrix) (*algebra.Matrix, error) { return m.Inverse() }
