// Package symbolic translates calculator requests (solve, differentiate,
// integrate, limit, matrix operations) into calls on an algebra backend and
// normalizes the results into text and tagged errors.
//
// Every exported method recovers backend panics; no backend-specific error
// value leaves this package.
package symbolic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/njchilds90/gocalc/algebra"
	"github.com/njchilds90/gocalc/internal/calcerr"
	"github.com/njchilds90/gocalc/internal/lexer"
)

// Facade is safe to share only when its Backend is.
type Facade struct {
	backend Backend
}

// New returns a facade over b, or over a default Kernel when b is nil.
func New(b Backend) *Facade {
	if b == nil {
		b = Kernel{}
	}
	return &Facade{backend: b}
}

// Solutions is the real solution set of an equation. An empty Values with
// All unset means no real solution.
type Solutions struct {
	Values []string `json:"values" yaml:"values"`
	// All is set for identities, which hold for every value.
	All bool `json:"all,omitempty" yaml:"all,omitempty"`
	// ComplexOmitted is set when non-real roots were discarded.
	ComplexOmitted bool `json:"complex_omitted,omitempty" yaml:"complex_omitted,omitempty"`
}

func (s Solutions) String() string {
	switch {
	case s.All:
		return "all real values"
	case len(s.Values) == 0:
		return "no real solutions"
	}
	return "[" + strings.Join(s.Values, ", ") + "]"
}

// recoverInto converts a backend panic into a tagged error.
func recoverInto(op string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	msg := fmt.Sprint(r)
	if strings.Contains(msg, "division by zero") || strings.Contains(msg, "denominator is zero") {
		*err = calcerr.New(calcerr.ErrDivisionByZero, "%s: %s", op, msg)
		return
	}
	*err = calcerr.New(calcerr.ErrDomain, "%s: backend failure: %s", op, msg)
}

func (f *Facade) parse(text string) (algebra.Expr, error) {
	if strings.TrimSpace(text) == "" {
		return nil, calcerr.New(calcerr.ErrEmpty, "expression is blank")
	}
	e, err := f.backend.Parse(text)
	if err != nil {
		var se *algebra.SyntaxError
		if errors.As(err, &se) {
			return nil, calcerr.New(calcerr.ErrParse, "%s", se.Error())
		}
		return nil, calcerr.New(calcerr.ErrParse, "backend rejected expression: %s", err.Error())
	}
	if algebra.IsUndefined(e) {
		return nil, calcerr.New(calcerr.ErrDivisionByZero, "%q", text)
	}
	return e, nil
}

func checkVariable(v string) error {
	toks := lexer.All(v)
	if len(toks) != 2 || toks[0].Kind != lexer.Ident || v == "pi" || v == "e" {
		return calcerr.New(calcerr.ErrParse, "invalid variable name %q", v)
	}
	return nil
}

func render(e algebra.Expr, op string) (string, error) {
	if algebra.IsUndefined(e) {
		return "", calcerr.New(calcerr.ErrDivisionByZero, "%s result is undefined", op)
	}
	return e.String(), nil
}

// Simplify parses and simplifies a symbolic expression.
func (f *Facade) Simplify(text string) (out string, err error) {
	defer recoverInto("simplify", &err)
	e, err := f.parse(text)
	if err != nil {
		return "", err
	}
	return render(f.backend.Simplify(e), "simplify")
}

// Equation solves "lhs = rhs" for variable. "==" is accepted as "=".
func (f *Facade) Equation(text, variable string) (Solutions, error) {
	if strings.TrimSpace(text) == "" {
		return Solutions{}, calcerr.New(calcerr.ErrEmpty, "equation is blank")
	}
	norm := strings.ReplaceAll(text, "==", "=")
	lhs, rhs, ok := strings.Cut(norm, "=")
	if !ok {
		return Solutions{}, calcerr.New(calcerr.ErrMalformedEquation, "%q has no '='", text)
	}
	if strings.Contains(rhs, "=") {
		return Solutions{}, calcerr.New(calcerr.ErrParse, "%q has more than one '='", text)
	}
	return f.Solve(lhs, rhs, variable)
}

// Solve finds the real values of variable with lhs - rhs = 0.
func (f *Facade) Solve(lhsText, rhsText, variable string) (sol Solutions, err error) {
	defer recoverInto("solve", &err)
	if err := checkVariable(variable); err != nil {
		return Solutions{}, err
	}
	lhs, err := f.parse(lhsText)
	if err != nil {
		return Solutions{}, err
	}
	rhs, err := f.parse(rhsText)
	if err != nil {
		return Solutions{}, err
	}
	residual := algebra.AddOf(lhs, algebra.MulOf(algebra.N(-1), rhs))
	res := f.backend.Solve(residual, variable)
	if res.Error != "" {
		return Solutions{}, calcerr.New(calcerr.ErrDomain, "solve: %s", res.Error)
	}
	sol = Solutions{All: res.AllValues, ComplexOmitted: res.Complex, Values: []string{}}
	for _, s := range res.Solutions {
		text, err := render(s, "solve")
		if err != nil {
			return Solutions{}, err
		}
		sol.Values = append(sol.Values, text)
	}
	return sol, nil
}

// MaxDerivativeOrder bounds the order accepted by Differentiate.
const MaxDerivativeOrder = 50

// Differentiate returns the order-th derivative of expr with respect to
// variable.
func (f *Facade) Differentiate(text, variable string, order int) (out string, err error) {
	defer recoverInto("differentiate", &err)
	if order < 1 || order > MaxDerivativeOrder {
		return "", calcerr.New(calcerr.ErrInvalidNumber, "derivative order %d is outside 1..%d", order, MaxDerivativeOrder)
	}
	if err := checkVariable(variable); err != nil {
		return "", err
	}
	e, err := f.parse(text)
	if err != nil {
		return "", err
	}
	return render(f.backend.Diff(e, variable, order), "differentiate")
}

// Integrate returns an antiderivative when both bounds are blank and the
// definite integral when both are given. One bound alone is an error. An
// indefinite integral with no closed form comes back unevaluated.
//
// A definite integral whose integrand is unbounded inside the interval is
// "oo" or "-oo" when it diverges with one sign, and a domain error when it
// has no value at all.
func (f *Facade) Integrate(text, variable, lower, upper string) (out string, err error) {
	defer recoverInto("integrate", &err)
	lower, upper = strings.TrimSpace(lower), strings.TrimSpace(upper)
	if (lower == "") != (upper == "") {
		return "", calcerr.New(calcerr.ErrIncompleteBounds, "lower=%q upper=%q", lower, upper)
	}
	if err := checkVariable(variable); err != nil {
		return "", err
	}
	e, err := f.parse(text)
	if err != nil {
		return "", err
	}

	if lower == "" {
		anti, ok := f.backend.Integrate(e, variable)
		if !ok {
			return fmt.Sprintf("integrate(%s, %s)", e.String(), variable), nil
		}
		return render(anti, "integrate")
	}

	a, aVal, err := f.bound(lower)
	if err != nil {
		return "", err
	}
	b, bVal, err := f.bound(upper)
	if err != nil {
		return "", err
	}
	sing := f.backend.Singularities(e, variable, aVal, bVal)
	if out, err := divergence(sing, aVal > bVal); out != "" || err != nil {
		return out, err
	}
	if anti, ok := f.backend.Integrate(e, variable); ok {
		diff := f.backend.Simplify(algebra.AddOf(
			algebra.Sub(anti, variable, b),
			algebra.MulOf(algebra.N(-1), algebra.Sub(anti, variable, a)),
		))
		if v, ok := diff.Eval(); ok && !algebra.IsUndefined(diff) && isFinite(v.Float64()) {
			return diff.String(), nil
		}
	}
	v, ok := f.quadrature(e, variable, aVal, bVal, sing)
	if !ok {
		return "", calcerr.New(calcerr.ErrDomain, "integral of %s over [%s, %s] cannot be evaluated", e.String(), lower, upper)
	}
	return formatFloat(v), nil
}

// divergence returns "oo" or "-oo" when an unbounded point makes the
// integral diverge with a single sign, and an error when the divergent
// parts disagree. Both are empty when every point is integrable.
func divergence(sing []algebra.Singularity, reversed bool) (string, error) {
	dir := 0
	for _, s := range sing {
		d := 0
		switch s.Kind {
		case algebra.SingularIntegrable:
			continue
		case algebra.SingularPositive:
			d = 1
		case algebra.SingularNegative:
			d = -1
		}
		if d == 0 || (dir != 0 && d != dir) {
			return "", calcerr.New(calcerr.ErrDomain, "integral does not converge at %s", formatFloat(s.At))
		}
		dir = d
	}
	if reversed {
		dir = -dir
	}
	switch dir {
	case 1:
		return "oo", nil
	case -1:
		return "-oo", nil
	}
	return "", nil
}

// quadrature integrates numerically, splitting the interval at integrable
// singularities so no quadrature node lands on one.
func (f *Facade) quadrature(e algebra.Expr, variable string, a, b float64, sing []algebra.Singularity) (float64, bool) {
	lo, hi := math.Min(a, b), math.Max(a, b)
	cuts := []float64{lo}
	for _, s := range sing {
		if s.At > lo && s.At < hi {
			cuts = append(cuts, s.At)
		}
	}
	cuts = append(cuts, hi)

	total := 0.0
	for i := 1; i < len(cuts); i++ {
		v, ok := f.backend.DefiniteIntegrate(e, variable, cuts[i-1], cuts[i])
		if !ok {
			return 0, false
		}
		total += v
	}
	if a > b {
		total = -total
	}
	return total, true
}

// bound parses an integration limit, which must be a finite constant.
func (f *Facade) bound(text string) (algebra.Expr, float64, error) {
	e, err := f.parse(text)
	if err != nil {
		return nil, 0, err
	}
	v, ok := e.Eval()
	if !ok || !isFinite(v.Float64()) {
		return nil, 0, calcerr.New(calcerr.ErrInvalidNumber, "integration limit %q is not a finite number", text)
	}
	return e, v.Float64(), nil
}

// Limit returns the limit of expr as variable approaches point. The point
// may be "oo", "inf" or "infinity", optionally signed.
func (f *Facade) Limit(text, variable, point string) (out string, err error) {
	defer recoverInto("limit", &err)
	if err := checkVariable(variable); err != nil {
		return "", err
	}
	e, err := f.parse(text)
	if err != nil {
		return "", err
	}
	p, err := f.limitPoint(point)
	if err != nil {
		return "", err
	}
	res := f.backend.Limit(e, variable, p)
	if !res.Success {
		return "", calcerr.New(calcerr.ErrDomain, "limit: %s", res.Error)
	}
	if res.Kind == algebra.LimitFinite && res.Value != nil {
		return render(res.Value, "limit")
	}
	return res.String(), nil
}

func (f *Facade) limitPoint(text string) (algebra.LimitPoint, error) {
	t := strings.ToLower(strings.TrimSpace(text))
	switch t {
	case "":
		return algebra.LimitPoint{}, calcerr.New(calcerr.ErrEmpty, "limit point is blank")
	case "oo", "+oo", "inf", "+inf", "infinity", "+infinity":
		return algebra.InfinitePoint(1), nil
	case "-oo", "-inf", "-infinity":
		return algebra.InfinitePoint(-1), nil
	}
	e, err := f.parse(text)
	if err != nil {
		return algebra.LimitPoint{}, err
	}
	if _, ok := e.Eval(); !ok {
		return algebra.LimitPoint{}, calcerr.New(calcerr.ErrInvalidNumber, "limit point %q is not a number", text)
	}
	return algebra.FinitePoint(e), nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', 12, 64) }
