package session

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/njchilds90/gocalc/algebra"
	"github.com/njchilds90/gocalc/internal/calcerr"
	"github.com/njchilds90/gocalc/internal/evaluator"
	"github.com/njchilds90/gocalc/internal/stats"
	"github.com/njchilds90/gocalc/internal/symbolic"
	"github.com/njchilds90/gocalc/internal/units"
)

type request struct {
	Command
	mode Mode
}

func (r request) param(name string) string {
	return strings.TrimSpace(r.Params[name])
}

func (r request) paramOr(name, fallback string) string {
	if v := r.param(name); v != "" {
		return v
	}
	return fallback
}

// handler fills res on success. Returned errors are tagged.
type handler func(s *Session, req request, res *Result) error

var handlers = map[Mode]handler{
	ModeBasic:         (*Session).evaluate,
	ModeScientific:    (*Session).evaluate,
	ModeSymbolic:      (*Session).simplify,
	ModeSolve:         (*Session).solve,
	ModeDifferentiate: (*Session).differentiate,
	ModeIntegrate:     (*Session).integrate,
	ModeLimit:         (*Session).limit,
	ModeMatrix:        (*Session).matrix,
	ModeConvert:       (*Session).convert,
	ModeStatistics:    (*Session).statistics,
	ModePlot:          (*Session).plot,
	ModeMemory:        (*Session).memoryOp,
}

func historyExpression(req request) string {
	in := strings.TrimSpace(req.Input)
	v := req.paramOr(ParamVar, "x")
	switch req.mode {
	case ModeSolve:
		if rhs := req.param(ParamRHS); rhs != "" {
			return in + " = " + rhs
		}
	case ModeDifferentiate:
		if order := req.param(ParamOrder); order != "" && order != "1" {
			return fmt.Sprintf("d^%s/d%s^%s (%s)", order, v, order, in)
		}
		return fmt.Sprintf("d/d%s (%s)", v, in)
	case ModeIntegrate:
		lo, hi := req.param(ParamLower), req.param(ParamUpper)
		if lo != "" && hi != "" {
			return fmt.Sprintf("integrate(%s, %s, %s, %s)", in, v, lo, hi)
		}
		return fmt.Sprintf("integrate(%s, %s)", in, v)
	case ModeLimit:
		return fmt.Sprintf("limit(%s, %s -> %s)", in, v, req.param(ParamPoint))
	}
	return in
}

// numericValue reports the value of an exact symbolic result with no free
// symbols.
func numericValue(text string) (float64, bool) {
	e, err := algebra.Parse(text)
	if err != nil {
		return 0, false
	}
	return exprValue(e)
}

func exprValue(e algebra.Expr) (float64, bool) {
	n, ok := e.Eval()
	if !ok || algebra.IsUndefined(e) {
		return 0, false
	}
	v := n.Float64()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// symbolicResult sets the text of a facade result along with its LaTeX
// form and, when it has no free symbols, its value.
func symbolicResult(res *Result, text string) {
	res.Text = text
	e, err := algebra.Parse(text)
	if err != nil {
		return
	}
	res.LaTeX = e.LaTeX()
	if v, ok := exprValue(e); ok {
		res.Number, res.Numeric = v, true
	}
}

// unboundedResult sets the text of an infinite or missing limit or
// integral, which has no LaTeX or numeric form.
func unboundedResult(res *Result, text string) bool {
	switch text {
	case "oo", "-oo", "does not exist":
		res.Text = text
		return true
	}
	return false
}

func parseNumber(name, text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, calcerr.New(calcerr.ErrEmpty, "%s is blank", name)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, calcerr.New(calcerr.ErrInvalidNumber, "%s %q is not a number", name, text)
	}
	return v, nil
}

// ============================================================
// Numeric evaluation
// ============================================================

func (s *Session) evaluate(req request, res *Result) error {
	v, err := evaluator.Evaluate(req.Input, evaluator.Mode(req.mode))
	if err != nil {
		return err
	}
	res.setNumber(v, s.FormatNumber(v))
	return nil
}

func (s *Session) plot(req request, res *Result) error {
	d := evaluator.Domain{Min: s.cfg.Plot.Min, Max: s.cfg.Plot.Max, Step: s.cfg.Plot.Step}
	for name, dst := range map[string]*float64{ParamMin: &d.Min, ParamMax: &d.Max, ParamStep: &d.Step} {
		if req.param(name) == "" {
			continue
		}
		v, err := parseNumber(name, req.param(name))
		if err != nil {
			return err
		}
		*dst = v
	}
	points, err := evaluator.Sample(req.Input, evaluator.Scientific, req.paramOr(ParamVar, "x"), d)
	if err != nil {
		return err
	}
	valid := 0
	for _, p := range points {
		if p.Valid {
			valid++
		}
	}
	res.Points = points
	res.Text = fmt.Sprintf("%d points (%d valid)", len(points), valid)
	return nil
}

// ============================================================
// Symbolic
// ============================================================

func (s *Session) simplify(req request, res *Result) error {
	out, err := s.facade.Simplify(req.Input)
	if err != nil {
		return err
	}
	symbolicResult(res, out)
	return nil
}

func (s *Session) solve(req request, res *Result) error {
	v := req.paramOr(ParamVar, "x")
	var (
		sol symbolic.Solutions
		err error
	)
	if rhs, ok := req.Params[ParamRHS]; ok {
		sol, err = s.facade.Solve(req.Input, rhs, v)
	} else {
		sol, err = s.facade.Equation(req.Input, v)
	}
	if err != nil {
		return err
	}
	res.Solutions = &sol
	res.Text = sol.String()
	return nil
}

func (s *Session) differentiate(req request, res *Result) error {
	order := 1
	if o := req.param(ParamOrder); o != "" {
		n, err := strconv.Atoi(o)
		if err != nil || n < 1 || n > symbolic.MaxDerivativeOrder {
			return calcerr.New(calcerr.ErrInvalidNumber, "derivative order %q must be an integer in 1..%d", o, symbolic.MaxDerivativeOrder)
		}
		order = n
	}
	out, err := s.facade.Differentiate(req.Input, req.paramOr(ParamVar, "x"), order)
	if err != nil {
		return err
	}
	symbolicResult(res, out)
	return nil
}

func (s *Session) integrate(req request, res *Result) error {
	out, err := s.facade.Integrate(req.Input, req.paramOr(ParamVar, "x"), req.param(ParamLower), req.param(ParamUpper))
	if err != nil {
		return err
	}
	if !unboundedResult(res, out) {
		symbolicResult(res, out)
	}
	return nil
}

func (s *Session) limit(req request, res *Result) error {
	out, err := s.facade.Limit(req.Input, req.paramOr(ParamVar, "x"), req.param(ParamPoint))
	if err != nil {
		return err
	}
	if !unboundedResult(res, out) {
		symbolicResult(res, out)
	}
	return nil
}

func (s *Session) matrix(req request, res *Result) error {
	name := req.param(ParamOp)
	if name == "" {
		return calcerr.New(calcerr.ErrEmpty, "matrix operation is blank")
	}
	op, err := symbolic.ParseMatrixOp(name)
	if err != nil {
		return err
	}
	m, err := s.facade.MatrixOp(req.Input, req.Params[ParamB], op)
	if err != nil {
		return err
	}
	res.Matrix = &m
	res.Text = m.String()
	if m.IsScalar() {
		if v, ok := numericValue(m.Scalar); ok {
			res.Number, res.Numeric = v, true
		}
	}
	return nil
}

// ============================================================
// Conversion and statistics
// ============================================================

func (s *Session) convert(req request, res *Result) error {
	text := req.Input
	if strings.TrimSpace(text) == "" {
		text = req.param(ParamValue)
	}
	v, err := parseNumber("value", text)
	if err != nil {
		return err
	}
	out, err := units.Convert(v, units.Category(req.param(ParamCategory)), req.param(ParamFrom), req.param(ParamTo))
	if err != nil {
		return err
	}
	res.setNumber(out, s.FormatNumber(out))
	return nil
}

func (s *Session) statistics(req request, res *Result) error {
	sample, err := stats.ParseSample(req.Input)
	if err != nil {
		return err
	}
	sum, err := stats.Summarize(sample)
	if err != nil {
		return err
	}
	res.Summary = &sum
	res.Text = fmt.Sprintf("n=%d mean=%s median=%s stdev=%s variance=%s",
		sum.Count, s.FormatNumber(sum.Mean), s.FormatNumber(sum.Median),
		s.FormatNumber(sum.StdDev), s.FormatNumber(sum.Variance))
	return nil
}

// ============================================================
// Memory
// ============================================================

// memoryOp applies the operation named by the op parameter, or by the
// input when op is absent. add and subtract use the value parameter and
// fall back to the last numeric result.
func (s *Session) memoryOp(req request, res *Result) error {
	op := strings.ToLower(req.paramOr(ParamOp, strings.TrimSpace(req.Input)))
	switch op {
	case "add", "m+", "subtract", "m-":
		v, err := s.memoryOperand(req)
		if err != nil {
			return err
		}
		if op == "add" || op == "m+" {
			s.memory.Add(v)
		} else {
			s.memory.Subtract(v)
		}
	case "recall", "mr":
	case "clear", "mc":
		s.memory.Clear()
	case "":
		return calcerr.New(calcerr.ErrEmpty, "memory operation is blank")
	default:
		return calcerr.New(calcerr.ErrParse, "unknown memory operation %q", op)
	}
	v := s.memory.Recall()
	res.setNumber(v, s.FormatNumber(v))
	return nil
}

func (s *Session) memoryOperand(req request) (float64, error) {
	if text := req.param(ParamValue); text != "" {
		return parseNumber("value", text)
	}
	if !s.hasLast {
		return 0, calcerr.New(calcerr.ErrEmpty, "no value and no previous result")
	}
	return s.lastNumber, nil
}
