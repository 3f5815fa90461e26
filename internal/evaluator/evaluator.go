// Package evaluator evaluates arithmetic and scientific expressions in
// float64 against a closed, allow-listed namespace.
//
// Text is parsed into a small tree and walked directly; nothing outside the
// namespace of the selected mode (plus explicit caller bindings) can be
// reached from an expression.
package evaluator

import (
	"math"

	"github.com/njchilds90/gocalc/internal/calcerr"
	"github.com/njchilds90/gocalc/internal/lexer"
)

// Mode selects the namespace an expression is evaluated against.
type Mode string

const (
	Basic      Mode = "basic"
	Scientific Mode = "scientific"
)

// env is the evaluation environment for one call.
type env struct {
	funcs    map[string]builtin
	consts   map[string]float64
	bindings map[string]float64
}

func newEnv(mode Mode, bindings map[string]float64) *env {
	e := &env{funcs: basicBuiltins, bindings: bindings}
	if mode == Scientific {
		e.funcs = scientificBuiltins
		e.consts = scientificConstants
	}
	return e
}

func (e *env) lookup(name string) (float64, bool) {
	if v, ok := e.bindings[name]; ok {
		return v, true
	}
	v, ok := e.consts[name]
	return v, ok
}

// Evaluate parses and evaluates text in the given mode.
func Evaluate(text string, mode Mode) (float64, error) {
	return EvaluateWith(text, mode, nil)
}

// EvaluateWith is Evaluate with extra numeric bindings visible to the
// expression, such as the x of a plotted function.
func EvaluateWith(text string, mode Mode, bindings map[string]float64) (float64, error) {
	if err := checkMode(mode); err != nil {
		return 0, err
	}
	n, err := parse(text, mode)
	if err != nil {
		return 0, err
	}
	return run(n, newEnv(mode, bindings))
}

func checkMode(mode Mode) error {
	if mode != Basic && mode != Scientific {
		return calcerr.New(calcerr.ErrParse, "unknown evaluation mode %q", mode)
	}
	return nil
}

func run(n node, e *env) (float64, error) {
	v, err := n.eval(e)
	if err != nil {
		return 0, err
	}
	return finite(v)
}

func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, calcerr.New(calcerr.ErrDomain, "result is not a finite number")
	}
	return v, nil
}

func (n numberNode) eval(*env) (float64, error) { return n.v, nil }

func (n identNode) eval(e *env) (float64, error) {
	if v, ok := e.lookup(n.name); ok {
		return v, nil
	}
	return 0, calcerr.New(calcerr.ErrUnknownSymbol, "name %q is not defined", n.name)
}

func (n *unaryNode) eval(e *env) (float64, error) {
	v, err := n.x.eval(e)
	if err != nil {
		return 0, err
	}
	if n.neg {
		return -v, nil
	}
	return v, nil
}

func (n *binaryNode) eval(e *env) (float64, error) {
	l, err := n.l.eval(e)
	if err != nil {
		return 0, err
	}
	r, err := n.r.eval(e)
	if err != nil {
		return 0, err
	}
	var v float64
	switch n.op {
	case lexer.Plus:
		v = l + r
	case lexer.Minus:
		v = l - r
	case lexer.Star:
		v = l * r
	case lexer.Slash:
		if r == 0 {
			return 0, calcerr.New(calcerr.ErrDivisionByZero, "%g / 0", l)
		}
		v = l / r
	case lexer.Caret:
		if v, err = power(l, r); err != nil {
			return 0, err
		}
	}
	return finite(v)
}

func (n *callNode) eval(e *env) (float64, error) {
	b, ok := e.funcs[n.name]
	if !ok {
		return 0, calcerr.New(calcerr.ErrUnknownSymbol, "function %q is not available", n.name)
	}
	if len(n.args) < b.minArgs || len(n.args) > b.maxArgs {
		if b.minArgs == b.maxArgs {
			return 0, calcerr.New(calcerr.ErrParse, "%s takes %d argument(s), got %d", n.name, b.minArgs, len(n.args))
		}
		return 0, calcerr.New(calcerr.ErrParse, "%s takes %d to %d arguments, got %d", n.name, b.minArgs, b.maxArgs, len(n.args))
	}
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(e)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	v, err := b.fn(args)
	if err != nil {
		return 0, err
	}
	return finite(v)
}
