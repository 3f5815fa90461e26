package evaluator

import (
	"errors"
	"math"

	"github.com/njchilds90/gocalc/internal/calcerr"
)

// MaxSamplePoints bounds the number of points Sample will produce.
const MaxSamplePoints = 100_000

// Domain is an inclusive sampling range.
type Domain struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultDomain is -10..10 in steps of 0.1.
var DefaultDomain = Domain{Min: -10, Max: 10, Step: 0.1}

// Point is one sample. Y is meaningful only when Valid is set.
type Point struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Valid bool    `json:"valid" yaml:"valid"`
}

// Sample evaluates text at every point of the domain with variable bound
// to the abscissa. Points that fail to evaluate are marked invalid; when
// every point fails the function is unplottable.
func Sample(text string, mode Mode, variable string, d Domain) ([]Point, error) {
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	if !isFinite(d.Min) || !isFinite(d.Max) || !isFinite(d.Step) || d.Step <= 0 || d.Max < d.Min {
		return nil, calcerr.New(calcerr.ErrInvalidNumber, "invalid plot domain [%g, %g] step %g", d.Min, d.Max, d.Step)
	}
	span := math.Floor((d.Max-d.Min)/d.Step + 1e-9)
	if !isFinite(span) || span >= MaxSamplePoints {
		return nil, calcerr.New(calcerr.ErrInvalidNumber, "plot domain [%g, %g] step %g exceeds %d points", d.Min, d.Max, d.Step, MaxSamplePoints)
	}
	count := int(span) + 1
	n, err := parse(text, mode)
	if err != nil {
		return nil, err
	}

	bindings := map[string]float64{}
	e := newEnv(mode, bindings)
	points := make([]Point, count)
	valid := 0
	var firstErr error
	for i := range points {
		x := d.Min + float64(i)*d.Step
		bindings[variable] = x
		points[i].X = x
		y, err := run(n, e)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		points[i].Y = y
		points[i].Valid = true
		valid++
	}
	if valid == 0 {
		if errors.Is(firstErr, calcerr.ErrUnknownSymbol) || errors.Is(firstErr, calcerr.ErrParse) {
			return nil, firstErr
		}
		return nil, calcerr.New(calcerr.ErrDomain, "unplottable: no point of %q evaluates on [%g, %g]", text, d.Min, d.Max)
	}
	return points, nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
