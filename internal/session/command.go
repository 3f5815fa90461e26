package session

import (
	"github.com/njchilds90/gocalc/internal/calcerr"
	"github.com/njchilds90/gocalc/internal/evaluator"
	"github.com/njchilds90/gocalc/internal/stats"
	"github.com/njchilds90/gocalc/internal/symbolic"
)

// Mode selects what a command does.
type Mode string

const (
	ModeBasic         Mode = "basic"
	ModeScientific    Mode = "scientific"
	ModeSymbolic      Mode = "symbolic"
	ModeSolve         Mode = "solve"
	ModeDifferentiate Mode = "differentiate"
	ModeIntegrate     Mode = "integrate"
	ModeLimit         Mode = "limit"
	ModeMatrix        Mode = "matrix"
	ModeConvert       Mode = "convert"
	ModeStatistics    Mode = "statistics"
	ModePlot          Mode = "plot"
	ModeMemory        Mode = "memory"
)

// Modes lists every mode in presentation order.
func Modes() []Mode {
	return []Mode{
		ModeBasic, ModeScientific, ModeSymbolic, ModeSolve, ModeDifferentiate,
		ModeIntegrate, ModeLimit, ModeMatrix, ModeConvert, ModeStatistics,
		ModePlot, ModeMemory,
	}
}

// recordsHistory reports whether successful results of m are kept in
// history. Conversions, matrix work, statistics, plots and memory
// operations are scratch computations.
func (m Mode) recordsHistory() bool {
	switch m {
	case ModeBasic, ModeScientific, ModeSymbolic, ModeSolve,
		ModeDifferentiate, ModeIntegrate, ModeLimit:
		return true
	}
	return false
}

// Parameter names understood by Submit.
const (
	ParamVar      = "var"
	ParamLower    = "lower"
	ParamUpper    = "upper"
	ParamPoint    = "point"
	ParamRHS      = "rhs"
	ParamB        = "b"
	ParamOp       = "op"
	ParamCategory = "category"
	ParamFrom     = "from"
	ParamTo       = "to"
	ParamValue    = "value"
	ParamOrder    = "order"
	ParamMin      = "min"
	ParamMax      = "max"
	ParamStep     = "step"
)

// Command is one request to the session.
type Command struct {
	Mode   Mode
	Input  string
	Params map[string]string
}

// Result is the outcome of a command. On failure Err holds the tagged
// error and Text and Error hold its user-facing description.
type Result struct {
	Mode      Mode                   `json:"mode" yaml:"mode"`
	Input     string                 `json:"input" yaml:"input"`
	Text      string                 `json:"text" yaml:"text"`
	Number    float64                `json:"number" yaml:"number"`
	Numeric   bool                   `json:"numeric,omitempty" yaml:"numeric,omitempty"`
	LaTeX     string                 `json:"latex,omitempty" yaml:"latex,omitempty"`
	Solutions *symbolic.Solutions    `json:"solutions,omitempty" yaml:"solutions,omitempty"`
	Matrix    *symbolic.MatrixResult `json:"matrix,omitempty" yaml:"matrix,omitempty"`
	Summary   *stats.Summary         `json:"summary,omitempty" yaml:"summary,omitempty"`
	Points    []evaluator.Point      `json:"points,omitempty" yaml:"points,omitempty"`
	Error     string                 `json:"error,omitempty" yaml:"error,omitempty"`
	Err       error                  `json:"-" yaml:"-"`
}

// OK reports whether the command succeeded.
func (r Result) OK() bool { return r.Err == nil }

func (r *Result) fail(err error) {
	r.Err = err
	r.Error = calcerr.Describe(err)
	r.Text = r.Error
	r.Number, r.Numeric, r.LaTeX = 0, false, ""
	r.Solutions, r.Matrix, r.Summary, r.Points = nil, nil, nil, nil
}

func (r *Result) setNumber(v float64, text string) {
	r.Number, r.Numeric, r.Text = v, true, text
}
