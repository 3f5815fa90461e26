package symbolic

import (
	"math"
	"strings"

	"github.com/njchilds90/gocalc/algebra"
	"github.com/njchilds90/gocalc/internal/calcerr"
)

// MatrixOp names an operation of MatrixOp.
type MatrixOp string

const (
	OpAdd         MatrixOp = "add"
	OpSubtract    MatrixOp = "subtract"
	OpMultiply    MatrixOp = "multiply"
	OpDeterminant MatrixOp = "determinant"
	OpInverse     MatrixOp = "inverse"
	OpTranspose   MatrixOp = "transpose"
	OpTrace       MatrixOp = "trace"
)

var opAliases = map[string]MatrixOp{
	"add": OpAdd, "+": OpAdd,
	"subtract": OpSubtract, "sub": OpSubtract, "-": OpSubtract,
	"multiply": OpMultiply, "mul": OpMultiply, "*": OpMultiply,
	"determinant": OpDeterminant, "det": OpDeterminant,
	"inverse": OpInverse, "inv": OpInverse,
	"transpose": OpTranspose, "t": OpTranspose,
	"trace": OpTrace, "tr": OpTrace,
}

// ParseMatrixOp resolves an operation name or alias.
func ParseMatrixOp(name string) (MatrixOp, error) {
	op, ok := opAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", calcerr.New(calcerr.ErrParse, "unknown matrix operation %q", name)
	}
	return op, nil
}

func (op MatrixOp) binary() bool {
	return op == OpAdd || op == OpSubtract || op == OpMultiply
}

// singularEpsilon is the magnitude below which an approximate determinant
// is treated as zero. Exact determinants are compared with zero directly.
const singularEpsilon = 1e-12

// MatrixResult is either a matrix or, for determinant and trace, a scalar.
type MatrixResult struct {
	Rows   [][]string `json:"rows,omitempty" yaml:"rows,omitempty"`
	Scalar string     `json:"scalar,omitempty" yaml:"scalar,omitempty"`
}

// IsScalar reports whether the result is a single value.
func (r MatrixResult) IsScalar() bool { return r.Rows == nil }

func (r MatrixResult) String() string {
	if r.IsScalar() {
		return r.Scalar
	}
	rows := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = "[" + strings.Join(row, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

// ParseMatrix reads a rectangular matrix of constants. Rows are separated
// by newlines or ';', entries by ',' or whitespace.
func (f *Facade) ParseMatrix(text string) (m *algebra.Matrix, err error) {
	defer recoverInto("matrix", &err)
	if strings.TrimSpace(text) == "" {
		return nil, calcerr.New(calcerr.ErrEmpty, "matrix is blank")
	}
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == ';' })
	var rows [][]algebra.Expr
	for _, line := range lines {
		cells := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		if len(cells) == 0 {
			continue
		}
		row := make([]algebra.Expr, len(cells))
		for j, c := range cells {
			e, err := f.parse(c)
			if err != nil {
				return nil, err
			}
			if _, ok := e.Eval(); !ok {
				return nil, calcerr.New(calcerr.ErrParse, "matrix entry %q is not a number", c)
			}
			row[j] = e
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, calcerr.New(calcerr.ErrParse, "matrix row %d has %d entries, want %d", len(rows)+1, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, calcerr.New(calcerr.ErrEmpty, "matrix is blank")
	}
	return algebra.MatrixFromRows(rows), nil
}

// MatrixOp applies op to A, and to B for the binary operations. Shape
// requirements are checked before the backend runs.
func (f *Facade) MatrixOp(aText, bText string, op MatrixOp) (res MatrixResult, err error) {
	defer recoverInto("matrix", &err)
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDeterminant, OpInverse, OpTranspose, OpTrace:
	default:
		return MatrixResult{}, calcerr.New(calcerr.ErrParse, "unknown matrix operation %q", op)
	}
	a, err := f.ParseMatrix(aText)
	if err != nil {
		return MatrixResult{}, err
	}
	var b *algebra.Matrix
	if op.binary() {
		if strings.TrimSpace(bText) == "" {
			return MatrixResult{}, calcerr.New(calcerr.ErrEmpty, "%s needs a second matrix", op)
		}
		if b, err = f.ParseMatrix(bText); err != nil {
			return MatrixResult{}, err
		}
	}

	switch op {
	case OpAdd, OpSubtract:
		if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
			return MatrixResult{}, calcerr.New(calcerr.ErrDimensionMismatch, "%dx%d and %dx%d", a.Rows(), a.Cols(), b.Rows(), b.Cols())
		}
		if op == OpAdd {
			return matrixResult(a.MatAdd(b))
		}
		return matrixResult(a.MatSub(b))
	case OpMultiply:
		if a.Cols() != b.Rows() {
			return MatrixResult{}, calcerr.New(calcerr.ErrDimensionMismatch, "%dx%d times %dx%d", a.Rows(), a.Cols(), b.Rows(), b.Cols())
		}
		return matrixResult(a.MatMul(b))
	case OpTranspose:
		return matrixResult(a.Transpose())
	}

	if !a.IsSquare() {
		return MatrixResult{}, calcerr.New(calcerr.ErrNotSquare, "%s of a %dx%d matrix", op, a.Rows(), a.Cols())
	}
	switch op {
	case OpDeterminant:
		s, err := render(f.backend.Simplify(f.backend.Det(a)), "determinant")
		return MatrixResult{Scalar: s}, err
	case OpTrace:
		s, err := render(a.Trace(), "trace")
		return MatrixResult{Scalar: s}, err
	case OpInverse:
		det := f.backend.Det(a)
		if v, ok := det.Eval(); ok && (v.IsZero() || !v.Exact() && math.Abs(v.Float64()) < singularEpsilon) {
			return MatrixResult{}, calcerr.New(calcerr.ErrSingular, "determinant is %s", det.String())
		}
		inv, err := f.backend.Inverse(a)
		if err != nil {
			return MatrixResult{}, calcerr.New(calcerr.ErrSingular, "%s", err.Error())
		}
		return matrixResult(inv)
	}
	return MatrixResult{}, nil
}

func matrixResult(m *algebra.Matrix) (MatrixResult, error) {
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if algebra.IsUndefined(m.Get(i, j)) {
				return MatrixResult{}, calcerr.New(calcerr.ErrDivisionByZero, "matrix entry (%d,%d) is undefined", i+1, j+1)
			}
		}
	}
	return MatrixResult{Rows: m.Strings()}, nil
}
