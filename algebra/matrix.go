package algebra

import (
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// Matrix
// ============================================================

// Matrix is a dense matrix of expressions. Operations panic on shape
// mismatches; callers check dimensions first.
type Matrix struct {
	rows, cols int
	data       [][]Expr
}

func NewMatrix(rows, cols int) *Matrix {
	data := make([][]Expr, rows)
	for i := range data {
		data[i] = make([]Expr, cols)
		for j := range data[i] {
			data[i][j] = N(0)
		}
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// MatrixFromRows builds a matrix from equal-length rows.
func MatrixFromRows(rows [][]Expr) *Matrix {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("algebra: matrix needs at least one row and one column")
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			panic(fmt.Sprintf("algebra: row %d has %d entries, want %d", i, len(row), m.cols))
		}
		copy(m.data[i], row)
	}
	return m
}

func (m *Matrix) checkBounds(row, col int) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("algebra: matrix index out of range [%d,%d] for %dx%d", row, col, m.rows, m.cols))
	}
}

func (m *Matrix) Get(row, col int) Expr {
	m.checkBounds(row, col)
	return m.data[row][col]
}
func (m *Matrix) Set(row, col int, val Expr) {
	m.checkBounds(row, col)
	m.data[row][col] = val
}
func (m *Matrix) Rows() int      { return m.rows }
func (m *Matrix) Cols() int      { return m.cols }
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

// Strings returns the entries rendered row by row.
func (m *Matrix) Strings() [][]string {
	out := make([][]string, m.rows)
	for i := range out {
		out[i] = make([]string, m.cols)
		for j := range out[i] {
			out[i][j] = m.data[i][j].String()
		}
	}
	return out
}

func (m *Matrix) String() string {
	rows := make([]string, m.rows)
	for i, r := range m.Strings() {
		rows[i] = "[" + strings.Join(r, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

func (m *Matrix) LaTeX() string {
	var sb strings.Builder
	sb.WriteString("\\begin{pmatrix}")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteString(" \\\\ ")
		}
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(" & ")
			}
			sb.WriteString(m.data[i][j].LaTeX())
		}
	}
	sb.WriteString("\\end{pmatrix}")
	return sb.String()
}

func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		for j := range m.data[i] {
			if !m.data[i][j].Equal(other.data[i][j]) {
				return false
			}
		}
	}
	return true
}

func (m *Matrix) MatAdd(other *Matrix) *Matrix {
	if m.rows != other.rows || m.cols != other.cols {
		panic("algebra: matrix dimension mismatch in MatAdd")
	}
	result := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[i][j] = AddOf(m.data[i][j], other.data[i][j])
		}
	}
	return result
}

func (m *Matrix) MatSub(other *Matrix) *Matrix {
	if m.rows != other.rows || m.cols != other.cols {
		panic("algebra: matrix dimension mismatch in MatSub")
	}
	result := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[i][j] = AddOf(m.data[i][j], MulOf(N(-1), other.data[i][j]))
		}
	}
	return result
}

func (m *Matrix) MatMul(other *Matrix) *Matrix {
	if m.cols != other.rows {
		panic("algebra: matrix dimension mismatch in MatMul")
	}
	result := NewMatrix(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < other.cols; j++ {
			terms := make([]Expr, m.cols)
			for k := 0; k < m.cols; k++ {
				terms[k] = MulOf(m.data[i][k], other.data[k][j])
			}
			result.data[i][j] = AddOf(terms...)
		}
	}
	return result
}

func (m *Matrix) Scale(scalar Expr) *Matrix {
	result := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[i][j] = MulOf(scalar, m.data[i][j])
		}
	}
	return result
}

func (m *Matrix) Transpose() *Matrix {
	result := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[j][i] = m.data[i][j]
		}
	}
	return result
}

func (m *Matrix) Trace() Expr {
	if m.rows != m.cols {
		panic("algebra: Trace requires a square matrix")
	}
	terms := make([]Expr, m.rows)
	for i := 0; i < m.rows; i++ {
		terms[i] = m.data[i][i]
	}
	return AddOf(terms...)
}

// exactEntries returns the entries as exact rationals when every entry is
// an exact number.
func (m *Matrix) exactEntries() ([][]*big.Rat, bool) {
	out := make([][]*big.Rat, m.rows)
	for i := range m.data {
		out[i] = make([]*big.Rat, m.cols)
		for j, e := range m.data[i] {
			n, ok := e.(*Num)
			if !ok || !n.Exact() {
				return nil, false
			}
			out[i][j] = n.Rat()
		}
	}
	return out, true
}

// Det uses exact Gaussian elimination for rational matrices and cofactor
// expansion otherwise.
func (m *Matrix) Det() Expr {
	if m.rows != m.cols {
		panic("algebra: Det requires a square matrix")
	}
	if a, ok := m.exactEntries(); ok {
		return NRat(detRat(a))
	}
	return matDet(m.data, m.rows)
}

func detRat(a [][]*big.Rat) *big.Rat {
	n := len(a)
	work := cloneRat(a)
	det := big.NewRat(1, 1)
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if work[r][col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return new(big.Rat)
		}
		if pivot != col {
			work[pivot], work[col] = work[col], work[pivot]
			det.Neg(det)
		}
		det.Mul(det, work[col][col])
		for r := col + 1; r < n; r++ {
			if work[r][col].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Quo(work[r][col], work[col][col])
			for c := col; c < n; c++ {
				work[r][c] = new(big.Rat).Sub(work[r][c], new(big.Rat).Mul(f, work[col][c]))
			}
		}
	}
	return det
}

func cloneRat(a [][]*big.Rat) [][]*big.Rat {
	out := make([][]*big.Rat, len(a))
	for i, row := range a {
		out[i] = make([]*big.Rat, len(row))
		for j, v := range row {
			out[i][j] = new(big.Rat).Set(v)
		}
	}
	return out
}

func matDet(data [][]Expr, n int) Expr {
	if n == 1 {
		return data[0][0].Simplify()
	}
	if n == 2 {
		return AddOf(
			MulOf(data[0][0], data[1][1]),
			MulOf(N(-1), data[0][1], data[1][0]),
		)
	}
	terms := make([]Expr, n)
	for j := 0; j < n; j++ {
		sign := N(1)
		if j%2 == 1 {
			sign = N(-1)
		}
		terms[j] = MulOf(sign, data[0][j], matDet(makeMinor(data, n, 0, j), n-1))
	}
	return AddOf(terms...)
}

func makeMinor(data [][]Expr, n, skipRow, skipCol int) [][]Expr {
	minor := make([][]Expr, 0, n-1)
	for i := 0; i < n; i++ {
		if i == skipRow {
			continue
		}
		row := make([]Expr, 0, n-1)
		for j := 0; j < n; j++ {
			if j != skipCol {
				row = append(row, data[i][j])
			}
		}
		minor = append(minor, row)
	}
	return minor
}

// ErrSingular is returned by Inverse for a matrix with zero determinant.
var ErrSingular = fmt.Errorf("algebra: matrix is singular")

func (m *Matrix) Inverse() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("algebra: Inverse requires a square matrix")
	}
	if a, ok := m.exactEntries(); ok {
		inv, ok := invertRat(a)
		if !ok {
			return nil, ErrSingular
		}
		return inv, nil
	}
	det := m.Det()
	if dn, ok := det.Eval(); ok && dn.IsZero() {
		return nil, ErrSingular
	}
	n := m.rows
	if n == 1 {
		return MatrixFromRows([][]Expr{{PowOf(det, N(-1))}}), nil
	}
	cof := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sign := N(1)
			if (i+j)%2 == 1 {
				sign = N(-1)
			}
			cof.data[i][j] = MulOf(sign, matDet(makeMinor(m.data, n, i, j), n-1))
		}
	}
	return cof.Transpose().Scale(PowOf(det, N(-1))), nil
}

// invertRat runs Gauss-Jordan elimination on [A | I].
func invertRat(a [][]*big.Rat) (*Matrix, bool) {
	n := len(a)
	work := cloneRat(a)
	inv := make([][]*big.Rat, n)
	for i := range inv {
		inv[i] = make([]*big.Rat, n)
		for j := range inv[i] {
			inv[i][j] = new(big.Rat)
		}
		inv[i][i].SetInt64(1)
	}
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if work[r][col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return nil, false
		}
		work[pivot], work[col] = work[col], work[pivot]
		inv[pivot], inv[col] = inv[col], inv[pivot]
		p := new(big.Rat).Set(work[col][col])
		for c := 0; c < n; c++ {
			work[col][c] = new(big.Rat).Quo(work[col][c], p)
			inv[col][c] = new(big.Rat).Quo(inv[col][c], p)
		}
		for r := 0; r < n; r++ {
			if r == col || work[r][col].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Set(work[r][col])
			for c := 0; c < n; c++ {
				work[r][c] = new(big.Rat).Sub(work[r][c], new(big.Rat).Mul(f, work[col][c]))
				inv[r][c] = new(big.Rat).Sub(inv[r][c], new(big.Rat).Mul(f, inv[col][c]))
			}
		}
	}
	out := NewMatrix(n, n)
	for i := range inv {
		for j := range inv[i] {
			out.data[i][j] = NRat(inv[i][j])
		}
	}
	return out, true
}
