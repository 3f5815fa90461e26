// Package memory implements the calculator's single-value memory register.
package memory

// Register is a numeric accumulator starting at zero.
type Register struct {
	value float64
}

func (r *Register) Add(v float64)      { r.value += v }
func (r *Register) Subtract(v float64) { r.value -= v }
func (r *Register) Recall() float64    { return r.value }
func (r *Register) Clear()             { r.value = 0 }
