// Package stats computes descriptive statistics over numeric samples.
package stats

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/njchilds90/gocalc/internal/calcerr"
)

// Summary holds the descriptive statistics of one sample. StdDev and
// Variance are sample (n-1) statistics and are zero for a single value.
type Summary struct {
	Count    int     `json:"count" yaml:"count"`
	Mean     float64 `json:"mean" yaml:"mean"`
	Median   float64 `json:"median" yaml:"median"`
	StdDev   float64 `json:"stdev" yaml:"stdev"`
	Variance float64 `json:"variance" yaml:"variance"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Sum      float64 `json:"sum" yaml:"sum"`
}

// ParseSample splits text on commas, semicolons and whitespace.
func ParseSample(text string) ([]float64, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	sample := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, calcerr.New(calcerr.ErrInvalidNumber, "%q", f)
		}
		sample = append(sample, v)
	}
	if len(sample) == 0 {
		return nil, calcerr.New(calcerr.ErrEmpty, "no numbers in sample")
	}
	return sample, nil
}

// Summarize returns the statistics of sample. The input is not modified.
func Summarize(sample []float64) (Summary, error) {
	if len(sample) == 0 {
		return Summary{}, calcerr.New(calcerr.ErrEmpty, "empty sample")
	}
	s := Summary{
		Count:  len(sample),
		Mean:   stat.Mean(sample, nil),
		Median: median(sample),
		Min:    floats.Min(sample),
		Max:    floats.Max(sample),
		Sum:    floats.Sum(sample),
	}
	if len(sample) > 1 {
		s.Variance = stat.Variance(sample, nil)
		s.StdDev = math.Sqrt(s.Variance)
	}
	return s, nil
}

func median(sample []float64) float64 {
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
