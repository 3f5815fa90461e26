package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc/internal/calcerr"
	"github.com/njchilds90/gocalc/internal/stats"
)

func TestSummarize(t *testing.T) {
	s, err := stats.Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 5, s.Mean, 1e-12)
	assert.InDelta(t, 4.5, s.Median, 1e-12)
	assert.InDelta(t, 32.0/7.0, s.Variance, 1e-12)
	assert.InDelta(t, 2.138089935299395, s.StdDev, 1e-12)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.Equal(t, 40.0, s.Sum)
}

func TestSummarizeOddMedian(t *testing.T) {
	s, err := stats.Summarize([]float64{9, 1, 5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, s.Median)
}

func TestSummarizeSingleValue(t *testing.T) {
	s, err := stats.Summarize([]float64{42})
	require.NoError(t, err)
	assert.Equal(t, 42.0, s.Mean)
	assert.Equal(t, 42.0, s.Median)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 0.0, s.Variance)
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_, err := stats.Summarize(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := stats.Summarize(nil)
	assert.ErrorIs(t, err, calcerr.ErrEmpty)
}

func TestParseSample(t *testing.T) {
	got, err := stats.ParseSample("1, 2,,3 ; 4\n5")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, got)

	_, err = stats.ParseSample("1, two, 3")
	assert.ErrorIs(t, err, calcerr.ErrInvalidNumber)

	_, err = stats.ParseSample(" , ,")
	assert.ErrorIs(t, err, calcerr.ErrEmpty)

	_, err = stats.ParseSample("1, NaN")
	assert.ErrorIs(t, err, calcerr.ErrInvalidNumber)
}
