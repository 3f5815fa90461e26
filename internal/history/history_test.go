package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc/internal/history"
)

func TestAppendSequence(t *testing.T) {
	s := history.New()
	a := s.Append("basic", "1+1", "2")
	b := s.Append("basic", "2*3", "6")
	assert.Equal(t, 1, a.Seq)
	assert.Equal(t, 2, b.Seq)
	assert.Equal(t, 2, s.Len())
}

func TestRecent(t *testing.T) {
	s := history.New()
	for _, expr := range []string{"1", "2", "3", "4", "5", "6"} {
		s.Append("basic", expr, expr)
	}
	got := s.Recent(3)
	require.Len(t, got, 3)
	assert.Equal(t, "4", got[0].Expression)
	assert.Equal(t, "6", got[2].Expression)

	assert.Len(t, s.Recent(100), 6)
	assert.Empty(t, s.Recent(0))
	assert.Empty(t, s.Recent(-2))
}

func TestRecentIsCopy(t *testing.T) {
	s := history.New()
	s.Append("basic", "1+1", "2")
	got := s.Recent(1)
	got[0].Result = "tampered"
	assert.Equal(t, "2", s.Recent(1)[0].Result)
}

func TestClearResetsNumbering(t *testing.T) {
	s := history.New()
	s.Append("basic", "1+1", "2")
	s.Append("basic", "1+2", "3")
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Recent(5))
	e := s.Append("scientific", "sin(0)", "0")
	assert.Equal(t, 1, e.Seq)
}
