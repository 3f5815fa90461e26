package calcerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc/internal/calcerr"
)

func TestIsMatchesByKind(t *testing.T) {
	err := calcerr.New(calcerr.ErrDivisionByZero, "1/0")
	assert.True(t, errors.Is(err, calcerr.ErrDivisionByZero))
	assert.False(t, errors.Is(err, calcerr.ErrDomain))
}

func TestIsThroughWrapping(t *testing.T) {
	inner := calcerr.New(calcerr.ErrNotSquare, "2x3")
	outer := fmt.Errorf("determinant: %w", inner)
	assert.True(t, errors.Is(outer, calcerr.ErrNotSquare))

	ce, ok := calcerr.As(outer)
	require.True(t, ok)
	assert.Equal(t, calcerr.ClassMatrix, ce.Class)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("backend exploded")
	err := calcerr.Wrap(calcerr.ErrParse, cause, "symbolic")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "backend exploded")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{calcerr.New(calcerr.ErrDivisionByZero, ""), "division by zero"},
		{calcerr.New(calcerr.ErrUnknownUnit, "furlong"), "invalid unit for selected category"},
		{calcerr.New(calcerr.ErrSingular, ""), "matrix is singular and cannot be inverted"},
		{calcerr.New(calcerr.ErrIncompleteBounds, ""), "both integration limits are required for a definite integral"},
		{errors.New("plain"), "calculation failed"},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calcerr.Describe(tt.err))
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "calc: ParseError: unexpected ')'", calcerr.New(calcerr.ErrParse, "unexpected ')'").Error())
	assert.Equal(t, "calc: InputError{Empty}", calcerr.New(calcerr.ErrEmpty, "").Error())
}
