package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/gocalc/internal/memory"
)

func TestRegister(t *testing.T) {
	var r memory.Register
	assert.Equal(t, 0.0, r.Recall())

	r.Add(5)
	r.Add(2.5)
	r.Subtract(1)
	assert.InDelta(t, 6.5, r.Recall(), 1e-12)

	r.Clear()
	assert.Equal(t, 0.0, r.Recall())
}

func TestRegisterAddThenSubtractRestores(t *testing.T) {
	var r memory.Register
	r.Add(3)
	before := r.Recall()
	r.Add(0.1)
	r.Subtract(0.1)
	assert.InDelta(t, before, r.Recall(), 1e-12)
}
