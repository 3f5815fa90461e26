package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/gocalc/internal/lexer"
)

func kinds(toks []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestAll(t *testing.T) {
	toks := lexer.All("2*x ** 3 - sin(1.5e-3, y)")
	assert.Equal(t, []lexer.Kind{
		lexer.Number, lexer.Star, lexer.Ident, lexer.Caret, lexer.Number, lexer.Minus,
		lexer.Ident, lexer.LParen, lexer.Number, lexer.Comma, lexer.Ident, lexer.RParen, lexer.EOF,
	}, kinds(toks))
	assert.Equal(t, "**", toks[3].Text)
	assert.Equal(t, "1.5e-3", toks[8].Text)
}

func TestNumberForms(t *testing.T) {
	for _, in := range []string{"42", "3.14", ".5", "1e10", "2.5E+3"} {
		toks := lexer.All(in)
		assert.Equal(t, lexer.Number, toks[0].Kind, in)
		assert.Equal(t, in, toks[0].Text, in)
	}
}

func TestExponentWithoutDigitsIsIdent(t *testing.T) {
	toks := lexer.All("2e")
	assert.Equal(t, []lexer.Kind{lexer.Number, lexer.Ident, lexer.EOF}, kinds(toks))
}

func TestIllegal(t *testing.T) {
	toks := lexer.All("2 $ 3")
	assert.Equal(t, lexer.Illegal, toks[1].Kind)
	assert.Equal(t, "$", toks[1].Text)
	assert.Equal(t, 2, toks[1].Pos)
}

func TestUnicodePi(t *testing.T) {
	toks := lexer.All("2π")
	assert.Equal(t, lexer.Ident, toks[1].Kind)
	assert.Equal(t, "π", toks[1].Text)
}
