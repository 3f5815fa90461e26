package algebra

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/njchilds90/gocalc/internal/lexer"
)

// ============================================================
// Parser
// ============================================================

// SyntaxError reports malformed expression text. Pos is a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

const maxParseDepth = 200

type parser struct {
	l     *lexer.Lexer
	cur   lexer.Token
	depth int
}

// Parse reads an expression such as "3*x^2 - sin(x)/2". Numbers are exact
// rationals, "^" and "**" both mean power, and a number or closing
// parenthesis directly followed by a name or "(" multiplies ("2x", "(x+1)(x-1)").
// Recognised names are the kernel functions, log(x) and log(x, base), and
// the constants pi and e. Any other name is a symbol.
func Parse(text string) (Expr, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &SyntaxError{Msg: "empty expression"}
	}
	p := &parser{l: lexer.New(text)}
	p.next()
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.EOF {
		return nil, p.unexpected()
	}
	return e.Simplify(), nil
}

// MustParse is Parse for trusted input. It panics on error.
func MustParse(text string) Expr {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *parser) next() { p.cur = p.l.Next() }

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: p.cur.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unexpected() error {
	switch p.cur.Kind {
	case lexer.EOF:
		return p.errorf("unexpected end of input")
	case lexer.Illegal:
		return p.errorf("unexpected character %q", p.cur.Text)
	}
	return p.errorf("unexpected %q", p.cur.Text)
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.Plus || p.cur.Kind == lexer.Minus {
		op := p.cur.Kind
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		if op == lexer.Minus {
			right = MulOf(N(-1), right)
		}
		left = AddOf(left, right)
	}
	return left, nil
}

func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Kind {
		case lexer.Star, lexer.Slash:
			op := p.cur.Kind
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if op == lexer.Slash {
				right = PowOf(right, N(-1))
			}
			left = MulOf(left, right)
		case lexer.Ident, lexer.LParen, lexer.Number:
			// implicit multiplication: 2x, 2(x+1), (x+1)(x-1), x y
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = MulOf(left, right)
		default:
			return left, nil
		}
	}
}

// parseUnary binds looser than power, so -x^2 is -(x^2).
func (p *parser) parseUnary() (Expr, error) {
	switch p.cur.Kind {
	case lexer.Minus:
		p.next()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), e), nil
	case lexer.Plus:
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.Caret {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return PowOf(base, exp), nil
}

func (p *parser) parsePrimary() (Expr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxParseDepth {
		return nil, p.errorf("expression nested too deeply")
	}

	switch p.cur.Kind {
	case lexer.Number:
		text := p.cur.Text
		if strings.HasPrefix(text, ".") {
			text = "0" + text
		}
		r, ok := new(big.Rat).SetString(text)
		if !ok {
			return nil, p.errorf("invalid number %q", p.cur.Text)
		}
		p.next()
		return NRat(r), nil
	case lexer.Ident:
		name := p.cur.Text
		pos := p.cur.Pos
		p.next()
		if p.cur.Kind == lexer.LParen {
			return p.parseCall(name, pos)
		}
		switch name {
		case "pi", "π":
			return Pi, nil
		case "e":
			return E, nil
		}
		return S(name), nil
	case lexer.LParen:
		p.next()
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != lexer.RParen {
			return nil, p.errorf("expected ')'")
		}
		p.next()
		return e, nil
	}
	return nil, p.unexpected()
}

func (p *parser) parseCall(name string, pos int) (Expr, error) {
	if name != "sqrt" && name != "log" && !IsFunction(name) {
		return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unknown function %q", name)}
	}
	p.next() // '('
	var args []Expr
	if p.cur.Kind != lexer.RParen {
		for {
			a, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.cur.Kind != lexer.Comma {
				break
			}
			p.next()
		}
	}
	if p.cur.Kind != lexer.RParen {
		return nil, p.errorf("expected ')'")
	}
	p.next()

	switch name {
	case "log":
		switch len(args) {
		case 1:
			return LnOf(args[0]), nil
		case 2:
			return MulOf(LnOf(args[0]), PowOf(LnOf(args[1]), N(-1))), nil
		}
		return nil, &SyntaxError{Pos: pos, Msg: "log takes 1 or 2 arguments"}
	case "sqrt":
		if len(args) != 1 {
			return nil, &SyntaxError{Pos: pos, Msg: "sqrt takes 1 argument"}
		}
		return SqrtOf(args[0]), nil
	}
	if len(args) != 1 {
		return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("%s takes 1 argument", name)}
	}
	return funcOf(name, args[0]).Simplify(), nil
}
