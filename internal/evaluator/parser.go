package evaluator

import (
	"strconv"
	"strings"

	"github.com/njchilds90/gocalc/internal/calcerr"
	"github.com/njchilds90/gocalc/internal/lexer"
)

const maxDepth = 200

type node interface {
	eval(e *env) (float64, error)
}

type numberNode struct{ v float64 }

type identNode struct {
	name string
	pos  int
}

type unaryNode struct {
	neg bool
	x   node
}

type binaryNode struct {
	op   lexer.Kind
	l, r node
}

type callNode struct {
	name string
	pos  int
	args []node
}

type parser struct {
	l     *lexer.Lexer
	cur   lexer.Token
	mode  Mode
	depth int
}

func parse(text string, mode Mode) (node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, calcerr.New(calcerr.ErrEmpty, "expression is blank")
	}
	p := &parser{l: lexer.New(text), mode: mode}
	p.next()
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.EOF {
		return nil, p.unexpected()
	}
	return n, nil
}

func (p *parser) next() { p.cur = p.l.Next() }

func (p *parser) errorf(format string, args ...any) error {
	return calcerr.New(calcerr.ErrParse, "position %d: "+format, append([]any{p.cur.Pos}, args...)...)
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

func (p *parser) parseExpr() (node, error) {
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
		left = &binaryNode{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.Star || p.cur.Kind == lexer.Slash {
		op := p.cur.Kind
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, l: left, r: right}
	}
	return left, nil
}

// parseUnary binds looser than power: -2^2 is -4.
func (p *parser) parseUnary() (node, error) {
	switch p.cur.Kind {
	case lexer.Minus, lexer.Plus:
		neg := p.cur.Kind == lexer.Minus
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{neg: neg, x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.Caret {
		return base, nil
	}
	if p.mode == Basic {
		return nil, p.errorf("power operator is not available in basic mode")
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &binaryNode{op: lexer.Caret, l: base, r: exp}, nil
}

func (p *parser) parsePrimary() (node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, p.errorf("expression nested too deeply")
	}

	switch p.cur.Kind {
	case lexer.Number:
		v, err := strconv.ParseFloat(p.cur.Text, 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", p.cur.Text)
		}
		p.next()
		return numberNode{v: v}, nil
	case lexer.Ident:
		name, pos := p.cur.Text, p.cur.Pos
		p.next()
		if p.cur.Kind != lexer.LParen {
			return identNode{name: name, pos: pos}, nil
		}
		p.next()
		var args []node
		if p.cur.Kind != lexer.RParen {
			for {
				a, err := p.parseExpr()
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
		return &callNode{name: name, pos: pos, args: args}, nil
	case lexer.LParen:
		p.next()
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != lexer.RParen {
			return nil, p.errorf("expected ')'")
		}
		p.next()
		return n, nil
	}
	return nil, p.unexpected()
}
