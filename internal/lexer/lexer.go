// Package lexer tokenizes calculator expressions for the numeric and
// symbolic parsers.
package lexer

import (
	"unicode"
	"unicode/utf8"
)

type Kind uint8

const (
	EOF Kind = iota
	Number
	Ident
	Plus
	Minus
	Star
	Slash
	Caret // '^' or '**'
	LParen
	RParen
	Comma
	Illegal
)

type Token struct {
	Kind Kind
	Text string
	Pos  int
}

type Lexer struct {
	s string
	i int
}

func New(s string) *Lexer { return &Lexer{s: s} }

// Next returns the next token. Unrecognised input yields an Illegal token.
func (l *Lexer) Next() Token {
	for l.i < len(l.s) {
		r, size := utf8.DecodeRuneInString(l.s[l.i:])
		if !unicode.IsSpace(r) {
			break
		}
		l.i += size
	}
	if l.i >= len(l.s) {
		return Token{Kind: EOF, Pos: l.i}
	}
	start := l.i
	single := func(k Kind) Token {
		l.i++
		return Token{Kind: k, Text: l.s[start:l.i], Pos: start}
	}
	switch l.s[l.i] {
	case '+':
		return single(Plus)
	case '-':
		return single(Minus)
	case '*':
		if l.i+1 < len(l.s) && l.s[l.i+1] == '*' {
			l.i += 2
			return Token{Kind: Caret, Text: "**", Pos: start}
		}
		return single(Star)
	case '/':
		return single(Slash)
	case '^':
		return single(Caret)
	case '(':
		return single(LParen)
	case ')':
		return single(RParen)
	case ',':
		return single(Comma)
	}

	r, size := utf8.DecodeRuneInString(l.s[l.i:])
	if isIdentStart(r) {
		l.i += size
		for l.i < len(l.s) {
			r2, size2 := utf8.DecodeRuneInString(l.s[l.i:])
			if !isIdentContinue(r2) {
				break
			}
			l.i += size2
		}
		return Token{Kind: Ident, Text: l.s[start:l.i], Pos: start}
	}
	if r == '.' || unicode.IsDigit(r) {
		end := scanNumber(l.s, l.i)
		if end > l.i {
			l.i = end
			return Token{Kind: Number, Text: l.s[start:l.i], Pos: start}
		}
	}
	l.i += size
	return Token{Kind: Illegal, Text: string(r), Pos: start}
}

func scanNumber(s string, i int) int {
	start := i
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return start
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || r == 'π' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// All tokenizes s up to and including the EOF token.
func All(s string) []Token {
	l := New(s)
	var out []Token
	for {
		t := l.Next()
		out = append(out, t)
		if t.Kind == EOF {
			return out
		}
	}
}
