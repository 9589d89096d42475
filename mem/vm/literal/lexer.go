package literal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenLBrace
	tokenRBrace
	tokenLBracket
	tokenRBracket
	tokenColon
	tokenComma
	tokenNumber
	tokenString
	tokenIdent
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenColon:
		return "':'"
	case tokenComma:
		return "','"
	case tokenNumber:
		return "number"
	case tokenString:
		return "string"
	case tokenIdent:
		return "identifier"
	default:
		return "unknown token"
	}
}

type token struct {
	kind   tokenKind
	text   string
	offset int
}

// A SyntaxError reports where the input stopped making sense.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) errorf(offset int, format string, args ...any) error {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()

	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokenEOF, offset: start}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '{':
		l.pos++
		return token{kind: tokenLBrace, text: "{", offset: start}, nil
	case c == '}':
		l.pos++
		return token{kind: tokenRBrace, text: "}", offset: start}, nil
	case c == '[':
		l.pos++
		return token{kind: tokenLBracket, text: "[", offset: start}, nil
	case c == ']':
		l.pos++
		return token{kind: tokenRBracket, text: "]", offset: start}, nil
	case c == ':':
		l.pos++
		return token{kind: tokenColon, text: ":", offset: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokenComma, text: ",", offset: start}, nil
	case c == '"' || c == '\'':
		return l.lexString()
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return l.lexNumber()
	case isIdentStart(c):
		return l.lexIdent(), nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return token{}, l.errorf(start, "unexpected character %q", r)
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos

	if c := l.src[l.pos]; c == '-' || c == '+' {
		l.pos++
	}

	mantissaDigits := l.skipDigits()
	if l.peekByte() == '.' {
		l.pos++
		mantissaDigits += l.skipDigits()
	}

	if mantissaDigits == 0 {
		return token{}, l.errorf(start, "malformed number %q",
			l.src[start:l.pos])
	}

	if c := l.peekByte(); c == 'e' || c == 'E' {
		l.pos++
		if c := l.peekByte(); c == '-' || c == '+' {
			l.pos++
		}

		if l.skipDigits() == 0 {
			return token{}, l.errorf(start, "malformed exponent in %q",
				l.src[start:l.pos])
		}
	}

	if c := l.peekByte(); isIdentStart(c) || isDigit(c) || c == '.' {
		return token{}, l.errorf(l.pos,
			"unexpected character %q after number", rune(c))
	}

	return token{kind: tokenNumber, text: l.src[start:l.pos], offset: start}, nil
}

func (l *lexer) lexString() (token, error) {
	start := l.pos
	quote := l.src[l.pos]
	l.pos++

	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == quote:
			l.pos++
			return token{kind: tokenString, text: b.String(), offset: start}, nil
		case c == '\n':
			return token{}, l.errorf(l.pos, "newline in string")
		case c == '\\':
			if l.pos+1 >= len(l.src) {
				return token{}, l.errorf(l.pos, "unterminated escape")
			}

			b.WriteByte(unescape(l.src[l.pos+1]))
			l.pos += 2
		default:
			b.WriteByte(c)
			l.pos++
		}
	}

	return token{}, l.errorf(start, "unterminated string")
}

func (l *lexer) lexIdent() token {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}

	return token{kind: tokenIdent, text: l.src[start:l.pos], offset: start}
}

func (l *lexer) skipDigits() int {
	n := 0
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
		n++
	}

	return n
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}

	return l.src[l.pos]
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
