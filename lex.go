package termc

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical token of an input line.
type Token struct {
	Kind TokenKind
	// Text is the lexeme exactly as it appears in the input.
	Text string
	Span Span
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Span.Start)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenEOF marks the end of the input. It is always the last token.
	TokenEOF
	// TokenNum is a real number literal.
	TokenNum
	// TokenIdent is a constant, function, or parameter name.
	TokenIdent
	// TokenOp is one of the arithmetic operators + - * / ^.
	TokenOp
	// TokenAssign is the = of a definition.
	TokenAssign
	// TokenOpen is (.
	TokenOpen
	// TokenClose is ).
	TokenClose
	// TokenSep separates function arguments and parameters.
	TokenSep
	// TokenUnknown is a rune that begins no other token.
	TokenUnknown
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenNum:
		return "Num"
	case TokenIdent:
		return "Ident"
	case TokenOp:
		return "Op"
	case TokenAssign:
		return "Assign"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	case TokenSep:
		return "Sep"
	case TokenUnknown:
		return "Unknown"
	default:
		return "None"
	}
}

// Operators contains the runes which are lexed as binary or unary operators.
const Operators = "+-*/^"

type lexer struct {
	src string
	pos int
}

// Tokenize splits a line into tokens. It never fails: runes that cannot
// start a token become TokenUnknown tokens, which the parser rejects with a
// diagnostic pointing at them. The result always ends with a TokenEOF token.
func Tokenize(line string) []Token {
	l := lexer{src: line}
	var toks []Token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks
		}
	}
}

// peek returns the rune at byte offset k past the current position, or -1 at
// the end of the input.
func (l *lexer) peek(k int) rune {
	if l.pos+k >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos+k:])
	return r
}

func (l *lexer) next() Token {
	for l.pos < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += sz
	}
	start := l.pos
	if start >= len(l.src) {
		return Token{Kind: TokenEOF, Span: Span{start, start}}
	}
	r, sz := utf8.DecodeRuneInString(l.src[start:])
	var kind TokenKind
	switch {
	case isDigit(r), r == '.' && isDigit(l.peek(1)):
		l.scanNum()
		kind = TokenNum
	case r == '_', unicode.IsLetter(r):
		l.scanIdent()
		kind = TokenIdent
	case strings.ContainsRune(Operators, r):
		l.pos += sz
		kind = TokenOp
	case r == '=':
		l.pos += sz
		kind = TokenAssign
	case r == '(':
		l.pos += sz
		kind = TokenOpen
	case r == ')':
		l.pos += sz
		kind = TokenClose
	case r == ',':
		l.pos += sz
		kind = TokenSep
	default:
		l.pos += sz
		kind = TokenUnknown
	}
	return Token{Kind: kind, Text: l.src[start:l.pos], Span: Span{start, l.pos}}
}

// scanNum advances over a number literal. The caller guarantees that the
// literal starts with a digit or with a dot followed by a digit.
func (l *lexer) scanNum() {
	if l.peek(0) == '0' {
		var ok func(rune) bool
		switch l.peek(1) {
		case 'x':
			ok = isHexDigit
		case 'o':
			ok = isOctDigit
		case 'b':
			ok = isBinDigit
		}
		// A prefix only counts if a digit of its base follows; otherwise
		// 0xy is the number 0 followed by the identifier xy.
		if ok != nil && ok(l.peek(2)) {
			l.pos += 2
			for ok(l.peek(0)) {
				l.pos++
			}
			return
		}
	}
	for isDigit(l.peek(0)) {
		l.pos++
	}
	if l.peek(0) == '.' {
		l.pos++
		for isDigit(l.peek(0)) {
			l.pos++
		}
	}
	// Only an upper-case E is an exponent marker, because e is a constant:
	// 2e is 2*e. The marker needs digits after it to count.
	if l.peek(0) == 'E' {
		k := 1
		if r := l.peek(1); r == '+' || r == '-' {
			k = 2
		}
		if isDigit(l.peek(k)) {
			l.pos += k
			for isDigit(l.peek(0)) {
				l.pos++
			}
		}
	}
}

func (l *lexer) scanIdent() {
	for l.pos < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}
		l.pos += sz
	}
}

func isDigit(r rune) bool    { return '0' <= r && r <= '9' }
func isOctDigit(r rune) bool { return '0' <= r && r <= '7' }
func isBinDigit(r rune) bool { return r == '0' || r == '1' }

func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

// parseNum converts the text of a TokenNum to its value.
func parseNum(text string) (float64, error) {
	if len(text) > 2 && text[0] == '0' {
		base := 0
		switch text[1] {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		if base != 0 {
			u, err := strconv.ParseUint(text[2:], base, 64)
			if err != nil {
				// Too many digits. Accumulate in floating point instead.
				var f float64
				for _, r := range text[2:] {
					d, _ := strconv.ParseUint(string(r), base, 8)
					f = f*float64(base) + float64(d)
				}
				return f, nil
			}
			return float64(u), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			// Overflow gives ±Inf, underflow gives 0; both are usable.
			return f, nil
		}
		return 0, err
	}
	return f, nil
}
