package termc

import "slices"

// Statement = Definition | Expr EOF
// Definition = ident '=' Expr EOF | ident '(' [ident { ',' ident }] ')' '=' Expr EOF
// Expr = num | name | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = name '(' [Expr { ',' Expr }] ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr
//
// Mul by juxtaposition requires the operands to touch, and the left one to
// end with a number or a close paren: 3i, 2pi, 2(x), (x)(y), (x)2.

// Expr is a parsed expression that can be evaluated against a symbol table.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// String creates a fully parenthesized representation of the parsed
// expression.
func (e *Expr) String() string {
	return e.n.String()
}

// Statement is a parsed input line. Exactly one of Expr and Def is non-nil.
type Statement struct {
	Expr *Expr
	Def  *Definition
}

// Definition is a parsed constant or function definition.
type Definition struct {
	// Name is the name being defined.
	Name string
	// Params is the ordered list of parameter names of a function. The names
	// are distinct.
	Params []string
	// Body is the defining expression.
	Body *Expr
	// Func is whether the definition is of a function. A function may have
	// no parameters, as with f() = 1.
	Func bool
	// Span is the span of the defined name.
	Span Span
}

// Parse tokenizes and parses one line. The given options are applied in
// order.
func Parse(line string, opts ...ParseOption) (*Statement, error) {
	return ParseTokens(Tokenize(line), opts...)
}

// ParseTokens parses one line from its tokens. A line is a definition if it
// contains an = outside of any parentheses; otherwise it is an expression.
// Every error is a *Diagnostic.
func ParseTokens(toks []Token, opts ...ParseOption) (*Statement, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != TokenEOF {
		end := 0
		if len(toks) > 0 {
			end = toks[len(toks)-1].Span.End
		}
		toks = append(toks[:len(toks):len(toks)], Token{Kind: TokenEOF, Span: Span{end, end}})
	}
	scan := &scanner{toks: toks}
	if isdef(toks) {
		def, err := parsedef(scan, &p)
		if err != nil {
			return nil, err
		}
		return &Statement{Def: def}, nil
	}
	n, err := parseexpr(scan, &p)
	if err != nil {
		return nil, err
	}
	return &Statement{Expr: &Expr{n: n}}, nil
}

// scanner steps through a token list. Reading past the end repeats the final
// EOF token.
type scanner struct {
	toks []Token
	k    int
}

func (s *scanner) next() Token {
	s.k++
	return s.at(s.k - 1)
}

// push unreads the last token.
func (s *scanner) push() {
	s.k--
}

// prev returns the token before the last one read.
func (s *scanner) prev() Token {
	if s.k < 2 {
		return Token{}
	}
	return s.at(s.k - 2)
}

func (s *scanner) at(k int) Token {
	return s.toks[min(k, len(s.toks)-1)]
}

// isdef reports whether toks contain an = at paren depth zero.
func isdef(toks []Token) bool {
	depth := 0
	for _, tok := range toks {
		switch tok.Kind {
		case TokenOpen:
			depth++
		case TokenClose:
			depth--
		case TokenAssign:
			if depth == 0 {
				return true
			}
		case TokenEOF:
			return false
		}
	}
	return false
}

// parsedef parses a definition header and its body.
func parsedef(scan *scanner, p *parsectx) (*Definition, error) {
	name := scan.next()
	if name.Kind != TokenIdent {
		return nil, headerError("constant or function name", name)
	}
	def := Definition{Name: name.Text, Span: name.Span}
	tok := scan.next()
	if tok.Kind == TokenOpen {
		def.Func = true
		def.Params = []string{}
		tok = scan.next()
		for tok.Kind != TokenClose {
			if tok.Kind != TokenIdent {
				return nil, headerError("parameter name", tok)
			}
			if slices.Contains(def.Params, tok.Text) {
				return nil, headerError("distinct parameter names", tok)
			}
			def.Params = append(def.Params, tok.Text)
			tok = scan.next()
			switch tok.Kind {
			case TokenClose:
			case TokenSep:
				tok = scan.next()
				if tok.Kind == TokenClose {
					return nil, headerError("parameter name", tok)
				}
			default:
				return nil, missingSymbol(")", tok)
			}
		}
		tok = scan.next()
	}
	if tok.Kind != TokenAssign {
		return nil, headerError(`symbol "="`, tok)
	}
	n, err := parseexpr(scan, p)
	if err != nil {
		return nil, err
	}
	def.Body = &Expr{n: n}
	return &def, nil
}

// parseexpr parses an entire expression up to the end of input.
func parseexpr(scan *scanner, p *parsectx) (*node, error) {
	n, err := parseterm(scan, p, exprprec)
	if err != nil {
		return nil, err
	}
	if tok := scan.next(); tok.Kind != TokenEOF {
		return nil, trailing(tok)
	}
	return n, nil
}

// parseterm parses a term whose operators all bind more tightly than until.
// If there is no error, then parseterm pushes the last token it scans,
// including EOF.
func parseterm(scan *scanner, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	for {
		tok := scan.next()
		switch tok.Kind {
		case TokenOp:
			prec := binop(tok.Text)
			if prec.op == nodeNone || !prec.moreBinding(until) {
				scan.push()
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, left: n, right: rhs, span: tok.Span}
		case TokenNum, TokenIdent, TokenOpen:
			// (parsed)x -> (parsed) * (x)
			// (parsed)x^(expr) -> (parsed) * (x^(expr))
			// a^(parsed)x -> (a^(parsed)) * (x)
			ok := implicit(scan.prev(), tok)
			scan.push()
			if !ok || !termprec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, p, termprec)
			if err != nil {
				return nil, err
			}
			// There is no operator token, so point at the start of the
			// right operand.
			at := Span{tok.Span.Start, tok.Span.Start}
			n = &node{kind: nodeMul, left: n, right: rhs, span: at}
		default:
			// End of term. The caller decides whether the token is valid.
			scan.push()
			return n, nil
		}
	}
}

// implicit reports whether tok directly following prev starts an implied
// multiplication.
func implicit(prev, tok Token) bool {
	if prev.Span.End != tok.Span.Start {
		return false
	}
	switch prev.Kind {
	case TokenNum:
		return tok.Kind == TokenIdent || tok.Kind == TokenOpen
	case TokenClose:
		return tok.Kind == TokenIdent || tok.Kind == TokenNum || tok.Kind == TokenOpen
	default:
		return false
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// and any encountered token must be valid as the start of an operand.
func parselhs(scan *scanner, p *parsectx, until operator) (*node, error) {
	tok := scan.next()
	switch tok.Kind {
	case TokenNum:
		v, err := parseNum(tok.Text)
		if err != nil {
			return nil, noOperand(tok)
		}
		return &node{kind: nodeNum, name: tok.Text, val: complex(v, 0), span: tok.Span}, nil
	case TokenIdent:
		if open := scan.next(); open.Kind == TokenOpen {
			return parsecall(scan, p, tok)
		}
		scan.push()
		return &node{kind: nodeName, name: tok.Text, span: tok.Span}, nil
	case TokenOp:
		prec := unop(tok.Text)
		if prec.op == nodeNone {
			return nil, noOperand(tok)
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if tok.Text == "+" {
			return rhs, nil
		}
		return &node{kind: prec.op, left: rhs, span: tok.Span}, nil
	case TokenOpen:
		n, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		if end := scan.next(); end.Kind != TokenClose {
			return nil, missingSymbol(")", end)
		}
		return n, nil
	default:
		return nil, noOperand(tok)
	}
}

// parsecall parses the argument list of a call to name. The open paren has
// already been consumed.
func parsecall(scan *scanner, p *parsectx, name Token) (*node, error) {
	if p.funcs != nil && !p.funcs.IsFunction(name.Text) {
		return nil, unknownFunc(name)
	}
	n := &node{kind: nodeCall, name: name.Text, span: name.Span}
	if end := scan.next(); end.Kind == TokenClose {
		return n, nil
	}
	scan.push()
	for {
		arg, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		n.args = append(n.args, arg)
		switch end := scan.next(); end.Kind {
		case TokenClose:
			return n, nil
		case TokenSep:
			// Another argument follows.
		default:
			return nil, missingSymbol(")", end)
		}
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone. Unary plus reports
// nodeNeg with the same precedence; the parser drops it instead.
func unop(text string) operator {
	switch text {
	case "+", "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the precedence for parsing implied multiplications. It
	// should match that of multiplication.
	termprec = operator{5, false, nodeMul}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
