package termc

import "strconv"

// expected is a shortcut to create a diagnostic in the form
// "Expected <what>. Found: <lexeme>" pointing at a token. The Found part is
// omitted when tok is the end of input.
func expected(kind ErrorKind, what string, tok Token) *Diagnostic {
	msg := "Expected " + what + "."
	if tok.Kind != TokenEOF {
		msg += " Found: " + tok.Text
	}
	return &Diagnostic{Kind: kind, Msg: msg, Span: tok.Span}
}

// missingSymbol is an error for a required token that is absent, e.g. a
// close paren at the end of input.
func missingSymbol(sym string, tok Token) *Diagnostic {
	return expected(KindSyntax, "symbol "+strconv.Quote(sym), tok)
}

// noOperand is an error for a token which cannot start an operand.
func noOperand(tok Token) *Diagnostic {
	return expected(KindSyntax, "function or operation", tok)
}

// unknownFunc is an error for a call to a name that is not a function.
func unknownFunc(tok Token) *Diagnostic {
	return expected(KindUndefined, "function or operation", tok)
}

// trailing is an error for input remaining after a complete statement.
func trailing(tok Token) *Diagnostic {
	return expected(KindSyntax, "end of input", tok)
}

// headerError is an error in the name or parameter list of a definition.
// Unlike the other messages, it does not include the lexeme.
func headerError(what string, tok Token) *Diagnostic {
	return &Diagnostic{Kind: KindSyntax, Msg: "Expected " + what + ".", Span: tok.Span}
}
