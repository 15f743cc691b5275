package termc

import (
	"errors"
	"strconv"
	"strings"
)

// MaxDepth is the default limit on nested user function calls.
const MaxDepth = 256

// ContextOption is an option for evaluation.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  complex128
	}
	varsopt  map[string]complex128
	depthopt int
)

func (varopt) ctxOption()   {}
func (varsopt) ctxOption()  {}
func (depthopt) ctxOption() {}

// SetVar binds a name for the top level of an evaluation. Bound names
// resolve before constants, as function parameters do.
func SetVar(name string, val complex128) ContextOption {
	return varopt{name, val}
}

// SetVars binds any number of names for the top level of an evaluation.
func SetVars(vars map[string]complex128) ContextOption {
	return varsopt(vars)
}

// Depth sets the limit on nested user function calls. The default is
// MaxDepth. With a limit of 0, no user function can be called.
func Depth(n int) ContextOption {
	return depthopt(n)
}

// evalctx holds the state of one evaluation.
type evalctx struct {
	syms *Symbols
	// depth is the number of user function calls in progress.
	depth int
	max   int
}

// Eval evaluates an expression. Names resolve to bound variables, then to
// user constants in s, then to built-in constants. Calls resolve to user
// functions in s, then to built-ins. A nil s has only the built-ins. Every
// error is a *Diagnostic.
func Eval(e *Expr, s *Symbols, opts ...ContextOption) (complex128, error) {
	if s == nil {
		s = &Symbols{}
	}
	ctx := evalctx{syms: s, max: MaxDepth}
	var top map[string]complex128
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			if top == nil {
				top = make(map[string]complex128)
			}
			top[opt.name] = opt.val
		case varsopt:
			if top == nil {
				top = make(map[string]complex128, len(opt))
			}
			for k, v := range opt {
				top[k] = v
			}
		case depthopt:
			ctx.max = int(opt)
		default:
			panic("termc: unknown option type")
		}
	}
	return e.n.eval(&ctx, top)
}

// EvalString is a shortcut to parse and evaluate an expression using only
// the built-ins.
func EvalString(src string, opts ...ContextOption) (complex128, error) {
	st, err := Parse(src)
	if err != nil {
		return 0, err
	}
	if st.Expr == nil {
		return 0, headerError("expression", Token{Span: st.Def.Span})
	}
	return Eval(st.Expr, nil, opts...)
}

// eval computes the value of the node. scope holds the parameters of the
// function being evaluated, if any.
func (n *node) eval(ctx *evalctx, scope map[string]complex128) (complex128, error) {
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeName:
		if v, ok := scope[n.name]; ok {
			return v, nil
		}
		if v, ok := ctx.syms.Const(n.name); ok {
			return v, nil
		}
		return 0, undefinedName(n)
	case nodeCall:
		return n.call(ctx, scope)
	case nodeNeg:
		x, err := n.left.eval(ctx, scope)
		if err != nil {
			return 0, err
		}
		// Not -x, which negates the zero imaginary part of a real operand.
		return Sub(0, x), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(ctx, scope)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx, scope)
		if err != nil {
			return 0, err
		}
		var v complex128
		switch n.kind {
		case nodeAdd:
			v = Add(l, r)
		case nodeSub:
			v = Sub(l, r)
		case nodeMul:
			v = Mul(l, r)
		case nodeDiv:
			v, err = Div(l, r)
		case nodePow:
			v, err = Pow(l, r)
		}
		if err != nil {
			return 0, domainError(n, err)
		}
		return unsigned(v), nil
	default:
		panic("termc: invalid AST node " + n.kind.String())
	}
}

// call evaluates a call node. The arguments are evaluated in the caller's
// scope.
func (n *node) call(ctx *evalctx, scope map[string]complex128) (complex128, error) {
	fn := ctx.syms.callee(n.name)
	if fn == nil {
		return 0, undefinedFunc(n)
	}
	if k := fn.Arity(); len(n.args) != k {
		return 0, arityError(n, k)
	}
	args := make([]complex128, len(n.args))
	for i, arg := range n.args {
		v, err := arg.eval(ctx, scope)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	return fn.invoke(ctx, n, args)
}

// callable is what a call resolves to: a built-in or a user function.
type callable interface {
	Arity() int
	invoke(ctx *evalctx, call *node, args []complex128) (complex128, error)
}

type builtin struct {
	Func
}

func (b builtin) invoke(ctx *evalctx, call *node, args []complex128) (complex128, error) {
	v, err := b.Call(args)
	if err != nil {
		return 0, domainError(call, err)
	}
	// cos(pi) is -1-0i; ln(cos(pi)) must still be πi.
	return unsigned(v), nil
}

// Arity returns the number of parameters of f.
func (f *UserFunc) Arity() int {
	return len(f.Params)
}

func (f *UserFunc) invoke(ctx *evalctx, call *node, args []complex128) (complex128, error) {
	if ctx.depth >= ctx.max {
		msg := "Recursion limit of " + strconv.Itoa(ctx.max) + " exceeded. Found: " + call.name
		return 0, &Diagnostic{Kind: KindRecursion, Msg: msg, Span: call.span}
	}
	local := make(map[string]complex128, len(args))
	for i, p := range f.Params {
		local[p] = args[i]
	}
	ctx.depth++
	v, err := f.Body.n.eval(ctx, local)
	ctx.depth--
	if err != nil {
		return 0, ctx.reanchor(call, err)
	}
	return v, nil
}

// reanchor adapts an error from the body of a user function. The body's
// spans refer to the line where it was defined, so the outermost call on
// the current line takes over. The message names the innermost function.
func (ctx *evalctx) reanchor(call *node, err error) error {
	d, ok := err.(*Diagnostic)
	if !ok {
		return err
	}
	r := *d
	if !r.infunc {
		r.Msg = "In function " + call.name + ": " + r.Msg
		r.infunc = true
	}
	if ctx.depth == 0 {
		r.Span = call.span
	}
	return &r
}

func undefinedName(n *node) *Diagnostic {
	return &Diagnostic{Kind: KindUndefined, Msg: "Undefined symbol. Found: " + n.name, Span: n.span}
}

func undefinedFunc(n *node) *Diagnostic {
	return &Diagnostic{Kind: KindUndefined, Msg: "Undefined function. Found: " + n.name, Span: n.span}
}

func arityError(n *node, want int) *Diagnostic {
	msg := "Expected " + strconv.Itoa(want) + " argument(s). Found: " + strconv.Itoa(len(n.args)) + " argument(s)"
	return &Diagnostic{Kind: KindArity, Msg: msg, Span: n.span}
}

// domainError wraps an error from ComplexMath at the node that caused it.
func domainError(n *node, err error) *Diagnostic {
	var de *DomainError
	if !errors.As(err, &de) {
		return &Diagnostic{Kind: KindDomain, Msg: err.Error(), Span: n.span, Err: err}
	}
	what := de.Func
	if len(what) == 1 && strings.Contains(Operators, what) {
		what = "operator " + what
	}
	msg := "Expected argument inside the domain of " + what + ". Found: " + FormatValue(de.X)
	return &Diagnostic{Kind: KindDomain, Msg: msg, Span: n.span, Err: err}
}
