package termc

import "math"

// Func is a built-in function of complex arguments.
type Func interface {
	// Call evaluates the function. len(args) is always Arity(). Call may
	// modify the elements of args. Errors from Call should be
	// *DomainError values.
	Call(args []complex128) (complex128, error)

	// Arity returns the exact number of arguments the function takes.
	Arity() int
}

var globalfuncs = map[string]Func{
	"exp":  Monadic(Exp),
	"ln":   Partial(Ln),
	"sqrt": Monadic(Sqrt),
	"pow":  Dyadic(Pow),
	// root(x, n) is the n-th root of x.
	"root": Dyadic(func(x, n complex128) (complex128, error) { return Root(n, x) }),

	"cos": Monadic(Cos),
	"sin": Monadic(Sin),
	"tan": Partial(Tan),
	"cot": Partial(Cot),

	"acos": Monadic(Acos),
	"asin": Monadic(Asin),
	"atan": Partial(Atan),
	"acot": Partial(Acot),

	"cosh": Monadic(Cosh),
	"sinh": Monadic(Sinh),
	"tanh": Partial(Tanh),
	"coth": Partial(Coth),

	"acosh": Monadic(Acosh),
	"asinh": Monadic(Asinh),
	"atanh": Partial(Atanh),
	"acoth": Partial(Acoth),

	// long names
	"arccos":  Monadic(Acos),
	"arcsin":  Monadic(Asin),
	"arctan":  Partial(Atan),
	"arccot":  Partial(Acot),
	"arccosh": Monadic(Acosh),
	"arcsinh": Monadic(Asinh),
	"arctanh": Partial(Atanh),
	"arccoth": Partial(Acoth),
}

var globalconsts = map[string]complex128{
	"e":  math.E,
	"pi": math.Pi,
	"i":  1i,
}

// Builtin returns the built-in function with the given name, or nil if there
// is none.
func Builtin(name string) Func {
	return globalfuncs[name]
}

// BuiltinConst returns the value of a built-in constant and whether it
// exists.
func BuiltinConst(name string) (complex128, bool) {
	v, ok := globalconsts[name]
	return v, ok
}

type monadic struct {
	f func(z complex128) complex128
}

func (m monadic) Call(args []complex128) (complex128, error) {
	return m.f(args[0]), nil
}

func (monadic) Arity() int {
	return 1
}

// Monadic wraps an everywhere-defined function of one variable into a Func.
func Monadic(f func(z complex128) complex128) Func {
	return monadic{f}
}

type partial struct {
	f func(z complex128) (complex128, error)
}

func (p partial) Call(args []complex128) (complex128, error) {
	return p.f(args[0])
}

func (partial) Arity() int {
	return 1
}

// Partial wraps a function of one variable with singularities into a Func.
func Partial(f func(z complex128) (complex128, error)) Func {
	return partial{f}
}

type dyadic struct {
	f func(a, b complex128) (complex128, error)
}

func (d dyadic) Call(args []complex128) (complex128, error) {
	return d.f(args[0], args[1])
}

func (dyadic) Arity() int {
	return 2
}

// Dyadic wraps a function of two variables into a Func.
func Dyadic(f func(a, b complex128) (complex128, error)) Func {
	return dyadic{f}
}
