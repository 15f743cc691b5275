package termc

import (
	"maps"
	"slices"
)

// UserFunc is a function defined at runtime.
type UserFunc struct {
	// Params is the ordered list of distinct parameter names.
	Params []string
	// Body is the expression the function evaluates, with its parameters
	// bound to the call's arguments.
	Body *Expr
}

// Symbols is a table of user-defined constants and functions layered over
// the built-in ones. Within the user tier, each name is either a constant or
// a function, never both. User entries take precedence over built-ins of the
// same kind. The zero value is an empty table ready to use. Symbols is not
// safe for concurrent use.
type Symbols struct {
	consts map[string]complex128
	funcs  map[string]*UserFunc
}

// NewSymbols creates an empty symbol table.
func NewSymbols() *Symbols {
	return &Symbols{
		consts: make(map[string]complex128),
		funcs:  make(map[string]*UserFunc),
	}
}

// SetConst defines or redefines a user constant. Any user function of the
// same name is removed.
func (s *Symbols) SetConst(name string, v complex128) {
	if s.consts == nil {
		s.consts = make(map[string]complex128)
	}
	delete(s.funcs, name)
	s.consts[name] = v
}

// SetFunc defines or redefines a user function. Any user constant of the
// same name is removed. f must not be modified afterward.
func (s *Symbols) SetFunc(name string, f *UserFunc) {
	if s.funcs == nil {
		s.funcs = make(map[string]*UserFunc)
	}
	delete(s.consts, name)
	s.funcs[name] = f
}

// Const returns the value of a user or built-in constant.
func (s *Symbols) Const(name string) (complex128, bool) {
	if v, ok := s.consts[name]; ok {
		return v, true
	}
	return BuiltinConst(name)
}

// UserConst returns the value of a user constant only.
func (s *Symbols) UserConst(name string) (complex128, bool) {
	v, ok := s.consts[name]
	return v, ok
}

// Func returns the user function with the given name, or nil if there is
// none.
func (s *Symbols) Func(name string) *UserFunc {
	return s.funcs[name]
}

// IsFunction returns whether name is a user or built-in function.
func (s *Symbols) IsFunction(name string) bool {
	return s.funcs[name] != nil || globalfuncs[name] != nil
}

// ConstNames returns the names of all user constants in sorted order.
func (s *Symbols) ConstNames() []string {
	return slices.Sorted(maps.Keys(s.consts))
}

// FuncNames returns the names of all user functions in sorted order.
func (s *Symbols) FuncNames() []string {
	return slices.Sorted(maps.Keys(s.funcs))
}

// callee resolves the name of a called function, or returns nil if there
// is no such function. User functions come first.
func (s *Symbols) callee(name string) callable {
	if f := s.funcs[name]; f != nil {
		return f
	}
	if f := globalfuncs[name]; f != nil {
		return builtin{f}
	}
	return nil
}

// Define applies a parsed definition. A constant's body is evaluated first,
// and the constant is defined only if evaluation succeeds. A function is
// defined only if every name in its body is a parameter or a currently
// defined constant, and every call in its body is to a currently defined
// function with the right number of arguments. In particular, a function
// may refer to itself only if it is being redefined. On error, s is not
// modified.
func (s *Symbols) Define(def *Definition, opts ...ContextOption) error {
	if !def.Func {
		v, err := Eval(def.Body, s, opts...)
		if err != nil {
			return err
		}
		s.SetConst(def.Name, v)
		return nil
	}
	if err := s.check(def.Params, def.Body.n); err != nil {
		return err
	}
	s.SetFunc(def.Name, &UserFunc{Params: slices.Clone(def.Params), Body: def.Body})
	return nil
}

// check finds the first name or call in body that does not resolve.
func (s *Symbols) check(params []string, body *node) error {
	var err error
	body.walk(func(n *node) {
		if err != nil {
			return
		}
		switch n.kind {
		case nodeName:
			if slices.Contains(params, n.name) {
				return
			}
			if _, ok := s.Const(n.name); !ok {
				err = undefinedName(n)
			}
		case nodeCall:
			fn := s.callee(n.name)
			switch {
			case fn == nil:
				err = undefinedFunc(n)
			case fn.Arity() != len(n.args):
				err = arityError(n, fn.Arity())
			}
		}
	})
	return err
}
