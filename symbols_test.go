package termc_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zephyrtronium/termc"
)

func TestSymbolsOneKindPerName(t *testing.T) {
	var s termc.Symbols // zero value is usable
	s.SetConst("f", 1)
	if !s.IsFunction("sin") || s.IsFunction("f") {
		t.Errorf("wrong functions after SetConst")
	}
	s.SetFunc("f", &termc.UserFunc{Params: []string{"x"}})
	if _, ok := s.UserConst("f"); ok {
		t.Errorf("f is still a constant after SetFunc")
	}
	if s.Func("f") == nil || !s.IsFunction("f") {
		t.Errorf("f is not a function after SetFunc")
	}
	s.SetConst("f", 2)
	if s.Func("f") != nil || s.IsFunction("f") {
		t.Errorf("f is still a function after SetConst")
	}
	if v, ok := s.Const("f"); !ok || v != 2 {
		t.Errorf("wrong value for f: want 2, got %v %t", v, ok)
	}
}

func TestSymbolsShadowBuiltins(t *testing.T) {
	s := termc.NewSymbols()
	s.SetConst("pi", 3)
	if v, _ := s.Const("pi"); v != 3 {
		t.Errorf("user pi: want 3, got %v", v)
	}
	if v, ok := s.Const("e"); !ok || v == 0 {
		t.Errorf("built-in e missing: %v %t", v, ok)
	}
	if _, ok := s.UserConst("e"); ok {
		t.Errorf("e is a user constant")
	}
	// A user constant does not hide a built-in function.
	s.SetConst("sin", 1)
	if !s.IsFunction("sin") {
		t.Errorf("sin is not a function under a constant of the same name")
	}
	r, err := evalIn(s, "sin(0) + sin")
	if err != nil {
		t.Fatal(err)
	}
	if r != 1 {
		t.Errorf("wrong result: want 1, got %v", r)
	}
}

func TestSymbolsNames(t *testing.T) {
	s := termc.NewSymbols()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		s.SetConst(name, 1)
	}
	define(t, s, "g(x) = x")
	define(t, s, "b() = 2")
	if got, want := s.ConstNames(), []string{"alpha", "mid", "zeta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("wrong constants: want %q, got %q", want, got)
	}
	if got, want := s.FuncNames(), []string{"b", "g"}; !reflect.DeepEqual(got, want) {
		t.Errorf("wrong functions: want %q, got %q", want, got)
	}
	var z termc.Symbols
	if len(z.ConstNames()) != 0 || len(z.FuncNames()) != 0 {
		t.Errorf("zero table has names")
	}
}

func TestDefine(t *testing.T) {
	s := termc.NewSymbols()
	define(t, s, "sq(x) = x^2")
	define(t, s, "c = sq(3)")
	if v, ok := s.UserConst("c"); !ok || v != 9 {
		t.Errorf("c: want 9, got %v %t", v, ok)
	}
	define(t, s, "c = c + 1")
	if v, _ := s.UserConst("c"); v != 10 {
		t.Errorf("c: want 10, got %v", v)
	}
	define(t, s, "c(x) = x")
	if _, ok := s.UserConst("c"); ok {
		t.Errorf("c is still a constant after function definition")
	}
	define(t, s, "sq = 4")
	if s.Func("sq") != nil {
		t.Errorf("sq is still a function after constant definition")
	}

	st, err := termc.Parse("h(a, b) = a*b")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Define(st.Def); err != nil {
		t.Fatal(err)
	}
	// The table keeps its own parameter list.
	st.Def.Params[0] = "z"
	if got := s.Func("h").Params; got[0] != "a" {
		t.Errorf("params changed through definition: %q", got)
	}
}

func TestDefineErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind termc.ErrorKind
		msg  string
		span termc.Span
	}{
		{"freename", "g(x) = y", termc.KindUndefined, "Undefined symbol. Found: y", termc.Span{7, 8}},
		{"freefunc", "g(x) = h(x)", termc.KindUndefined, "Undefined function. Found: h", termc.Span{7, 8}},
		{"self", "g(x) = g(x - 1)", termc.KindUndefined, "Undefined function. Found: g", termc.Span{7, 8}},
		{"arity", "g(x) = sin(x, x)", termc.KindArity, "Expected 1 argument(s). Found: 2 argument(s)", termc.Span{7, 10}},
		{"userarity", "g(x) = one(x)", termc.KindArity, "Expected 0 argument(s). Found: 1 argument(s)", termc.Span{7, 10}},
		{"otherparams", "g(x) = x + a", termc.KindUndefined, "Undefined symbol. Found: a", termc.Span{11, 12}},
		{"constname", "c = y", termc.KindUndefined, "Undefined symbol. Found: y", termc.Span{4, 5}},
		{"constdomain", "c = 1/0", termc.KindDomain, "Expected argument inside the domain of operator /. Found: 0", termc.Span{5, 6}},
		{"constfunc", "c = g(1)", termc.KindUndefined, "Undefined function. Found: g", termc.Span{4, 5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := termc.NewSymbols()
			define(t, s, "one() = 1")
			st, err := termc.Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			err = s.Define(st.Def)
			var d *termc.Diagnostic
			if !errors.As(err, &d) {
				t.Fatalf("wrong error from %q: %#v", c.src, err)
			}
			if d.Kind != c.kind || d.Msg != c.msg || d.Span != c.span {
				t.Errorf("wrong diagnostic for %q:\n\twant %v %q at %v\n\tgot  %v %q at %v", c.src, c.kind, c.msg, c.span, d.Kind, d.Msg, d.Span)
			}
			if got := s.FuncNames(); !reflect.DeepEqual(got, []string{"one"}) {
				t.Errorf("failed definition changed functions: %q", got)
			}
			if got := s.ConstNames(); len(got) != 0 {
				t.Errorf("failed definition changed constants: %q", got)
			}
		})
	}
}
