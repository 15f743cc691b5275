package termc

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// Document is the persisted form of the user definitions in a symbol table.
type Document struct {
	Constants []ConstantRecord `json:"constants" yaml:"constants"`
	Functions []FunctionRecord `json:"functions" yaml:"functions"`
}

// ConstantRecord is a persisted user constant. Both parts are required.
type ConstantRecord struct {
	Name string   `json:"name" yaml:"name"`
	Real *Float `json:"real" yaml:"real"`
	Imag *Float `json:"imag" yaml:"imag"`
}

// FunctionRecord is a persisted user function.
type FunctionRecord struct {
	Name   string    `json:"name" yaml:"name"`
	Params []string  `json:"params" yaml:"params"`
	Body   *BodyNode `json:"body" yaml:"body"`
}

// BodyNode is a persisted expression node. Op determines which other fields
// are used:
//
//	num                      Real, and optionally Imag
//	name                     Name
//	neg                      Args with one element
//	add, sub, mul, div, pow  Args with two elements
//	call                     Name and Args with any number of elements
//
// All other fields must be empty.
type BodyNode struct {
	Op   string      `json:"op" yaml:"op"`
	Name string      `json:"name,omitempty" yaml:"name,omitempty"`
	Real *Float      `json:"real,omitempty" yaml:"real,omitempty"`
	Imag *Float      `json:"imag,omitempty" yaml:"imag,omitempty"`
	Args []*BodyNode `json:"args,omitempty" yaml:"args,omitempty"`
}

// Float is a persisted part of a complex number. JSON has no infinities or
// NaN, so in JSON those are the strings "Inf", "-Inf", and "NaN". YAML
// uses its own .inf and .nan.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return []byte(`"NaN"`), nil
	case math.IsInf(x, 1):
		return []byte(`"Inf"`), nil
	case math.IsInf(x, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, x, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = Float(math.NaN())
		case "Inf":
			*f = Float(math.Inf(1))
		case "-Inf":
			*f = Float(math.Inf(-1))
		default:
			return errors.New("termc: invalid number " + strconv.Quote(s))
		}
		return nil
	}
	var x float64
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	*f = Float(x)
	return nil
}

// CodecError is an error for a malformed record in a Document.
type CodecError struct {
	// Record identifies the offending record, e.g. `function "f"`.
	Record string
	// Msg describes the problem.
	Msg string
}

func (err *CodecError) Error() string {
	return err.Record + ": " + err.Msg
}

// Patch is a validated set of definitions from a Document, ready to apply.
type Patch struct {
	consts []patchConst
	funcs  []patchFunc
}

type patchConst struct {
	name string
	v    complex128
}

type patchFunc struct {
	name string
	f    *UserFunc
}

// Len returns the number of definitions in the patch.
func (p *Patch) Len() int {
	return len(p.consts) + len(p.funcs)
}

var opnames = map[nodeKind]string{
	nodeNum:  "num",
	nodeName: "name",
	nodeCall: "call",
	nodeNeg:  "neg",
	nodeAdd:  "add",
	nodeSub:  "sub",
	nodeMul:  "mul",
	nodeDiv:  "div",
	nodePow:  "pow",
}

var opkinds = map[string]nodeKind{
	"num":  nodeNum,
	"name": nodeName,
	"call": nodeCall,
	"neg":  nodeNeg,
	"add":  nodeAdd,
	"sub":  nodeSub,
	"mul":  nodeMul,
	"div":  nodeDiv,
	"pow":  nodePow,
}

// Export creates a Document of the user definitions in s. Records are
// sorted by name.
func Export(s *Symbols) *Document {
	doc := Document{
		Constants: []ConstantRecord{},
		Functions: []FunctionRecord{},
	}
	for _, name := range s.ConstNames() {
		v := s.consts[name]
		re, im := Float(real(v)), Float(imag(v))
		doc.Constants = append(doc.Constants, ConstantRecord{Name: name, Real: &re, Imag: &im})
	}
	for _, name := range s.FuncNames() {
		f := s.funcs[name]
		doc.Functions = append(doc.Functions, FunctionRecord{
			Name:   name,
			Params: append([]string{}, f.Params...),
			Body:   exportNode(f.Body.n),
		})
	}
	return &doc
}

func exportNode(n *node) *BodyNode {
	b := BodyNode{Op: opnames[n.kind]}
	switch n.kind {
	case nodeNum:
		re := Float(real(n.val))
		b.Real = &re
		if im := Float(imag(n.val)); im != 0 {
			b.Imag = &im
		}
	case nodeName:
		b.Name = n.name
	case nodeCall:
		b.Name = n.name
		b.Args = make([]*BodyNode, 0, len(n.args))
		for _, arg := range n.args {
			b.Args = append(b.Args, exportNode(arg))
		}
	case nodeNeg:
		b.Args = []*BodyNode{exportNode(n.left)}
	default:
		b.Args = []*BodyNode{exportNode(n.left), exportNode(n.right)}
	}
	return &b
}

// Import validates every record of a Document. The error, if any, is a
// *CodecError naming the first malformed record. Names in function bodies
// are not resolved until the functions are called, so definitions may refer
// to each other in any order.
func Import(doc *Document) (*Patch, error) {
	var p Patch
	seen := make(map[string]bool, len(doc.Constants)+len(doc.Functions))
	for i, c := range doc.Constants {
		rec := record("constant", c.Name, i)
		if err := checkName(rec, c.Name, seen); err != nil {
			return nil, err
		}
		if c.Real == nil {
			return nil, &CodecError{Record: rec, Msg: "missing real part"}
		}
		if c.Imag == nil {
			return nil, &CodecError{Record: rec, Msg: "missing imaginary part"}
		}
		p.consts = append(p.consts, patchConst{name: c.Name, v: complex(float64(*c.Real), float64(*c.Imag))})
	}
	for i, f := range doc.Functions {
		rec := record("function", f.Name, i)
		if err := checkName(rec, f.Name, seen); err != nil {
			return nil, err
		}
		params := make([]string, 0, len(f.Params))
		for _, name := range f.Params {
			if !IsIdent(name) {
				return nil, &CodecError{Record: rec, Msg: "invalid parameter name " + strconv.Quote(name)}
			}
			for _, q := range params {
				if q == name {
					return nil, &CodecError{Record: rec, Msg: "duplicate parameter " + strconv.Quote(name)}
				}
			}
			params = append(params, name)
		}
		n, err := importNode(f.Body, "body")
		if err != nil {
			return nil, &CodecError{Record: rec, Msg: err.Error()}
		}
		p.funcs = append(p.funcs, patchFunc{name: f.Name, f: &UserFunc{Params: params, Body: &Expr{n: n}}})
	}
	return &p, nil
}

// Apply defines everything in a patch, in document order.
func (s *Symbols) Apply(p *Patch) {
	for _, c := range p.consts {
		s.SetConst(c.name, c.v)
	}
	for _, f := range p.funcs {
		s.SetFunc(f.name, f.f)
	}
}

func record(kind, name string, i int) string {
	if name == "" {
		return kind + " " + strconv.Itoa(i)
	}
	return kind + " " + strconv.Quote(name)
}

func checkName(rec, name string, seen map[string]bool) error {
	if !IsIdent(name) {
		return &CodecError{Record: rec, Msg: "invalid name"}
	}
	if seen[name] {
		return &CodecError{Record: rec, Msg: "duplicate name"}
	}
	seen[name] = true
	return nil
}

// IsIdent returns whether s is a single identifier.
func IsIdent(s string) bool {
	toks := Tokenize(s)
	return len(toks) == 2 && toks[0].Kind == TokenIdent && toks[0].Text == s
}

type shapeError struct {
	path string
	msg  string
}

func (err *shapeError) Error() string {
	return err.path + ": " + err.msg
}

func importNode(b *BodyNode, path string) (*node, error) {
	if b == nil {
		return nil, &shapeError{path, "missing node"}
	}
	kind, ok := opkinds[b.Op]
	if !ok {
		return nil, &shapeError{path, "unknown op " + strconv.Quote(b.Op)}
	}
	n := &node{kind: kind}
	switch kind {
	case nodeNum:
		if b.Real == nil {
			return nil, &shapeError{path, "num without real part"}
		}
		if b.Name != "" || b.Args != nil {
			return nil, &shapeError{path, "num with name or args"}
		}
		n.val = complex(float64(*b.Real), 0)
		if b.Imag != nil {
			n.val = complex(float64(*b.Real), float64(*b.Imag))
		}
		return n, nil
	case nodeName, nodeCall:
		if !IsIdent(b.Name) {
			return nil, &shapeError{path, b.Op + " with invalid name " + strconv.Quote(b.Name)}
		}
		if b.Real != nil || b.Imag != nil {
			return nil, &shapeError{path, b.Op + " with value"}
		}
		n.name = b.Name
		if kind == nodeName {
			if b.Args != nil {
				return nil, &shapeError{path, "name with args"}
			}
			return n, nil
		}
		n.args = make([]*node, 0, len(b.Args))
		for i, arg := range b.Args {
			a, err := importNode(arg, path+".args["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			n.args = append(n.args, a)
		}
		return n, nil
	}
	if b.Name != "" || b.Real != nil || b.Imag != nil {
		return nil, &shapeError{path, b.Op + " with name or value"}
	}
	want := 2
	if kind == nodeNeg {
		want = 1
	}
	if len(b.Args) != want {
		return nil, &shapeError{path, b.Op + " needs " + strconv.Itoa(want) + " args, has " + strconv.Itoa(len(b.Args))}
	}
	l, err := importNode(b.Args[0], path+".args[0]")
	if err != nil {
		return nil, err
	}
	n.left = l
	if want == 2 {
		r, err := importNode(b.Args[1], path+".args[1]")
		if err != nil {
			return nil, err
		}
		n.right = r
	}
	return n, nil
}
