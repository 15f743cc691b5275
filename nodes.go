package termc

import (
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the identifier of a nodeName or nodeCall, or the literal text
	// of a nodeNum.
	name string
	// val is the value of a nodeNum.
	val complex128

	left  *node
	right *node
	// args are the arguments of a nodeCall, in order.
	args []*node

	// span is the span of the token that produced the node: the literal, the
	// identifier, or the operator.
	span Span
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // val
	nodeName // lookup(name)
	nodeCall // name(args...)

	nodeNeg // -left
	nodeAdd // left + right
	nodeSub // left - right
	nodeMul // left * right
	nodeDiv // left / right
	nodePow // left ^ right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeCall:
		return "Call"
	case nodeNeg:
		return "Neg"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodePow:
		return "Pow"
	default:
		return "None"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node fully parenthesized. The result parses back to an
// equivalent tree.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum:
		if n.name != "" {
			b.WriteString(n.name)
		} else {
			// Imported bodies have no literal text.
			b.WriteString(FormatValue(n.val))
		}
	case nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, arg := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.fmt(b)
		}
		b.WriteByte(')')
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b)
	case nodeAdd:
		n.left.fmt(b)
		b.WriteString(" + ")
		n.right.fmt(b)
	case nodeSub:
		n.left.fmt(b)
		b.WriteString(" - ")
		n.right.fmt(b)
	case nodeMul:
		n.left.fmt(b)
		b.WriteString(" * ")
		n.right.fmt(b)
	case nodeDiv:
		n.left.fmt(b)
		b.WriteString(" / ")
		n.right.fmt(b)
	case nodePow:
		n.left.fmt(b)
		b.WriteString(" ^ ")
		n.right.fmt(b)
	default:
		panic("termc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// walk calls f on n and each of its descendants in pre-order.
func (n *node) walk(f func(*node)) {
	if n == nil {
		return
	}
	f(n)
	n.left.walk(f)
	n.right.walk(f)
	for _, arg := range n.args {
		arg.walk(f)
	}
}
