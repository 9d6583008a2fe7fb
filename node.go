package calculator

import (
	"fmt"
	"math"
	"strconv"
)

type NodeType int

const (
	NodeInt NodeType = iota
	NodeVar
	NodeAdd
	NodeSub
	NodeMul
	NodeDiv
	NodeLet
)

var nodeTypeNames = map[NodeType]string{
	NodeInt: "int",
	NodeVar: "var",
	NodeAdd: "add",
	NodeSub: "sub",
	NodeMul: "mult",
	NodeDiv: "div",
	NodeLet: "let",
}

func (t NodeType) String() string {
	if s, ok := nodeTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("node %d", int(t))
}

// Node is one expression tree node, tagged by t. Which fields are
// meaningful depends on the tag:
//
//	NodeInt   v is the literal value
//	NodeVar   name is the reference, v the value resolved at parse time
//	NodeAdd.. car and cdr are the operands
//	NodeLet   name/v are the binding, car the bound expression, cdr the body
//
// Nodes are immutable once Parse returns them.
type Node struct {
	t    NodeType
	v    int64
	name string
	car  *Node
	cdr  *Node
}

// Eval computes the value of the expression. It is a pure fold over the
// tree: variables were already resolved during parsing, so no environment
// is consulted and repeated calls return the same result. The only
// failures are arithmetic ones.
func (n *Node) Eval() (int64, error) {
	switch n.t {
	case NodeInt, NodeVar:
		return n.v, nil
	case NodeLet:
		// The bound expression was folded into its references at parse
		// time; only the body counts here.
		return n.cdr.Eval()
	}

	l, err := n.car.Eval()
	if err != nil {
		return 0, err
	}
	r, err := n.cdr.Eval()
	if err != nil {
		return 0, err
	}

	switch n.t {
	case NodeAdd:
		if (r > 0 && l > math.MaxInt64-r) || (r < 0 && l < math.MinInt64-r) {
			return 0, evalErrf(ArithmeticOverflow, "add(%d,%d) does not fit in 64 bits", l, r)
		}
		return l + r, nil
	case NodeSub:
		if (r < 0 && l > math.MaxInt64+r) || (r > 0 && l < math.MinInt64+r) {
			return 0, evalErrf(ArithmeticOverflow, "sub(%d,%d) does not fit in 64 bits", l, r)
		}
		return l - r, nil
	case NodeMul:
		if l != 0 && r != 0 {
			// The quotient test misses MinInt64*-1, which wraps to itself.
			if p := l * r; p/r != l || (l == math.MinInt64 && r == -1) || (l == -1 && r == math.MinInt64) {
				return 0, evalErrf(ArithmeticOverflow, "mult(%d,%d) does not fit in 64 bits", l, r)
			}
		}
		return l * r, nil
	case NodeDiv:
		if r == 0 {
			return 0, evalErrf(DivisionByZero, "div(%d,0)", l)
		}
		if l == math.MinInt64 && r == -1 {
			return 0, evalErrf(ArithmeticOverflow, "div(%d,%d) does not fit in 64 bits", l, r)
		}
		// Go integer division truncates toward zero.
		return l / r, nil
	}
	panic(fmt.Sprintf("unknown node type %d", int(n.t)))
}

// String renders the node back in source form.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	switch n.t {
	case NodeInt:
		return strconv.FormatInt(n.v, 10)
	case NodeVar:
		return n.name
	case NodeLet:
		return fmt.Sprintf("let(%s,%v,%v)", n.name, n.car, n.cdr)
	}
	return fmt.Sprintf("%v(%v,%v)", n.t, n.car, n.cdr)
}
