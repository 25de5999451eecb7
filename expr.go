package calc

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

type Precedence int

const (
	LowestPrecedence Precedence = iota
	AddPrecedence
	MultPrecedence
	NegPrecedence
	AtomicPrecedence
)

// An Expr is a node of the expression tree. Trees are built once by a
// Builder and never mutated afterwards.
type Expr interface {
	// Precedence describes how tightly the node binds its operands.
	Precedence() Precedence

	// String renders the expression as infix text with every binary
	// node parenthesized. Parsing the result yields an equivalent tree.
	String() string

	// Children returns a copy of the node's operands.
	Children() []Expr
}

type IntegerLiteral struct {
	Value  int32
	Offset int
}

func (n *IntegerLiteral) Precedence() Precedence {
	return AtomicPrecedence
}

func (n *IntegerLiteral) String() string {
	return strconv.FormatInt(int64(n.Value), 10)
}

func (n *IntegerLiteral) Children() []Expr {
	return nil
}

type UnaryNegate struct {
	Operand Expr
	Offset  int
}

func (n *UnaryNegate) Precedence() Precedence {
	return NegPrecedence
}

func (n *UnaryNegate) String() string {
	return "-" + n.Operand.String()
}

func (n *UnaryNegate) Children() []Expr {
	return []Expr{n.Operand}
}

// BinaryOp applies Op to Left and Right. Offset is the position of the
// operator in the source line.
type BinaryOp struct {
	Left   Expr
	Op     OpKind
	Right  Expr
	Offset int
}

func (b *BinaryOp) Precedence() Precedence {
	return b.Op.Precedence()
}

func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

func (b *BinaryOp) Children() []Expr {
	return []Expr{b.Left, b.Right}
}

// Format returns an indented dump of the tree, one node per line.
func Format(e Expr) string {
	var buf bytes.Buffer
	format(&buf, e, 0)
	return strings.TrimSuffix(buf.String(), "\n")
}

func format(buf *bytes.Buffer, e Expr, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
	if e == nil {
		buf.WriteString("<nil>\n")
		return
	}
	switch e := e.(type) {
	case *IntegerLiteral:
		fmt.Fprintf(buf, "IntegerLiteral(%d)\n", e.Value)
	case *UnaryNegate:
		buf.WriteString("UnaryNegate\n")
	case *BinaryOp:
		fmt.Fprintf(buf, "BinaryOp(%s)\n", e.Op)
	default:
		fmt.Fprintf(buf, "%T\n", e)
	}
	for _, c := range e.Children() {
		format(buf, c, depth+1)
	}
}
