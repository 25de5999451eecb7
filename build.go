package calc

import (
	"fmt"
)

// Builder turns the concrete syntax produced by Recognize into an Expr
// tree using precedence climbing over its operator table.
type Builder struct {
	ops OpTable
}

func NewBuilder(tbl OpTable) *Builder {
	return &Builder{ops: tbl}
}

// Build returns the expression tree for g. Any well-formed Group builds
// successfully; an error is always an *InternalError.
func (b *Builder) Build(g *Group) (Expr, error) {
	if g == nil || len(g.Terms) == 0 {
		return nil, &InternalError{Msg: "empty group"}
	}
	if len(g.Ops) != len(g.Terms)-1 {
		return nil, &InternalError{
			Msg: fmt.Sprintf("group at offset %d has %d terms and %d operators", g.Offset, len(g.Terms), len(g.Ops)),
		}
	}

	c := &climber{b: b, g: g}
	e, err := c.climb(AddPrecedence)
	if err != nil {
		return nil, err
	}
	if c.next != len(g.Terms) {
		return nil, &InternalError{
			Msg: fmt.Sprintf("group at offset %d: %d of %d terms consumed", g.Offset, c.next, len(g.Terms)),
		}
	}
	return e, nil
}

// climber walks one Group. next is the index of the next unconsumed term;
// the operator in front of it is g.Ops[next-1].
type climber struct {
	b    *Builder
	g    *Group
	next int
}

func (c *climber) climb(minPrec Precedence) (Expr, error) {
	lhs, err := c.primary()
	if err != nil {
		return nil, err
	}
	for c.next < len(c.g.Terms) {
		tok := c.g.Ops[c.next-1]
		info, ok := c.b.ops.Lookup(tok.Op)
		if !ok {
			return nil, &InternalError{Msg: fmt.Sprintf("operator %q at offset %d is not in the table", tok.Op, tok.Offset)}
		}
		if info.Precedence < minPrec {
			break
		}
		next := info.Precedence
		if info.Assoc == AssocLeft {
			next++
		}
		rhs, err := c.climb(next)
		if err != nil {
			return nil, err
		}
		lhs = &BinaryOp{
			Left:   lhs,
			Op:     info.Kind,
			Right:  rhs,
			Offset: tok.Offset,
		}
	}
	return lhs, nil
}

func (c *climber) primary() (Expr, error) {
	if c.next >= len(c.g.Terms) {
		return nil, &InternalError{Msg: "operator without right operand"}
	}
	t := c.g.Terms[c.next]
	c.next++
	return c.b.term(t)
}

// term builds a single operand. Negation wraps its operand before any
// infix operator sees it, so it binds tighter than all of them.
func (b *Builder) term(t *Term) (Expr, error) {
	if t == nil {
		return nil, &InternalError{Msg: "nil term"}
	}
	switch t.Kind {
	case TermInteger:
		return &IntegerLiteral{Value: t.Value, Offset: t.Offset}, nil
	case TermGroup:
		return b.Build(t.Group)
	case TermNegate:
		operand, err := b.term(t.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryNegate{Operand: operand, Offset: t.Offset}, nil
	}
	return nil, &InternalError{Msg: fmt.Sprintf("unknown term kind %d at offset %d", int(t.Kind), t.Offset)}
}
