package calc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	expectTerm       = `integer, "(" or "-"`
	expectOpOrEOF    = "operator or end of input"
	expectOpOrRParen = `operator or ")"`
	expectInt32      = "integer within int32 range"
	foundEOF         = "end of input"
)

type TermKind int

const (
	TermInteger TermKind = iota
	TermGroup
	TermNegate
)

// A Term is one operand of a Group: an integer literal, a parenthesized
// group or a negated term.
type Term struct {
	Kind    TermKind
	Value   int32
	Group   *Group
	Operand *Term
	Offset  int
}

// OpToken is an infix operator as it appeared in the input.
type OpToken struct {
	Op     byte
	Offset int
}

// A Group is the flat sequence "term (op term)*". Ops[i] sits between
// Terms[i] and Terms[i+1].
type Group struct {
	Terms  []*Term
	Ops    []OpToken
	Offset int
}

func (t *Term) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case TermInteger:
		return strconv.FormatInt(int64(t.Value), 10)
	case TermGroup:
		return "(" + t.Group.String() + ")"
	case TermNegate:
		return "-" + t.Operand.String()
	}
	return fmt.Sprintf("<term %d>", int(t.Kind))
}

func (g *Group) String() string {
	if g == nil {
		return "<nil>"
	}
	var buf bytes.Buffer
	for i, t := range g.Terms {
		if i > 0 {
			if i-1 < len(g.Ops) {
				fmt.Fprintf(&buf, " %c ", g.Ops[i-1].Op)
			} else {
				buf.WriteString(" ? ")
			}
		}
		buf.WriteString(t.String())
	}
	return buf.String()
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		buf: bufio.NewReader(r),
	}
}

// Parser recognizes a single equation from a rune stream.
type Parser struct {
	buf  *bufio.Reader
	pos  int
	last int
}

// Recognize parses line into its concrete syntax.
func Recognize(line string) (*Group, error) {
	return NewParser(strings.NewReader(line)).Parse()
}

func (p *Parser) Pos() int {
	return p.pos
}

func (p *Parser) readRune() (rune, error) {
	r, n, err := p.buf.ReadRune()
	p.pos += n
	p.last = n
	return r, err
}

func (p *Parser) unreadRune() {
	if p.last > 0 && p.buf.UnreadRune() == nil {
		p.pos -= p.last
	}
	p.last = 0
}

func (p *Parser) SkipWhite() {
	for {
		r, err := p.readRune()
		if err != nil {
			return
		}
		if r != ' ' && r != '\t' {
			p.unreadRune()
			return
		}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isInfixOp(r rune) bool {
	return strings.ContainsRune("+-*/%", r)
}

func (p *Parser) errorAt(offset int, expected string, found string) error {
	return &SyntaxError{
		Offset:   offset,
		Expected: expected,
		Found:    found,
	}
}

// unexpected builds a syntax error for the rune just read, or for end of
// input when err is io.EOF.
func (p *Parser) unexpected(r rune, err error, expected string) error {
	if err == io.EOF {
		return p.errorAt(p.pos, expected, foundEOF)
	}
	if err != nil {
		return err
	}
	return p.errorAt(p.pos-p.last, expected, strconv.QuoteRune(r))
}

// Parse reads "ws* expr ws* EOF".
func (p *Parser) Parse() (*Group, error) {
	p.SkipWhite()
	g, err := p.ParseGroup()
	if err != nil {
		return nil, err
	}
	p.SkipWhite()
	r, err := p.readRune()
	if err == io.EOF {
		return g, nil
	}
	return nil, p.unexpected(r, err, expectOpOrEOF)
}

// ParseGroup reads "term (ws* infix_op ws* term)*" and stops before the
// first rune that cannot continue the expression.
func (p *Parser) ParseGroup() (*Group, error) {
	g := &Group{
		Offset: p.pos,
	}
	for {
		t, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		g.Terms = append(g.Terms, t)

		p.SkipWhite()
		r, err := p.readRune()
		if err != nil {
			if err == io.EOF {
				return g, nil
			}
			return nil, err
		}
		if !isInfixOp(r) {
			p.unreadRune()
			return g, nil
		}
		g.Ops = append(g.Ops, OpToken{Op: byte(r), Offset: p.pos - p.last})
		p.SkipWhite()
	}
}

func (p *Parser) ParseTerm() (*Term, error) {
	r, err := p.readRune()
	if err != nil {
		return nil, p.unexpected(r, err, expectTerm)
	}
	start := p.pos - p.last

	switch {
	case r == '(':
		p.SkipWhite()
		g, err := p.ParseGroup()
		if err != nil {
			return nil, err
		}
		p.SkipWhite()
		r, err = p.readRune()
		if err != nil || r != ')' {
			return nil, p.unexpected(r, err, expectOpOrRParen)
		}
		return &Term{
			Kind:   TermGroup,
			Group:  g,
			Offset: start,
		}, nil
	case r == '-':
		p.SkipWhite()
		operand, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		return &Term{
			Kind:    TermNegate,
			Operand: operand,
			Offset:  start,
		}, nil
	case isDigit(r):
		p.unreadRune()
		return p.ParseInteger()
	}
	return nil, p.unexpected(r, nil, expectTerm)
}

// ParseInteger reads "digit+". Literals outside the int32 range are
// rejected rather than truncated.
func (p *Parser) ParseInteger() (*Term, error) {
	start := p.pos
	var buf bytes.Buffer
	for {
		r, err := p.readRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if !isDigit(r) {
			p.unreadRune()
			break
		}
		buf.WriteRune(r)
	}

	s := buf.String()
	if s == "" {
		r, err := p.readRune()
		return nil, p.unexpected(r, err, expectTerm)
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil, p.errorAt(start, expectInt32, strconv.Quote(s))
	}
	return &Term{
		Kind:   TermInteger,
		Value:  int32(v),
		Offset: start,
	}, nil
}
