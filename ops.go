package calc

import (
	"fmt"
	"math"
)

type OpKind int

const (
	Add OpKind = iota
	Subtract
	Multiply
	Divide
	Modulo
)

func (k OpKind) String() string {
	switch k {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

func (k OpKind) Precedence() Precedence {
	switch k {
	case Add, Subtract:
		return AddPrecedence
	case Multiply, Divide, Modulo:
		return MultPrecedence
	}
	return LowestPrecedence
}

func (k OpKind) apply(lhs, rhs int32) (int32, error) {
	switch k {
	case Add:
		return doAdd(lhs, rhs)
	case Subtract:
		return doSubtract(lhs, rhs)
	case Multiply:
		return doMultiply(lhs, rhs)
	case Divide:
		return doDivide(lhs, rhs)
	case Modulo:
		return doModulo(lhs, rhs)
	}
	return 0, &InternalError{Msg: fmt.Sprintf("unknown operator %v", k)}
}

type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
)

type OpInfo struct {
	Kind       OpKind
	Precedence Precedence
	Assoc      Assoc
}

// OpTable maps an infix operator byte to how it is built into the tree.
// The zero value has no operators; use DefaultOpTable.
type OpTable struct {
	ops map[byte]OpInfo
}

func makeOp(kind OpKind, assoc Assoc) OpInfo {
	return OpInfo{Kind: kind, Precedence: kind.Precedence(), Assoc: assoc}
}

// DefaultOpTable returns the table for "+ - * / %", all left-associative.
func DefaultOpTable() OpTable {
	return OpTable{
		ops: map[byte]OpInfo{
			'+': makeOp(Add, AssocLeft),
			'-': makeOp(Subtract, AssocLeft),
			'*': makeOp(Multiply, AssocLeft),
			'/': makeOp(Divide, AssocLeft),
			'%': makeOp(Modulo, AssocLeft),
		},
	}
}

func (t OpTable) Lookup(op byte) (OpInfo, bool) {
	info, ok := t.ops[op]
	return info, ok
}

// narrow converts an exact int64 result back to int32.
func narrow(v int64) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, errOverflow()
	}
	return int32(v), nil
}

func doAdd(lhs, rhs int32) (int32, error) {
	return narrow(int64(lhs) + int64(rhs))
}

func doSubtract(lhs, rhs int32) (int32, error) {
	return narrow(int64(lhs) - int64(rhs))
}

func doMultiply(lhs, rhs int32) (int32, error) {
	return narrow(int64(lhs) * int64(rhs))
}

// doDivide truncates toward zero. MinInt32 / -1 overflows.
func doDivide(lhs, rhs int32) (int32, error) {
	if rhs == 0 {
		return 0, errDivisionByZero()
	}
	return narrow(int64(lhs) / int64(rhs))
}

// doModulo returns the remainder of truncating division, so the result
// takes the sign of lhs: -7 % 3 == -1 and 7 % -3 == 1.
func doModulo(lhs, rhs int32) (int32, error) {
	if rhs == 0 {
		return 0, errDivisionByZero()
	}
	return narrow(int64(lhs) % int64(rhs))
}

func doNegate(v int32) (int32, error) {
	return narrow(-int64(v))
}
