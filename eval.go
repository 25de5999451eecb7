package calc

import (
	"errors"
	"fmt"
)

// Eval reduces e to a single integer. Operands are evaluated left to right
// and the first failure is returned without evaluating anything further.
func Eval(e Expr) (int32, error) {
	switch e := e.(type) {
	case *IntegerLiteral:
		return e.Value, nil
	case *UnaryNegate:
		v, err := Eval(e.Operand)
		if err != nil {
			return 0, err
		}
		v, err = doNegate(v)
		return v, at(err, e.Offset)
	case *BinaryOp:
		lhs, err := Eval(e.Left)
		if err != nil {
			return 0, err
		}
		rhs, err := Eval(e.Right)
		if err != nil {
			return 0, err
		}
		v, err := e.Op.apply(lhs, rhs)
		return v, at(err, e.Offset)
	case nil:
		return 0, &InternalError{Msg: "nil expression"}
	}
	return 0, &InternalError{Msg: fmt.Sprintf("unknown expression %T", e)}
}

// at stamps the source offset on a fresh EvalError.
func at(err error, offset int) error {
	var ee *EvalError
	if errors.As(err, &ee) {
		ee.Offset = offset
	}
	return err
}
