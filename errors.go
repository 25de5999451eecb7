package calc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("integer overflow")
)

// SyntaxError reports input that does not match the grammar. Offset is the
// byte offset of the failing rune in the line.
type SyntaxError struct {
	Offset   int
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: expected %s, found %s", e.Offset, e.Expected, e.Found)
}

type EvalErrorKind int

const (
	DivisionByZero EvalErrorKind = iota
	Overflow
)

func (k EvalErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "division by zero"
	case Overflow:
		return "integer overflow"
	}
	return fmt.Sprintf("EvalErrorKind(%d)", int(k))
}

// EvalError is returned by Eval. Offset points at the operator that failed.
type EvalError struct {
	Kind   EvalErrorKind
	Offset int
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}

func (e *EvalError) Unwrap() error {
	switch e.Kind {
	case DivisionByZero:
		return ErrDivisionByZero
	case Overflow:
		return ErrOverflow
	}
	return nil
}

// InternalError signals a broken invariant between the recognizer and the
// builder. It is never produced for input accepted by Recognize.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Msg
}

func errDivisionByZero() error {
	return &EvalError{Kind: DivisionByZero}
}

func errOverflow() error {
	return &EvalError{Kind: Overflow}
}

// ErrorSnippet renders line with a caret under the offset carried by err.
// It returns an empty string when err has no position.
func ErrorSnippet(line string, err error) string {
	offset := -1
	var se *SyntaxError
	var ee *EvalError
	switch {
	case errors.As(err, &se):
		offset = se.Offset
	case errors.As(err, &ee):
		offset = ee.Offset
	}
	if offset < 0 {
		return ""
	}
	if offset > len(line) {
		offset = len(line)
	}

	var pad strings.Builder
	for i := 0; i < offset; i++ {
		if line[i] == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	return "  " + line + "\n  " + pad.String() + "^"
}
