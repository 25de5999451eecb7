// Package calc parses and evaluates one-line integer arithmetic
// expressions such as "(13 * 25 / 2) - -4 % 3".
//
// Operators are + - * / % with the usual precedence, all
// left-associative, and prefix minus binding tighter than any of them.
// Values are int32; overflow and division by zero are reported as
// errors, never wrapped around.
package calc

// Parse recognizes line and builds its expression tree.
func Parse(line string) (Expr, error) {
	return parseWith(NewBuilder(DefaultOpTable()), line)
}

// ParseAndEvaluate returns the value of line. The error is a
// *SyntaxError or an *EvalError.
func ParseAndEvaluate(line string) (int32, error) {
	e, err := Parse(line)
	if err != nil {
		return 0, err
	}
	return Eval(e)
}

func parseWith(b *Builder, line string) (Expr, error) {
	g, err := Recognize(line)
	if err != nil {
		return nil, err
	}
	return b.Build(g)
}
