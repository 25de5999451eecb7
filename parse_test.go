package calc

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			input: "1",
			want:  "1",
		},
		{
			input: "  5+5\t",
			want:  "5 + 5",
		},
		{
			input: "5 * 6 * 7 + 24 - 16",
			want:  "5 * 6 * 7 + 24 - 16",
		},
		{
			input: "(13 * 25 / 2) - ((25 - 4) + (16 / 3) * 2)",
			want:  "(13 * 25 / 2) - ((25 - 4) + (16 / 3) * 2)",
		},
		{
			input: "( 1 )",
			want:  "(1)",
		},
		{
			input: "- - 5",
			want:  "--5",
		},
		{
			input: "5--3",
			want:  "5 - -3",
		},
		{
			input: "-(2 % 3)",
			want:  "-(2 % 3)",
		},
		{
			input: "2147483647",
			want:  "2147483647",
		},
		{
			input: "007",
			want:  "7",
		},
	}
	for _, test := range tests {
		t.Logf("%q", test.input)
		parser := NewParser(strings.NewReader(test.input))
		g, err := parser.Parse()
		if err != nil {
			t.Error(err)
			continue
		}
		got := g.String()

		if got != test.want {
			t.Errorf("want %q for %q but got %q", test.want, test.input, got)
		}
	}
}

func TestParseOffsets(t *testing.T) {
	g, err := Recognize(" 12 *(3 - -4)")
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Terms) != 2 || len(g.Ops) != 1 {
		t.Fatalf("want 2 terms and 1 op, got %d and %d", len(g.Terms), len(g.Ops))
	}
	if g.Terms[0].Offset != 1 {
		t.Errorf("want literal at 1, got %d", g.Terms[0].Offset)
	}
	if g.Ops[0].Op != '*' || g.Ops[0].Offset != 4 {
		t.Errorf("want '*' at 4, got %q at %d", g.Ops[0].Op, g.Ops[0].Offset)
	}
	inner := g.Terms[1]
	if inner.Kind != TermGroup || inner.Offset != 5 {
		t.Fatalf("want group at 5, got kind %d at %d", inner.Kind, inner.Offset)
	}
	neg := inner.Group.Terms[1]
	if neg.Kind != TermNegate || neg.Offset != 10 || neg.Operand.Offset != 11 {
		t.Errorf("want negation at 10 of literal at 11, got %d and %d", neg.Offset, neg.Operand.Offset)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		offset   int
		expected string
		found    string
	}{
		{"", 0, expectTerm, foundEOF},
		{"   ", 3, expectTerm, foundEOF},
		{"5 + ", 4, expectTerm, foundEOF},
		{"(5 + 3", 6, expectOpOrRParen, foundEOF},
		{"(5 + 3 $", 7, expectOpOrRParen, `'$'`},
		{"5 $ 3", 2, expectOpOrEOF, `'$'`},
		{"5 3", 2, expectOpOrEOF, `'3'`},
		{"5 + 3)", 5, expectOpOrEOF, `')'`},
		{"()", 1, expectTerm, `')'`},
		{"* 5", 0, expectTerm, `'*'`},
		{"5 * -", 5, expectTerm, foundEOF},
		{"1.5", 1, expectOpOrEOF, `'.'`},
		{"x", 0, expectTerm, `'x'`},
		{"5 + é", 4, expectTerm, `'é'`},
		{"2147483648", 0, expectInt32, `"2147483648"`},
		{"1 + 99999999999999999999", 4, expectInt32, `"99999999999999999999"`},
		{"-2147483648", 1, expectInt32, `"2147483648"`},
		{"5\n", 1, expectOpOrEOF, `'\n'`},
	}
	for _, test := range tests {
		g, err := Recognize(test.input)
		if err == nil {
			t.Errorf("%q: want error, got %v", test.input, g)
			continue
		}
		if g != nil {
			t.Errorf("%q: want no partial result, got %v", test.input, g)
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%q: want *SyntaxError, got %T", test.input, err)
			continue
		}
		if se.Offset != test.offset || se.Expected != test.expected || se.Found != test.found {
			t.Errorf("%q: want offset %d expected %s found %s, got %v",
				test.input, test.offset, test.expected, test.found, se)
		}
	}
}

func TestParsePos(t *testing.T) {
	p := NewParser(strings.NewReader("12 + 3"))
	if _, err := p.ParseTerm(); err != nil {
		t.Fatal(err)
	}
	if p.Pos() != 2 {
		t.Errorf("want 2, got %d", p.Pos())
	}
	p.SkipWhite()
	if p.Pos() != 3 {
		t.Errorf("want 3, got %d", p.Pos())
	}
}
