package calculator

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			input: "42",
			want:  "42",
		},
		{
			input: "-7",
			want:  "-7",
		},
		{
			input: "add(1,2)",
			want:  "add(1,2)",
		},
		{
			input: "add(sub(213,54),45)",
			want:  "add(sub(213,54),45)",
		},
		{
			input: "let(aVar,sub(134,58),div(aVar,3))",
			want:  "let(aVar,sub(134,58),div(aVar,3))",
		},
		{
			input: "let(x,1,let(y,2,add(x,y)))",
			want:  "let(x,1,let(y,2,add(x,y)))",
		},
	}
	for _, test := range tests {
		t.Logf("%q", test.input)
		node, err := NewParser().Parse(test.input)
		if err != nil {
			t.Error(err)
			continue
		}
		got := node.String()

		if got != test.want {
			t.Errorf("want %q for %q but got %q", test.want, test.input, got)
		}
	}
}

func TestParseTree(t *testing.T) {
	node, err := NewParser().Parse("let(x,2,add(x,3))")
	require.NoError(t, err)

	want := &Node{
		t:    NodeLet,
		name: "x",
		v:    2,
		car:  &Node{t: NodeInt, v: 2},
		cdr: &Node{
			t:   NodeAdd,
			car: &Node{t: NodeVar, name: "x", v: 2},
			cdr: &Node{t: NodeInt, v: 3},
		},
	}
	if diff := cmp.Diff(want, node, cmp.AllowUnexported(Node{})); diff != "" {
		t.Errorf(diff)
	}
}

func TestParseResolvesInnermostFirst(t *testing.T) {
	// The inner frame for b shadows the outer one while its let form is
	// being parsed, and only there.
	node, err := NewParser().Parse("let(b,1,add(let(b,2,b),b))")
	require.NoError(t, err)

	inner := node.cdr.car
	require.Equal(t, NodeLet, inner.t)
	require.Equal(t, int64(2), inner.cdr.v)
	require.Equal(t, int64(1), node.cdr.cdr.v)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  SyntaxErrorKind
	}{
		{input: "x", kind: VariableOutOfContext},
		{input: "1+2", kind: UnparsableExpression},
		{input: "", kind: UnparsableExpression},
		{input: "add(1)", kind: MalformedArguments},
		{input: "add((1,2)", kind: MalformedArguments},
		{input: "let(x)", kind: MalformedArguments},
		{input: "foo(1,2)", kind: UnknownOperator},
		{input: "let(1,2,3)", kind: InvalidVariableName},
		{input: "let(x,1,add(x,y))", kind: UndefinedVariable},
		{input: "let(x,x,1)", kind: VariableOutOfContext},
		{input: "let(x,let(y,x,y),x)", kind: VariableOutOfContext},
		{input: "9223372036854775808", kind: IntegerOverflowLiteral},
		{input: "-9223372036854775809", kind: IntegerOverflowLiteral},
	}
	for _, test := range tests {
		_, err := NewParser().Parse(test.input)
		var serr *SyntaxError
		require.ErrorAs(t, err, &serr, "input %q", test.input)
		require.Equal(t, test.kind, serr.Kind, "input %q got %v", test.input, err)
	}
}

func TestParseEagerBindingFailure(t *testing.T) {
	// The bound value is evaluated while the tree is still being built,
	// so an arithmetic failure there surfaces from Parse.
	_, err := NewParser().Parse("let(x,div(1,0),x)")
	var eerr *EvalError
	require.ErrorAs(t, err, &eerr)
	require.Equal(t, DivisionByZero, eerr.Kind)
}

func TestParserLogging(t *testing.T) {
	var buf strings.Builder
	p := NewParser()
	p.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	_, err := p.Parse("let(aVar,sub(134,58),div(aVar,3))")
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "operator is let")
	require.Contains(t, out, "bound aVar to 76")
}

func TestFindComma(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "1,2", want: 1},
		{input: "sub(213,54),45", want: 11},
		{input: "1,add(2,3)", want: 1},
	}
	for _, test := range tests {
		got, err := findComma(test.input)
		if err != nil {
			t.Error(err)
			continue
		}
		if got != test.want {
			t.Errorf("want %d for %q but got %d", test.want, test.input, got)
		}
	}

	if _, err := findComma("add(1,2)"); err == nil {
		t.Error("expected error for argument text without a top-level comma")
	}
}
