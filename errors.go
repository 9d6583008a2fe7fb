package calculator

import "fmt"

type SyntaxErrorKind int

const (
	UnparsableExpression SyntaxErrorKind = iota
	MalformedArguments
	InvalidVariableName
	UnknownOperator
	UndefinedVariable
	VariableOutOfContext
	IntegerOverflowLiteral
)

var syntaxKindNames = map[SyntaxErrorKind]string{
	UnparsableExpression:   "unparsable expression",
	MalformedArguments:     "malformed arguments",
	InvalidVariableName:    "invalid variable name",
	UnknownOperator:        "unknown operator",
	UndefinedVariable:      "undefined variable",
	VariableOutOfContext:   "variable out of context",
	IntegerOverflowLiteral: "integer literal overflow",
}

func (k SyntaxErrorKind) String() string {
	if s, ok := syntaxKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("syntax error %d", int(k))
}

// SyntaxError is any failure to turn input text into an expression tree,
// including unresolved variable references.
type SyntaxError struct {
	Kind SyntaxErrorKind
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func syntaxErrf(k SyntaxErrorKind, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

type EvalErrorKind int

const (
	DivisionByZero EvalErrorKind = iota
	ArithmeticOverflow
)

func (k EvalErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "division by zero"
	case ArithmeticOverflow:
		return "arithmetic overflow"
	}
	return fmt.Sprintf("evaluation error %d", int(k))
}

// EvalError is a runtime arithmetic failure. Because a let binding's value
// expression is evaluated while the tree is still being built, Parse can
// return one too.
type EvalError struct {
	Kind EvalErrorKind
	Msg  string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func evalErrf(k EvalErrorKind, format string, args ...interface{}) *EvalError {
	return &EvalError{Kind: k, Msg: fmt.Sprintf(format, args...)}
}
