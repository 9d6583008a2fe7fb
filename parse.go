// Package calculator parses and evaluates a small prefix-notation
// arithmetic language: integer literals, the binary operators add, sub,
// mult and div, and a let form that binds one variable for the remainder
// of the enclosing expression.
//
//	add(sub(213,54),45)
//	let(aVar,sub(134,58),div(aVar,3))
package calculator

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

type opInfo struct {
	t     NodeType
	nargs int
}

var ops map[string]opInfo

func init() {
	ops = make(map[string]opInfo)
	ops["add"] = opInfo{t: NodeAdd, nargs: 2}
	ops["sub"] = opInfo{t: NodeSub, nargs: 2}
	ops["mult"] = opInfo{t: NodeMul, nargs: 2}
	ops["div"] = opInfo{t: NodeDiv, nargs: 2}
	ops["let"] = opInfo{t: NodeLet, nargs: 3}
}

var (
	identPattern = regexp.MustCompile(`^[a-zA-Z]+$`)
	// Greedy: the argument text is everything up to the final close paren.
	opPattern = regexp.MustCompile(`^([a-z]+)\((.+)\)$`)
)

func NewParser() *Parser {
	return &Parser{log: zerolog.Nop()}
}

type Parser struct {
	log zerolog.Logger
}

// SetLogger installs the sink for diagnostic trace messages. The parser
// only writes to it; level filtering is the caller's concern.
func (p *Parser) SetLogger(log zerolog.Logger) {
	p.log = log
}

// Parse builds the expression tree for s. The top-level expression cannot
// sit inside a let form, so it starts with no scope chain; a bare variable
// reference here is out of context.
//
// The returned error is a *SyntaxError for malformed input, or an
// *EvalError when a let binding's value expression fails eager evaluation.
func (p *Parser) Parse(s string) (*Node, error) {
	return p.parse(s, nil)
}

// parse handles one syntactic unit against the chain of visible bindings.
// The three alternatives are mutually exclusive: an integer never matches
// the letters-only identifier pattern, and neither matches a call shape.
func (p *Parser) parse(s string, sc *scope) (*Node, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &Node{t: NodeInt, v: v}, nil
	} else if errors.Is(err, strconv.ErrRange) {
		return nil, syntaxErrf(IntegerOverflowLiteral, "%s does not fit in 64 bits", s)
	}
	p.log.Debug().Msgf("not a value expression: %s", s)

	if identPattern.MatchString(s) {
		if sc == nil {
			return nil, syntaxErrf(VariableOutOfContext,
				"variable %s is not allowed: not within the context of a let expression", s)
		}
		p.log.Debug().Msgf("looking for variable %s", s)
		v, ok := sc.resolve(s)
		if !ok {
			return nil, syntaxErrf(UndefinedVariable, "%s", s)
		}
		return &Node{t: NodeVar, v: v, name: s}, nil
	}
	p.log.Debug().Msgf("not a variable expression: %s", s)

	m := opPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, syntaxErrf(UnparsableExpression, "unable to parse %s as an expression", s)
	}
	name, args := m[1], m[2]
	op, ok := ops[name]
	if !ok {
		return nil, syntaxErrf(UnknownOperator, "%s", name)
	}
	p.log.Debug().Msgf("operator is %s with arguments %s", name, args)

	// A let form carries an extra leading argument, the variable being
	// defined, split off at the first comma.
	inner := sc
	var frame *scope
	if op.nargs == 3 {
		i := strings.IndexByte(args, ',')
		if i < 0 {
			return nil, syntaxErrf(MalformedArguments,
				"unable to parse arguments for let expression: %s", args)
		}
		varName := args[:i]
		args = args[i+1:]
		if !identPattern.MatchString(varName) {
			return nil, syntaxErrf(InvalidVariableName,
				"invalid variable name in let expression: %s", varName)
		}
		p.log.Debug().Msgf("variable name is %s", varName)
		// The frame must exist before either remaining argument is
		// parsed so the body can resolve the name. It stays invisible
		// to resolution until its value is committed.
		frame = newScope(varName, sc)
		inner = frame
	}

	i, err := findComma(args)
	if err != nil {
		return nil, err
	}
	p.log.Debug().Msgf("found comma at position %d", i)
	arg1, arg2 := args[:i], args[i+1:]
	p.log.Info().Msgf("first argument is %s", arg1)
	p.log.Info().Msgf("second argument is %s", arg2)

	// The first argument parses against the enclosing chain: a let-bound
	// value expression may not reference the name it is defining.
	car, err := p.parse(arg1, sc)
	if err != nil {
		return nil, err
	}

	if frame != nil {
		v, err := car.Eval()
		if err != nil {
			return nil, err
		}
		frame.commit(v)
		p.log.Debug().Msgf("bound %s to %d", frame.name, v)
	}

	cdr, err := p.parse(arg2, inner)
	if err != nil {
		return nil, err
	}

	n := &Node{t: op.t, car: car, cdr: cdr}
	if frame != nil {
		n.name = frame.name
		n.v = frame.value
	}
	return n, nil
}

// findComma locates the comma separating two expressions: the first one
// not enclosed in any set of parentheses.
func findComma(s string) (int, error) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ',':
			if depth == 0 {
				return i, nil
			}
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return 0, syntaxErrf(MalformedArguments,
		"unable to find the comma separating the arguments in %s", s)
}
