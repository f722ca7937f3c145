package metadata

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Invariant is a whole-document check that cannot be expressed as a rule
// on a single field.
type Invariant interface {
	Check(doc Document) []Failure
}

// ExprInvariant evaluates a boolean CEL expression over the document, which
// is bound to the variable "doc". When the expression is false (or cannot be
// evaluated) the invariant reports its failures.
type ExprInvariant struct {
	program  cel.Program
	failures []Failure
}

var docEnv = mustDocEnv()

func mustDocEnv() *cel.Env {
	env, err := cel.NewEnv(
		cel.Variable("doc", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL environment: %v", err))
	}
	return env
}

// NewExprInvariant compiles expr. The expression must evaluate to a boolean.
func NewExprInvariant(name, expr string, failures ...Failure) (*ExprInvariant, error) {
	ast, issues := docEnv.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invariant %s: compile error: %w", name, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("invariant %s: expression must be boolean, got %s", name, ast.OutputType())
	}

	prog, err := docEnv.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("invariant %s: program creation error: %w", name, err)
	}

	return &ExprInvariant{
		program:  prog,
		failures: failures,
	}, nil
}

// MustExprInvariant is like NewExprInvariant but panics on error.
// It is meant for the package-level specification tables.
func MustExprInvariant(name, expr string, failures ...Failure) *ExprInvariant {
	inv, err := NewExprInvariant(name, expr, failures...)
	if err != nil {
		panic(err)
	}
	return inv
}

// Check implements Invariant.
func (i *ExprInvariant) Check(doc Document) []Failure {
	out, _, err := i.program.Eval(map[string]any{"doc": map[string]any(doc)})
	if err == nil {
		if ok, isBool := out.Value().(bool); isBool && ok {
			return nil
		}
	}
	failures := make([]Failure, len(i.failures))
	copy(failures, i.failures)
	return failures
}

// matchingFields requires two fields to hold the same value whenever both
// are present. A document with only one of them set passes.
func matchingFields(a, b string) *ExprInvariant {
	expr := fmt.Sprintf("!has(doc.%[1]s) || !has(doc.%[2]s) || doc.%[1]s == doc.%[2]s", a, b)
	return MustExprInvariant(a+"-matches-"+b, expr,
		Failure{Field: a, Reason: ReasonMustMatch, Message: "must match " + b},
		Failure{Field: b, Reason: ReasonMustMatch, Message: "must match " + a},
	)
}
