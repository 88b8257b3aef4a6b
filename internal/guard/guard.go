// Package guard evaluates transition guard expressions against a machine's
// extended-state variables.
//
// Expressions use the expr language. An empty expression is an "always"
// guard and evaluates to true.
package guard

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Eval evaluates a guard expression against the given variables.
// The expression must yield a boolean.
func Eval(cond string, vars map[string]any) (bool, error) {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return true, nil
	}

	out, err := expr.Eval(cond, vars)
	if err != nil {
		return false, fmt.Errorf("guard eval: %w", err)
	}

	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("guard must evaluate to bool (got %T)", out)
	}
	return b, nil
}

// Compile pre-compiles a guard expression for repeated evaluation.
// Empty expressions compile to nil, which EvalCompiled treats as true.
func Compile(cond string) (*vm.Program, error) {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return nil, nil
	}
	prog, err := expr.Compile(cond, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("guard compile: %w", err)
	}
	return prog, nil
}

// EvalCompiled runs a pre-compiled guard program.
func EvalCompiled(prog *vm.Program, vars map[string]any) (bool, error) {
	if prog == nil {
		return true, nil
	}
	out, err := expr.Run(prog, vars)
	if err != nil {
		return false, fmt.Errorf("guard eval: %w", err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("guard must evaluate to bool (got %T)", out)
	}
	return b, nil
}
