package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// BlockEnv defines the variables available during filter expression evaluation.
type BlockEnv struct {
	Config        map[string]any `expr:"config"`
	Slug          string         `expr:"slug"`
	Kind          string         `expr:"kind"`
	Error         string         `expr:"error"`
	HasController bool           `expr:"has_controller"`
	HasModel      bool           `expr:"has_model"`
	HasView       bool           `expr:"has_view"`
}

// BlockSpecification defines a condition that a block must meet.
type BlockSpecification interface {
	// IsSatisfiedBy checks if the block meets the specification.
	// Returns true if satisfied, along with a reason if not (or empty if satisfied).
	IsSatisfiedBy(block BlockEnv) (bool, string)
}

// AndSpecification combines multiple specifications with logical AND.
type AndSpecification struct {
	specs []BlockSpecification
}

// NewAndSpecification creates a new AndSpecification.
func NewAndSpecification(specs ...BlockSpecification) *AndSpecification {
	return &AndSpecification{specs: specs}
}

// IsSatisfiedBy checks if all specifications are satisfied.
func (s *AndSpecification) IsSatisfiedBy(block BlockEnv) (bool, string) {
	for _, spec := range s.specs {
		if satisfied, reason := spec.IsSatisfiedBy(block); !satisfied {
			return false, reason
		}
	}
	return true, ""
}

// KindSpecification includes only blocks of the given view variants.
type KindSpecification struct {
	kinds map[string]bool
}

// NewKindSpecification creates a new KindSpecification.
func NewKindSpecification(kinds map[string]bool) *KindSpecification {
	return &KindSpecification{kinds: kinds}
}

// IsSatisfiedBy checks if the block kind is included.
func (s *KindSpecification) IsSatisfiedBy(block BlockEnv) (bool, string) {
	if len(s.kinds) == 0 || s.kinds[block.Kind] {
		return true, ""
	}
	return false, "excluded by --kind filter"
}

// ExpressionSpecification filters blocks using an expr program.
type ExpressionSpecification struct {
	program *vm.Program
}

// NewExpressionSpecification creates a new ExpressionSpecification.
func NewExpressionSpecification(program *vm.Program) *ExpressionSpecification {
	return &ExpressionSpecification{program: program}
}

// IsSatisfiedBy evaluates the expr program against the block.
func (s *ExpressionSpecification) IsSatisfiedBy(block BlockEnv) (bool, string) {
	if s.program == nil {
		return true, ""
	}

	output, err := expr.Run(s.program, block)
	if err != nil {
		return false, fmt.Sprintf("filter expression error: %v", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Sprintf("filter expression did not return boolean: %v", output)
	}

	if !result {
		return false, "excluded by --filter expression"
	}

	return true, ""
}

// CompileBlockFilter compiles a filter expression against BlockEnv.
func CompileBlockFilter(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(BlockEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return program, nil
}
