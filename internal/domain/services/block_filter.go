package services

import "github.com/expr-lang/expr/vm"

// BlockFilter implements block selection for catalog listings.
type BlockFilter struct {
	kinds         map[string]bool
	filterProgram *vm.Program
}

// NewBlockFilter initializes a new empty filter.
func NewBlockFilter() *BlockFilter {
	return &BlockFilter{
		kinds: make(map[string]bool),
	}
}

// WithKinds includes only blocks whose kind is listed ("dynamic", "static").
func (f *BlockFilter) WithKinds(kinds []string) *BlockFilter {
	f.kinds = toSet(kinds)
	return f
}

// WithFilterExpression applies a compiled Expr program for advanced filtering.
func (f *BlockFilter) WithFilterExpression(program *vm.Program) *BlockFilter {
	f.filterProgram = program
	return f
}

// Matches evaluates whether a block matches the filter criteria.
// It returns true if the block is selected, along with a reason if not.
func (f *BlockFilter) Matches(block BlockEnv) (bool, string) {
	var specs []BlockSpecification

	if len(f.kinds) > 0 {
		specs = append(specs, NewKindSpecification(f.kinds))
	}
	if f.filterProgram != nil {
		specs = append(specs, NewExpressionSpecification(f.filterProgram))
	}

	return NewAndSpecification(specs...).IsSatisfiedBy(block)
}

// toSet converts a slice to a map (set)
func toSet(slice []string) map[string]bool {
	s := make(map[string]bool, len(slice))
	for _, item := range slice {
		s[item] = true
	}
	return s
}
