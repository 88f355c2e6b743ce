package pointer

import (
	"errors"

	"github.com/taclab/tacflow/callgraph"
	"github.com/taclab/tacflow/ir"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("pointer: invalid option supplied")

// Option configures Run via functional arguments.
type Option func(*options)

type options struct {
	selector ContextSelector
	hook     TaintHook
	err      error
}

func defaultOptions() options {
	return options{selector: CI()}
}

// WithContextSelector overrides the default context-insensitive selector,
// selecting the C7 keying (spec §4.7).
func WithContextSelector(sel ContextSelector) Option {
	return func(o *options) {
		if sel == nil {
			o.err = ErrOptionViolation
			return
		}
		o.selector = sel
	}
}

// WithTaintHook installs package taint's Manager as the solver's TaintHook
// (spec §4.9).
func WithTaintHook(hook TaintHook) Option {
	return func(o *options) { o.hook = hook }
}

func applyOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}

// Run constructs a Solver over prog/ch per opts and runs it to completion
// from entry (spec §4.7).
func Run(prog *ir.Program, ch callgraph.ClassHierarchy, entry *ir.Method, opts ...Option) (*Result, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	s := NewSolver(prog, ch, o.selector, o.hook)
	return s.Solve(entry), nil
}
