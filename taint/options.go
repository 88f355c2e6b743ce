package taint

import (
	"errors"

	"github.com/taclab/tacflow/callgraph"
	"github.com/taclab/tacflow/ir"
	"github.com/taclab/tacflow/pointer"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("taint: invalid option supplied")

// Option configures Run via functional arguments, matching the shape of
// constprop.Option/pointer.Option.
type Option func(*options)

type options struct {
	err error
}

func applyOptions(opts []Option) (options, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}

// Run runs package pointer's analysis with popts plus cfg's Manager
// installed as its TaintHook, and returns the resulting points-to Result
// together with the confirmed taint flows (spec §4.9). The context selector
// is whatever popts selects (pointer.CI() when popts names none). It is a
// thin convenience wrapper around NewManager, pointer.Run and
// pointer.WithTaintHook.
func Run(prog *ir.Program, ch callgraph.ClassHierarchy, entry *ir.Method, cfg *Config, popts []pointer.Option, opts ...Option) (*pointer.Result, []TaintFlow, error) {
	if _, err := applyOptions(opts); err != nil {
		return nil, nil, err
	}

	mgr := NewManager(cfg)
	result, err := pointer.Run(prog, ch, entry, append(popts, pointer.WithTaintHook(mgr))...)
	if err != nil {
		return nil, nil, err
	}
	return result, mgr.Flows(), nil
}
