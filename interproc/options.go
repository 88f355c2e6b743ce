package interproc

import "errors"

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("interproc: invalid option supplied")

// Option configures Run via functional arguments. Run currently takes no
// options beyond the icfg/pts it is handed directly, but the package keeps
// the same functional-options shape as constprop/pointer for consistency
// and so a future option (e.g. a custom heap-access policy) has somewhere
// to go without breaking Run's signature.
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
