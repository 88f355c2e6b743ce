package constprop

import "errors"

// ErrOptionViolation is returned when an invalid Option is supplied,
// mirroring the teacher's bfs.ErrOptionViolation convention.
var ErrOptionViolation = errors.New("constprop: invalid option supplied")

// Option configures Run via functional arguments.
type Option func(*options)

type options struct {
	err error
}

func defaultOptions() options { return options{} }

// applyOptions folds opts and returns the first recorded violation, if any.
func applyOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}
