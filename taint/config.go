// Package taint implements the taint-propagation overlay of spec §4.9
// (component C9): it rides inside package pointer's context-sensitive
// solver via the pointer.TaintHook interface, minting distinguished heap
// objects at configured sources, propagating them through configured
// transfers, and collecting them at configured sinks once the points-to
// fixed point completes.
package taint

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/taclab/tacflow/ir"
)

// ErrConfig is returned when a taint configuration document is malformed:
// it does not decode, a method reference has no '.', or a slot name is not
// recognized (spec §7: ConfigError aborts the run before it starts). Method
// references are not checked against any program.
var ErrConfig = errors.New("taint: invalid configuration")

// SlotKind tags which argument position, if any, a Slot names.
type SlotKind int

const (
	SlotBase SlotKind = iota
	SlotResult
	SlotArg
)

// Slot names one of a call's variable bindings: the receiver (Base), the
// bound result (Result), or the i-th actual argument (Arg).
type Slot struct {
	Kind  SlotKind
	Index int
}

// BaseSlot, ResultSlot and ArgSlot are the Slot constructors spec §4.9's
// transfer records are built from.
func BaseSlot() Slot     { return Slot{Kind: SlotBase} }
func ResultSlot() Slot   { return Slot{Kind: SlotResult} }
func ArgSlot(i int) Slot { return Slot{Kind: SlotArg, Index: i} }

func (s Slot) String() string {
	switch s.Kind {
	case SlotBase:
		return "base"
	case SlotResult:
		return "result"
	default:
		return fmt.Sprintf("arg(%d)", s.Index)
	}
}

// Source names a call whose result is tainted at its type (spec §4.9:
// "mints TaintObj(call, source.type)").
type Source struct {
	Method     ir.MethodRef
	ResultType ir.Type
}

// Sink names a call whose i-th argument must never observe a taint object.
type Sink struct {
	Method   ir.MethodRef
	ArgIndex int
}

// Transfer names a call that, when matched, re-taints whatever reaches its
// From slot into its To slot, retyped to Type (spec §4.9's propagation
// rule: "mints a new taint object typed as type, preserving original
// source-call identity").
type Transfer struct {
	Method ir.MethodRef
	From   Slot
	To     Slot
	Type   ir.Type
}

// Config is the parsed taint specification: every source, sink, and
// transfer record package taint's Manager consults while riding inside the
// pointer solver.
type Config struct {
	Sources   []Source
	Sinks     []Sink
	Transfers []Transfer
}

// yamlDoc mirrors the wire format LoadConfig parses: method references are
// written "DeclaringClass.subsignature" for readability, then split on the
// first '.' that separates the class name from the subsignature's own
// parens-qualified text.
type yamlDoc struct {
	Sources []struct {
		Method string `yaml:"method"`
		Type   string `yaml:"type"`
	} `yaml:"sources"`
	Sinks []struct {
		Method string `yaml:"method"`
		Arg    int    `yaml:"arg"`
	} `yaml:"sinks"`
	Transfers []struct {
		Method string `yaml:"method"`
		From   string `yaml:"from"`
		To     string `yaml:"to"`
		Type   string `yaml:"type"`
	} `yaml:"transfers"`
}

// LoadConfig parses a taint configuration document (fields sources, sinks,
// transfers) per spec §4.9. A malformed document or a slot name other than
// "base", "result", or "arg(N)" is ErrConfig.
func LoadConfig(r io.Reader) (*Config, error) {
	var doc yamlDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	cfg := &Config{}
	for _, s := range doc.Sources {
		ref, err := parseMethodRef(s.Method)
		if err != nil {
			return nil, err
		}
		cfg.Sources = append(cfg.Sources, Source{Method: ref, ResultType: ir.RefType(s.Type)})
	}
	for _, s := range doc.Sinks {
		ref, err := parseMethodRef(s.Method)
		if err != nil {
			return nil, err
		}
		cfg.Sinks = append(cfg.Sinks, Sink{Method: ref, ArgIndex: s.Arg})
	}
	for _, t := range doc.Transfers {
		ref, err := parseMethodRef(t.Method)
		if err != nil {
			return nil, err
		}
		from, err := parseSlot(t.From)
		if err != nil {
			return nil, err
		}
		to, err := parseSlot(t.To)
		if err != nil {
			return nil, err
		}
		cfg.Transfers = append(cfg.Transfers, Transfer{Method: ref, From: from, To: to, Type: ir.RefType(t.Type)})
	}

	return cfg, nil
}

// parseMethodRef splits "Class.subsig(args)" on the first '.', which is
// sufficient because subsignatures never themselves start with '.'.
func parseMethodRef(s string) (ir.MethodRef, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return ir.MethodRef{DeclaringClass: s[:i], Subsignature: s[i+1:]}, nil
		}
	}
	return ir.MethodRef{}, fmt.Errorf("%w: method reference %q missing '.'", ErrConfig, s)
}

func parseSlot(s string) (Slot, error) {
	switch {
	case s == "base":
		return BaseSlot(), nil
	case s == "result":
		return ResultSlot(), nil
	case len(s) > 5 && s[:4] == "arg(" && s[len(s)-1] == ')':
		var idx int
		if _, err := fmt.Sscanf(s[4:len(s)-1], "%d", &idx); err != nil {
			return Slot{}, fmt.Errorf("%w: bad arg slot %q", ErrConfig, s)
		}
		return ArgSlot(idx), nil
	default:
		return Slot{}, fmt.Errorf("%w: unknown slot %q", ErrConfig, s)
	}
}
