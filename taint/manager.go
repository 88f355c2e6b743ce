package taint

import (
	"fmt"
	"sort"

	"github.com/taclab/tacflow/ir"
	"github.com/taclab/tacflow/pointer"
)

// TaintFlow records one confirmed source-to-sink flow (spec §4.9's sink
// collection step).
type TaintFlow struct {
	SourceCall ir.CallSite
	SinkCall   ir.CallSite
	ArgIndex   int
}

type flowKey struct {
	source, sink *ir.Invoke
	arg          int
}

// Manager implements pointer.TaintHook, riding inside the context-sensitive
// solver to mint, propagate, and collect taint objects per spec §4.9. The
// zero value is not usable; construct with NewManager.
type Manager struct {
	cfg   *Config
	flows []TaintFlow
	seen  map[flowKey]struct{}
}

// NewManager returns a Manager driven by cfg.
func NewManager(cfg *Config) *Manager {
	return &Manager{cfg: cfg, seen: make(map[flowKey]struct{})}
}

// OnInvoke implements pointer.TaintHook: source injection and transfer
// propagation for one resolved invocation (spec §4.9).
func (m *Manager) OnInvoke(s *pointer.Solver, ctx pointer.Context, site ir.CallSite, callee *ir.Method) {
	for _, src := range m.cfg.Sources {
		if !matchesMethod(src.Method, callee) || site.LHS == nil {
			continue
		}
		obj := pointer.CSObj{
			Ctx:    s.EmptyContext(),
			Base:   ir.Obj{Site: site, Type: src.ResultType},
			Taint:  true,
			Source: site,
		}
		s.AddPointsTo(s.VarPointer(ctx, *site.LHS), obj)
	}

	for _, tr := range m.cfg.Transfers {
		if !matchesMethod(tr.Method, callee) {
			continue
		}
		fromID, ok := slotPointer(s, ctx, site, tr.From)
		if !ok {
			continue
		}
		toID, ok := slotPointer(s, ctx, site, tr.To)
		if !ok {
			continue
		}
		// Registered as a retagging PFG edge, not a one-shot scan of
		// fromID's current contents: a taint object can reach the from-slot
		// later, via ordinary propagation (a copy, a callee return, another
		// transfer) after this call site was discovered. The edge tracks
		// that monotone growth the same way the rest of the solver does
		// (spec §4.9/§9).
		declaredType := tr.Type
		s.AddTaintTransfer(fromID, toID, func(o pointer.CSObj) (pointer.CSObj, bool) {
			if !o.Taint {
				return pointer.CSObj{}, false
			}
			// Preserve the original source call (identity) but retype to
			// the transfer's declared type — spec §4.9/§9's resolved Open
			// Question.
			return pointer.CSObj{
				Ctx:    s.EmptyContext(),
				Base:   ir.Obj{Site: o.Base.Site, Type: declaredType},
				Taint:  true,
				Source: o.Source,
			}, true
		})
	}
}

// OnSolveComplete implements pointer.TaintHook's sink-collection step: for
// every call-graph edge whose callee matches a configured sink, inspect the
// i-th argument's points-to set in the call's own context and record a
// TaintFlow for every taint object found (spec §4.9).
func (m *Manager) OnSolveComplete(s *pointer.Solver, cg *pointer.CSCallGraph) {
	for _, e := range cg.Edges() {
		for _, sink := range m.cfg.Sinks {
			if !matchesMethod(sink.Method, e.Callee) {
				continue
			}
			if sink.ArgIndex < 0 || sink.ArgIndex >= len(e.Site.Args) {
				continue
			}
			ptr := s.VarPointer(e.CallerCtx, e.Site.Args[sink.ArgIndex])
			for _, o := range s.PointsTo(ptr).Objects() {
				if !o.Taint {
					continue
				}
				k := flowKey{source: o.Source, sink: e.Site, arg: sink.ArgIndex}
				if _, ok := m.seen[k]; ok {
					continue
				}
				m.seen[k] = struct{}{}
				m.flows = append(m.flows, TaintFlow{SourceCall: o.Source, SinkCall: e.Site, ArgIndex: sink.ArgIndex})
			}
		}
	}
}

// Flows returns every confirmed taint flow, ordered by (sourceCall,
// sinkCall, argIndex) per spec §3/§4.9. Distinct source calls reaching the
// same sink are never collapsed.
func (m *Manager) Flows() []TaintFlow {
	out := append([]TaintFlow(nil), m.flows...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ka, kb := siteOrder(a.SourceCall), siteOrder(b.SourceCall); ka != kb {
			return ka < kb
		}
		if ka, kb := siteOrder(a.SinkCall), siteOrder(b.SinkCall); ka != kb {
			return ka < kb
		}
		return a.ArgIndex < b.ArgIndex
	})
	return out
}

func siteOrder(s ir.CallSite) string {
	return fmt.Sprintf("%s#%05d", s.Method().Name, s.Index())
}

func slotPointer(s *pointer.Solver, ctx pointer.Context, site ir.CallSite, slot Slot) (pointer.PointerID, bool) {
	switch slot.Kind {
	case SlotBase:
		if site.Receiver == nil {
			return 0, false
		}
		return s.VarPointer(ctx, *site.Receiver), true
	case SlotResult:
		if site.LHS == nil {
			return 0, false
		}
		return s.VarPointer(ctx, *site.LHS), true
	default: // SlotArg
		if slot.Index < 0 || slot.Index >= len(site.Args) {
			return 0, false
		}
		return s.VarPointer(ctx, site.Args[slot.Index]), true
	}
}

func matchesMethod(ref ir.MethodRef, m *ir.Method) bool {
	return m.DeclaringClass == ref.DeclaringClass && m.Subsignature == ref.Subsignature
}
