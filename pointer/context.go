package pointer

import (
	"fmt"

	"github.com/taclab/tacflow/ir"
)

// Context is a points-to analysis context: the empty context for C6 (spec
// §4.7: "C6 is the same pseudo-code with contexts elided"), or one of the
// three C7 keyings below. Every implementation is a small comparable value
// (a precomputed string key), so Context values are safe map/struct keys —
// the analysis never needs reference identity, only the key spec §4.7
// prescribes for each variant.
type Context interface {
	isContext()
	key() string
}

type emptyCtx struct{}

func (emptyCtx) isContext() {}
func (emptyCtx) key() string { return "ε" }

type callSiteCtx struct{ k string }

func (callSiteCtx) isContext()  {}
func (c callSiteCtx) key() string { return c.k }

type objCtx struct{ k string }

func (objCtx) isContext()   {}
func (c objCtx) key() string { return c.k }

type typeCtx struct{ k string }

func (typeCtx) isContext()   {}
func (c typeCtx) key() string { return c.k }

// ContextSelector produces contexts at the three decision points spec §4.7
// names: a static call site, an instance call site (given the resolved
// receiver object), and an allocation site's heap context.
type ContextSelector interface {
	EmptyContext() Context
	SelectContext(caller Context, site ir.CallSite, callee *ir.Method) Context
	SelectContextForInstance(caller Context, site ir.CallSite, recv CSObj, callee *ir.Method) Context
	SelectHeapContext(caller Context, method *ir.Method, site ir.Stmt) Context
}

// ciSelector is C6: every decision point collapses to the single emptyCtx
// value, making context-insensitive pointer analysis literally "C7 with
// contexts elided" rather than a separate code path (spec §4.7).
type ciSelector struct{}

// CI returns the context-insensitive selector (component C6).
func CI() ContextSelector { return ciSelector{} }

func (ciSelector) EmptyContext() Context { return emptyCtx{} }
func (ciSelector) SelectContext(Context, ir.CallSite, *ir.Method) Context { return emptyCtx{} }
func (ciSelector) SelectContextForInstance(Context, ir.CallSite, CSObj, *ir.Method) Context {
	return emptyCtx{}
}
func (ciSelector) SelectHeapContext(Context, *ir.Method, ir.Stmt) Context { return emptyCtx{} }

// kCallSelector truncates the call-site-string context chain to length k
// (k-CFA, §4.7). k=1 — a context is simply "the most recent call site" — is
// the default used by S5.
type kCallSelector struct{ k int }

// KCallSelector returns the k-call-site-sensitive selector.
func KCallSelector(k int) ContextSelector { return kCallSelector{k: k} }

func (kCallSelector) EmptyContext() Context { return emptyCtx{} }

func (s kCallSelector) SelectContext(caller Context, site ir.CallSite, _ *ir.Method) Context {
	return callSiteCtx{k: truncate(caller.key(), siteKey(site), s.k)}
}

func (s kCallSelector) SelectContextForInstance(caller Context, site ir.CallSite, _ CSObj, _ *ir.Method) Context {
	return callSiteCtx{k: truncate(caller.key(), siteKey(site), s.k)}
}

func (kCallSelector) SelectHeapContext(caller Context, _ *ir.Method, _ ir.Stmt) Context {
	return caller
}

// kObjSelector (k-object-sensitive) keys the callee context by the receiver
// object's allocation site instead of the call site (§4.7).
type kObjSelector struct{ k int }

// KObjSelector returns the k-object-sensitive selector.
func KObjSelector(k int) ContextSelector { return kObjSelector{k: k} }

func (kObjSelector) EmptyContext() Context { return emptyCtx{} }
func (s kObjSelector) SelectContext(caller Context, _ ir.CallSite, _ *ir.Method) Context {
	return caller // static calls have no receiver object to key on; inherit caller's
}
func (s kObjSelector) SelectContextForInstance(caller Context, _ ir.CallSite, recv CSObj, _ *ir.Method) Context {
	return objCtx{k: truncate(caller.key(), recv.String(), s.k)}
}
func (kObjSelector) SelectHeapContext(caller Context, _ *ir.Method, _ ir.Stmt) Context { return caller }

// kTypeSelector (k-type-sensitive) keys the callee context by the receiver
// object's declared type (§4.7), the coarsest of the three C7 keyings.
type kTypeSelector struct{ k int }

// KTypeSelector returns the k-type-sensitive selector.
func KTypeSelector(k int) ContextSelector { return kTypeSelector{k: k} }

func (kTypeSelector) EmptyContext() Context { return emptyCtx{} }
func (s kTypeSelector) SelectContext(caller Context, _ ir.CallSite, _ *ir.Method) Context {
	return caller
}
func (s kTypeSelector) SelectContextForInstance(caller Context, _ ir.CallSite, recv CSObj, _ *ir.Method) Context {
	return typeCtx{k: truncate(caller.key(), recv.Base.Type.String(), s.k)}
}
func (kTypeSelector) SelectHeapContext(caller Context, _ *ir.Method, _ ir.Stmt) Context { return caller }

func siteKey(site ir.CallSite) string {
	return fmt.Sprintf("%s#%d", site.Method().Name, site.Index())
}

// truncate conses element onto the caller's chain and keeps only the most
// recent k links, implementing the k-CFA/k-obj/k-type "truncate to length
// k" rule shared by all three context-sensitive selectors.
func truncate(callerKey, element string, k int) string {
	if k <= 0 {
		return "ε"
	}
	if callerKey == "ε" {
		return element
	}
	chain := callerKey + ">" + element
	// keep only the last k '>'-separated links
	links := splitLinks(chain)
	if len(links) > k {
		links = links[len(links)-k:]
	}
	out := links[0]
	for _, l := range links[1:] {
		out += ">" + l
	}
	return out
}

func splitLinks(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '>' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
