package ir

// Field identifies an instance or static field declaration.
type Field struct {
	DeclaringClass string
	Name           string
	Type           Type
	Static         bool
}

// MethodRef names a method the way a call site names its target before
// dispatch resolves it: a declaring class/interface name plus subsignature
// (spec §4.6's dispatch walks the superclass chain looking for this).
type MethodRef struct {
	DeclaringClass string
	Subsignature   string
}

func (r MethodRef) String() string { return r.DeclaringClass + "." + r.Subsignature }

// CallSite is the statement performing an invocation; it is also the
// "allocation site" identity used by context selectors (spec §4.7, §3).
type CallSite = *Invoke

// Method is one method body: parameters, optional receiver, return
// variables, and an ordered statement list, plus the lazily-built
// per-variable cross-indices spec §6 requires solvers to consume instead of
// rescanning statements.
type Method struct {
	Name           string
	DeclaringClass string
	Subsignature   string
	Params         []Var
	This           *Var // nil for a static method
	ReturnVars     []Var
	Stmts          []Stmt
	Abstract       bool

	idx index
}

type index struct {
	built       bool
	storeFields map[Var][]*StoreField
	loadFields  map[Var][]*LoadField
	storeArrays map[Var][]*StoreArray
	loadArrays  map[Var][]*LoadArray
	invokes     map[Var][]*Invoke
}

func (m *Method) build() {
	if m.idx.built {
		return
	}
	m.idx = index{
		built:       true,
		storeFields: make(map[Var][]*StoreField),
		loadFields:  make(map[Var][]*LoadField),
		storeArrays: make(map[Var][]*StoreArray),
		loadArrays:  make(map[Var][]*LoadArray),
		invokes:     make(map[Var][]*Invoke),
	}
	for i := range m.Stmts {
		switch s := m.Stmts[i].(type) {
		case *StoreField:
			if s.Base != nil {
				m.idx.storeFields[*s.Base] = append(m.idx.storeFields[*s.Base], s)
			}
		case *LoadField:
			if s.Base != nil {
				m.idx.loadFields[*s.Base] = append(m.idx.loadFields[*s.Base], s)
			}
		case *StoreArray:
			m.idx.storeArrays[s.Base] = append(m.idx.storeArrays[s.Base], s)
		case *LoadArray:
			m.idx.loadArrays[s.Base] = append(m.idx.loadArrays[s.Base], s)
		case *Invoke:
			if s.Receiver != nil {
				m.idx.invokes[*s.Receiver] = append(m.idx.invokes[*s.Receiver], s)
			}
			for _, a := range s.Args {
				m.idx.invokes[a] = append(m.idx.invokes[a], s)
			}
		}
	}
}

// StoreFields returns every `v.f := rhs` statement in this method, in
// program order, used by the heap-access transfer (spec §4.8.1).
func (m *Method) StoreFields(v Var) []*StoreField { m.build(); return m.idx.storeFields[v] }

// LoadFields returns every `x := v.f` statement in this method.
func (m *Method) LoadFields(v Var) []*LoadField { m.build(); return m.idx.loadFields[v] }

// StoreArrays returns every `v[*] := rhs` statement in this method.
func (m *Method) StoreArrays(v Var) []*StoreArray { m.build(); return m.idx.storeArrays[v] }

// LoadArrays returns every `x := v[*]` statement in this method.
func (m *Method) LoadArrays(v Var) []*LoadArray { m.build(); return m.idx.loadArrays[v] }

// Invokes returns every invocation in this method where v appears as
// receiver or argument.
func (m *Method) Invokes(v Var) []*Invoke { m.build(); return m.idx.invokes[v] }

// Program is the whole IR unit under analysis: the set of methods plus the
// class hierarchy used to resolve dispatch.
type Program struct {
	Methods []*Method
	Classes *ClassHierarchy
}

// MethodByRef looks up a declared method by (class, subsignature) without
// walking the superclass chain (exact declaration only); Dispatch (in
// class.go) performs the chain walk on top of this.
func (p *Program) MethodByRef(class, subsig string) (*Method, bool) {
	for _, m := range p.Methods {
		if m.DeclaringClass == class && m.Subsignature == subsig {
			return m, true
		}
	}
	return nil, false
}
