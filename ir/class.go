package ir

// Class describes one class or interface declaration: its name, whether it
// is an interface, whether it is abstract, its direct superclass (empty for
// Object-roots), and the interfaces it directly implements.
type Class struct {
	Name        string
	Interface   bool
	Abstract    bool
	Super       string   // direct superclass name, "" if none
	Implements  []string // direct interface implements list
	SuperIfaces []string // interfaces this interface directly extends (when Interface)
}

// ClassHierarchy is the concrete class-hierarchy provider every analysis in
// this module is handed. Per spec §1/§6 a real implementation would be
// supplied by the IR frontend; this one is an in-memory index over a flat
// []Class list, sufficient for the solvers to be exercised standalone.
type ClassHierarchy struct {
	classes        map[string]*Class
	directSubclass map[string][]string // super -> direct subclasses
	directSubiface map[string][]string // iface -> direct sub-interfaces
	directImpl     map[string][]string // iface -> direct implementing classes
}

// NewClassHierarchy indexes classes into subclass/sub-interface/implementor
// adjacency, mirroring the teacher's adjacency-map construction in
// core.NewGraph (build-once, query-many, insertion-ordered iteration).
func NewClassHierarchy(classes []*Class) *ClassHierarchy {
	ch := &ClassHierarchy{
		classes:        make(map[string]*Class, len(classes)),
		directSubclass: make(map[string][]string),
		directSubiface: make(map[string][]string),
		directImpl:     make(map[string][]string),
	}
	for _, c := range classes {
		ch.classes[c.Name] = c
	}
	for _, c := range classes {
		if c.Interface {
			for _, super := range c.SuperIfaces {
				ch.directSubiface[super] = append(ch.directSubiface[super], c.Name)
			}
			for _, iface := range c.Implements {
				ch.directImpl[iface] = append(ch.directImpl[iface], c.Name)
			}
		} else {
			if c.Super != "" {
				ch.directSubclass[c.Super] = append(ch.directSubclass[c.Super], c.Name)
			}
			for _, iface := range c.Implements {
				ch.directImpl[iface] = append(ch.directImpl[iface], c.Name)
			}
		}
	}

	return ch
}

// Class returns the declaration for name, or nil if unknown.
func (ch *ClassHierarchy) Class(name string) *Class { return ch.classes[name] }

// IsInterface reports whether name is declared as an interface.
func (ch *ClassHierarchy) IsInterface(name string) bool {
	c := ch.classes[name]
	return c != nil && c.Interface
}

// IsAbstract reports whether name is declared abstract (or is an interface,
// which is never directly instantiable).
func (ch *ClassHierarchy) IsAbstract(name string) bool {
	c := ch.classes[name]
	return c != nil && (c.Abstract || c.Interface)
}

// Superclass returns the direct superclass name and true, or ("", false) at
// the root of the hierarchy.
func (ch *ClassHierarchy) Superclass(name string) (string, bool) {
	c := ch.classes[name]
	if c == nil || c.Super == "" {
		return "", false
	}
	return c.Super, true
}

// DirectSubclasses returns name's direct subclasses, insertion order.
func (ch *ClassHierarchy) DirectSubclasses(name string) []string { return ch.directSubclass[name] }

// DirectSubinterfaces returns the interfaces that directly extend name.
func (ch *ClassHierarchy) DirectSubinterfaces(name string) []string { return ch.directSubiface[name] }

// DirectImplementors returns the classes that directly implement interface
// name (does not include sub-interfaces' implementors).
func (ch *ClassHierarchy) DirectImplementors(name string) []string { return ch.directImpl[name] }

// Dispatch walks the superclass chain starting at class looking for a
// declared method with the given subsignature, per spec §4.6: "walks the
// superclass chain until the subsignature is declared".
func Dispatch(p *Program, ch *ClassHierarchy, class, subsig string) (*Method, bool) {
	for cur := class; cur != ""; {
		if m, ok := p.MethodByRef(cur, subsig); ok {
			return m, true
		}
		super, ok := ch.Superclass(cur)
		if !ok {
			break
		}
		cur = super
	}
	return nil, false
}
