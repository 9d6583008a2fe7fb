package calculator

// scope is one active let binding during parsing. Frames form a singly
// linked chain, innermost first, and never outlive the parse that created
// them: once the tree is built, resolved values live in the variable nodes.
type scope struct {
	name      string
	value     int64
	committed bool
	parent    *scope
}

// newScope creates a frame that is findable by name but not yet resolvable.
// The frame has to exist before its own value expression is parsed, so a
// name slot and a value slot are filled at different times.
func newScope(name string, parent *scope) *scope {
	return &scope{name: name, parent: parent}
}

func (s *scope) commit(v int64) {
	s.value = v
	s.committed = true
}

// resolve walks the chain innermost to outermost and returns the value of
// the first committed frame matching name. An uncommitted frame is
// transparent: it does not shadow an outer binding of the same name.
func (s *scope) resolve(name string) (int64, bool) {
	for f := s; f != nil; f = f.parent {
		if f.name == name && f.committed {
			return f.value, true
		}
	}
	return 0, false
}
