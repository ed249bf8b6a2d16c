package mapedit

// ChangeKind identifies what an editor change notification is about.
type ChangeKind uint8

const (
	ChangeOpenMaps  ChangeKind = iota // a map was opened or closed
	ChangeActiveMap                   // the active map changed
	ChangeSelection                   // the palette selection changed
	ChangeMap                         // a map's contents, offset, size or zoom changed
	ChangeLoad                        // a project load finished
)

// Change describes one editor mutation. Map is the map concerned, if any.
type Change struct {
	Kind ChangeKind
	Map  *Map
}

type changeHandler struct {
	id uint32
	fn func(Change)
}

type changeRegistry struct {
	handlers []changeHandler
	nextID   uint32
}

// ChangeHandle allows removing a registered change callback.
type ChangeHandle struct {
	id  uint32
	reg *changeRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h ChangeHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = changeHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}

// OnChange registers fn to be called after every mutating editor
// operation. Derived state such as OpenMapNames can be read from fn.
func (e *Editor) OnChange(fn func(Change)) ChangeHandle {
	e.changes.nextID++
	id := e.changes.nextID
	e.changes.handlers = append(e.changes.handlers, changeHandler{id: id, fn: fn})
	return ChangeHandle{id: id, reg: &e.changes}
}

// emit calls every registered callback. Callbacks may remove themselves.
func (e *Editor) emit(c Change) {
	if len(e.changes.handlers) == 0 {
		return
	}
	snapshot := append([]changeHandler(nil), e.changes.handlers...)
	for _, h := range snapshot {
		h.fn(c)
	}
}
