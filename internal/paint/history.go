package paint

// DefaultHistoryLimit bounds the undo stack.
const DefaultHistoryLimit = 20

// Snapshot is an independent copy of a Store's full state. It owns its pixel
// buffers; nothing in a Snapshot is shared with a live Store.
type Snapshot struct {
	Width  int
	Height int
	Active int
	Layers []*Layer
}

// Capture deep-copies the state of s.
func Capture(s *Store) Snapshot {
	layers := make([]*Layer, len(s.layers))
	for i, l := range s.layers {
		layers[i] = l.Clone()
	}
	return Snapshot{Width: s.width, Height: s.height, Active: s.active, Layers: layers}
}

// Restore installs a fresh copy of the snapshot into s, so the snapshot stays
// valid if s is drawn on afterwards.
func (snap Snapshot) Restore(s *Store) {
	layers := make([]*Layer, len(snap.Layers))
	for i, l := range snap.Layers {
		layers[i] = l.Clone()
	}
	s.replace(layers, snap.Active, snap.Width, snap.Height)
}

// Store builds a new Store from the snapshot.
func (snap Snapshot) Store() *Store {
	s := &Store{}
	snap.Restore(s)
	return s
}

// History keeps bounded undo and redo stacks of snapshots.
type History struct {
	limit int
	undo  []Snapshot
	redo  []Snapshot
}

// NewHistory returns a history holding at most limit undo entries. A
// non-positive limit selects DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Limit returns the maximum number of undo entries.
func (h *History) Limit() int { return h.limit }

// Len returns the number of undo entries.
func (h *History) Len() int { return len(h.undo) }

// RedoLen returns the number of redo entries.
func (h *History) RedoLen() int { return len(h.redo) }

// CanUndo reports whether Undo would change anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Push records the pre-mutation state of s. It must be called before the
// mutation. The oldest entry is evicted past the limit and the redo stack is
// cleared.
func (h *History) Push(s *Store) {
	if len(h.undo) >= h.limit {
		h.evictOldest()
	}
	h.undo = append(h.undo, Capture(s))
	h.redo = nil
}

// evictOldest drops the bottom undo entry, clearing the vacated slot so the
// backing array does not keep its bitmaps alive.
func (h *History) evictOldest() {
	n := copy(h.undo, h.undo[1:])
	h.undo[n] = Snapshot{}
	h.undo = h.undo[:n]
}

func pop(stack *[]Snapshot) Snapshot {
	s := *stack
	n := len(s) - 1
	top := s[n]
	s[n] = Snapshot{}
	*stack = s[:n]
	return top
}

// Undo moves the live state onto the redo stack and installs the most recent
// undo entry.
func (h *History) Undo(s *Store) bool {
	if len(h.undo) == 0 {
		return false
	}
	h.redo = append(h.redo, Capture(s))
	pop(&h.undo).Restore(s)
	return true
}

// Redo is the inverse of Undo.
func (h *History) Redo(s *Store) bool {
	if len(h.redo) == 0 {
		return false
	}
	if len(h.undo) >= h.limit {
		h.evictOldest()
	}
	h.undo = append(h.undo, Capture(s))
	pop(&h.redo).Restore(s)
	return true
}

// Reset drops every entry.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}
