package paint

// History holds the committed paints and the redo buffer, both ordered
// most recent first. A paint lives in exactly one of the two lists, never
// both; undo and redo move the head element across, they never copy.
type History struct {
	committed []*Paint
	redo      []*Paint
}

// Commit pushes p to the front of the committed list and destroys any
// redo entries: no redo branch survives a new edit.
func (h *History) Commit(p *Paint) {
	p.Committed = true
	h.committed = append([]*Paint{p}, h.committed...)
	h.redo = nil
}

// Undo moves the most recent committed paint to the redo buffer. It
// reports whether anything was undone.
func (h *History) Undo() bool {
	if len(h.committed) == 0 {
		return false
	}
	p := h.committed[0]
	h.committed = h.committed[1:]
	h.redo = append([]*Paint{p}, h.redo...)
	return true
}

// Redo moves the most recently undone paint back onto the committed
// list. It reports whether anything was redone.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	p := h.redo[0]
	h.redo = h.redo[1:]
	h.committed = append([]*Paint{p}, h.committed...)
	return true
}

// Clear drops both lists.
func (h *History) Clear() {
	h.committed = nil
	h.redo = nil
}

// Len returns the number of committed paints.
func (h *History) Len() int { return len(h.committed) }

// RedoLen returns the number of undone paints available for redo.
func (h *History) RedoLen() int { return len(h.redo) }

// Committed returns the committed paints oldest first, the order they
// must be rendered in so later annotations layer on top.
func (h *History) Committed() []*Paint {
	out := make([]*Paint, len(h.committed))
	for i, p := range h.committed {
		out[len(h.committed)-1-i] = p
	}
	return out
}

// Recent returns the committed paints most recent first.
func (h *History) Recent() []*Paint {
	out := make([]*Paint, len(h.committed))
	copy(out, h.committed)
	return out
}
