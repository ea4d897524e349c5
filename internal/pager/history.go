package pager

// historyStack records, per visited page, the cursor that must be used
// to re-request it: cursors[i] is the "after" token for page i+1 (so
// cursors[0] is always "", page 1 having no cursor).
//
// The stack lives outside the serialized {page, pageSize, cursor}
// triple on purpose: it is derived, instance-local memory, and
// serializing it would grow the query string in proportion to how deep
// the user has paged.
type historyStack struct {
	cursors []string
}

// set records cursor as the token for page idx+1. Any deeper entries
// are stale once the path below them changes, so the stack is truncated
// to idx before appending.
func (h *historyStack) set(idx int, cursor string) {
	if idx < 0 {
		return
	}
	if idx < len(h.cursors) {
		h.cursors = h.cursors[:idx]
	}
	// Defensive gap fill; unreachable through the navigation operations,
	// which only ever append at the current depth.
	for len(h.cursors) < idx {
		h.cursors = append(h.cursors, "")
	}
	h.cursors = append(h.cursors, cursor)
}

// popTo returns the cursor recorded at idx and discards it along with
// everything deeper. A missing entry reads as "": no cursor, first
// page semantics.
func (h *historyStack) popTo(idx int) string {
	if idx < 0 || idx >= len(h.cursors) {
		return ""
	}
	cursor := h.cursors[idx]
	h.cursors = h.cursors[:idx]
	return cursor
}

// clear empties the stack.
func (h *historyStack) clear() {
	h.cursors = h.cursors[:0]
}

// depth returns the number of recorded entries.
func (h *historyStack) depth() int {
	return len(h.cursors)
}
