package commandbar

// History keeps the commands typed into the bar, most recent last.
type History struct {
	entries []string
	index   int // Current position in history (-1 means not navigating)
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{
		entries: []string{},
		index:   -1,
	}
}

// Add records cmd unless it repeats the most recent entry.
func (h *History) Add(cmd string) {
	if cmd == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == cmd {
		h.index = -1
		return
	}

	h.entries = append(h.entries, cmd)
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[len(h.entries)-MaxHistory:]
	}
	h.index = -1
}

// NavigateUp moves to an older command.
func (h *History) NavigateUp() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}

	if h.index == -1 {
		h.index = len(h.entries) - 1
	} else if h.index > 0 {
		h.index--
	}
	return h.entries[h.index], true
}

// NavigateDown moves to a newer command. It returns false once past the
// most recent entry, which means the input should be cleared.
func (h *History) NavigateDown() (string, bool) {
	if len(h.entries) == 0 || h.index == -1 {
		return "", false
	}

	if h.index < len(h.entries)-1 {
		h.index++
		return h.entries[h.index], true
	}

	h.index = -1
	return "", false
}

// Reset stops navigating.
func (h *History) Reset() {
	h.index = -1
}

// Size returns the number of entries.
func (h *History) Size() int {
	return len(h.entries)
}
