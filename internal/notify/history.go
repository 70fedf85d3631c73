// internal/notify/history.go
package notify

import "sync"

// History is the append-only, size-bounded ledger of accepted submissions.
// When the cap is exceeded the oldest entries are evicted first.
type History struct {
	mu      sync.Mutex
	entries []*Notification
	limit   int
}

// NewHistory creates a ledger bounded to limit entries. A non-positive
// limit falls back to 1000.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 1000
	}
	return &History{limit: limit}
}

// Append records a notification, evicting the oldest entries when the
// ledger would exceed its bound. Append-and-evict is atomic.
func (h *History) Append(n *Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, n)
	if len(h.entries) > h.limit {
		overflow := len(h.entries) - h.limit
		h.entries = append(h.entries[:0:0], h.entries[overflow:]...)
	}
}

// Len reports the current ledger length.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// ForUser returns up to limit of the user's most recent entries,
// newest-last. A non-positive limit returns all of them.
func (h *History) ForUser(userID string, limit int) []*Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	var matched []*Notification
	for _, n := range h.entries {
		if n.UserID == userID {
			matched = append(matched, n)
		}
	}

	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched
}
