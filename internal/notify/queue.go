// internal/notify/queue.go
package notify

import (
	"sync"

	"nutrition-notifier/internal/common/metrics"
)

// Queue buffers policy-accepted notifications for background dispatch.
// Ordered FIFO; push and pop are each atomic per item.
type Queue struct {
	mu    sync.Mutex
	items []*Notification
}

// NewQueue returns an empty delivery queue.
func NewQueue() *Queue {
	return &Queue{items: make([]*Notification, 0)}
}

// Push appends a pending notification to the back of the queue.
func (q *Queue) Push(n *Notification) {
	q.mu.Lock()
	q.items = append(q.items, n)
	metrics.QueueDepth.Set(float64(len(q.items)))
	q.mu.Unlock()
}

// Pop removes and returns the front item, or nil when the queue is empty.
func (q *Queue) Pop() *Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}
	n := q.items[0]
	q.items = q.items[1:]
	metrics.QueueDepth.Set(float64(len(q.items)))
	return n
}

// Len reports the number of pending notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
