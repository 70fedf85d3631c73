// internal/notify/history_test.go
package notify

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id int, userID string) *Notification {
	return &Notification{ID: strconv.Itoa(id), UserID: userID, Category: CategoryNutritionTip}
}

func TestHistoryEvictsOldestPastLimit(t *testing.T) {
	h := NewHistory(5)

	for i := 0; i < 8; i++ {
		h.Append(entry(i, "user-1"))
	}

	assert.Equal(t, 5, h.Len())
	got := h.ForUser("user-1", 0)
	require.Len(t, got, 5)
	assert.Equal(t, "3", got[0].ID, "oldest surviving entry")
	assert.Equal(t, "7", got[4].ID, "newest entry")
}

func TestHistoryForUserFiltersAndLimits(t *testing.T) {
	h := NewHistory(100)

	for i := 0; i < 6; i++ {
		h.Append(entry(i, "alice"))
	}
	h.Append(entry(100, "bob"))

	got := h.ForUser("alice", 3)
	require.Len(t, got, 3)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "5", got[2].ID)

	assert.Len(t, h.ForUser("bob", 0), 1)
	assert.Empty(t, h.ForUser("ghost", 0))
}

func TestHistoryDefaultLimit(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < 1005; i++ {
		h.Append(entry(i, "user-1"))
	}
	assert.Equal(t, 1000, h.Len())
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()

	assert.Nil(t, q.Pop())

	q.Push(entry(1, "u"))
	q.Push(entry(2, "u"))
	assert.Equal(t, 2, q.Len())

	assert.Equal(t, "1", q.Pop().ID)
	assert.Equal(t, "2", q.Pop().ID)
	assert.Nil(t, q.Pop())
	assert.Zero(t, q.Len())
}
