// internal/notify/quiet_test.go
package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    Clock
		wantErr bool
	}{
		{"22:00", Clock{Hour: 22, Minute: 0}, false},
		{"07:30", Clock{Hour: 7, Minute: 30}, false},
		{"0:05", Clock{Hour: 0, Minute: 5}, false},
		{"23:59", Clock{Hour: 23, Minute: 59}, false},
		{"24:00", Clock{}, true},
		{"12:60", Clock{}, true},
		{"noon", Clock{}, true},
		{"", Clock{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindowContains_WrapsMidnight(t *testing.T) {
	w := Window{Start: MustClock("22:00"), End: MustClock("07:00")}

	assert.True(t, w.Contains(at(23, 0)))
	assert.True(t, w.Contains(at(3, 0)))
	assert.True(t, w.Contains(at(22, 0)), "start bound is inclusive")
	assert.True(t, w.Contains(at(7, 0)), "end bound is inclusive")
	assert.False(t, w.Contains(at(12, 0)))
	assert.False(t, w.Contains(at(7, 1)))
	assert.False(t, w.Contains(at(21, 59)))
}

func TestWindowContains_SameDay(t *testing.T) {
	w := Window{Start: MustClock("09:00"), End: MustClock("17:00")}

	assert.True(t, w.Contains(at(12, 0)))
	assert.True(t, w.Contains(at(9, 0)))
	assert.True(t, w.Contains(at(17, 0)))
	assert.False(t, w.Contains(at(20, 0)))
	assert.False(t, w.Contains(at(8, 59)))
}
