package shopclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int) time.Time {
	return time.Date(2024, 6, 15, hour, 30, 0, 0, time.UTC)
}

func TestStoreHours_IsOpenAt(t *testing.T) {
	hours := DefaultStoreHours()

	tests := []struct {
		hour int
		open bool
	}{
		{hour: 8, open: false},
		{hour: 9, open: true},
		{hour: 12, open: true},
		{hour: 20, open: true},
		{hour: 21, open: false},
		{hour: 23, open: false},
		{hour: 0, open: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.open, hours.IsOpenAt(at(tt.hour)), "hour %d", tt.hour)
	}
}

func TestStoreHours_WrapsPastMidnight(t *testing.T) {
	late := StoreHours{Open: 22, Close: 6}

	assert.True(t, late.IsOpenAt(at(23)))
	assert.True(t, late.IsOpenAt(at(0)))
	assert.True(t, late.IsOpenAt(at(5)))
	assert.False(t, late.IsOpenAt(at(6)))
	assert.False(t, late.IsOpenAt(at(12)))
	assert.False(t, late.IsOpenAt(at(21)))
}

func TestStoreHours_EmptyWindowIsAlwaysClosed(t *testing.T) {
	closed := StoreHours{Open: 9, Close: 9}

	for hour := 0; hour < 24; hour++ {
		assert.False(t, closed.IsOpenAt(at(hour)))
	}
}
