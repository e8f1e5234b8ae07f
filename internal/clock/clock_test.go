package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)

	c.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), c.Now())
	assert.Equal(t, start.Add(90*time.Second), c.Now())
}

func TestFakeClockSetNormalizesToUTC(t *testing.T) {
	c := NewFakeClock(time.Time{})
	local := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("WIB", 7*3600))

	c.Set(local)
	assert.Equal(t, time.UTC, c.Now().Location())
	assert.True(t, local.Equal(c.Now()))
}

func TestSteppingClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewSteppingClock(start, time.Second)

	first := c.Now()
	second := c.Now()
	assert.Equal(t, start, first)
	assert.Equal(t, time.Second, second.Sub(first))
}

func TestSystemClockIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, New().Now().Location())
}
