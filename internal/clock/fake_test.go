package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClock(t *testing.T) {
	start := time.Date(2024, 7, 15, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

	c := NewFakeClock(start)
	assert.Equal(t, time.UTC, c.Now().Location())
	assert.True(t, c.Now().Equal(start))

	c.Advance(48 * time.Hour)
	assert.Equal(t, 17, c.Now().Day())

	c.Set(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.April, c.Now().Month())

	c.Advance(-time.Hour)
	assert.Equal(t, time.March, c.Now().Month())
}
