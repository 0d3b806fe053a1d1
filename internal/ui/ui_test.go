package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccordionSingleActive(t *testing.T) {
	a := NewAccordion()
	_, open := a.Open()
	assert.False(t, open)

	a.Toggle(2)
	assert.True(t, a.IsOpen(2))
	assert.Equal(t, "?", a.ToggleHref(2))
	assert.Equal(t, "?open=0", a.ToggleHref(0))

	a.Toggle(0)
	assert.True(t, a.IsOpen(0))
	assert.False(t, a.IsOpen(2))

	a.Toggle(0)
	_, open = a.Open()
	assert.False(t, open)
}

func TestDropdown(t *testing.T) {
	var d Dropdown
	d.Click(false)
	assert.False(t, d.IsOpen())

	d.Toggle()
	d.Click(true)
	assert.True(t, d.IsOpen())
	d.Click(false)
	assert.False(t, d.IsOpen())

	d.Toggle()
	assert.True(t, d.Select(true))
	assert.False(t, d.IsOpen())

	d.Toggle()
	assert.False(t, d.Select(false))
	assert.False(t, d.IsOpen())
}

func TestCountUpFrames(t *testing.T) {
	c := CountUp{Target: 150, Duration: 160 * time.Millisecond}
	frames := c.Frames()
	require.Len(t, frames, 10)
	assert.Equal(t, int64(15), frames[0])
	assert.Equal(t, int64(150), frames[len(frames)-1])
	for i := 1; i < len(frames); i++ {
		assert.GreaterOrEqual(t, frames[i], frames[i-1])
	}
}

func TestCountUpRoundsUp(t *testing.T) {
	c := CountUp{Target: 5, Duration: 2 * time.Second}
	frames := c.Frames()
	assert.Equal(t, int64(1), frames[0])
	assert.Equal(t, int64(5), frames[len(frames)-1])
}

func TestCountUpZero(t *testing.T) {
	assert.Equal(t, []int64{0}, CountUp{}.Frames())
}

func TestCountUpFormat(t *testing.T) {
	c := CountUp{Target: 12500, Suffix: "+"}
	assert.Equal(t, "12,500+", c.Final())
	assert.Equal(t, "0+", c.Format(0))
}
