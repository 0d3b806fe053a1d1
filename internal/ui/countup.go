package ui

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// FrameInterval is the tick of the count-up animation.
	FrameInterval = 16 * time.Millisecond
	// DefaultCountUpDuration is used when no duration is given.
	DefaultCountUpDuration = 2 * time.Second
)

// CountUp describes a number that animates from zero to Target once it first
// becomes visible.
type CountUp struct {
	Target   int64
	Duration time.Duration
	Suffix   string
}

// Frames returns the value shown on each tick. Intermediate values are rounded
// up and the final frame is always Target.
func (c CountUp) Frames() []int64 {
	if c.Target <= 0 {
		return []int64{c.Target}
	}
	d := c.Duration
	if d <= 0 {
		d = DefaultCountUpDuration
	}
	steps := float64(d) / float64(FrameInterval)
	inc := float64(c.Target) / steps
	end := float64(c.Target)

	var frames []int64
	for cur := inc; ; cur += inc {
		if cur >= end {
			return append(frames, c.Target)
		}
		frames = append(frames, int64(math.Ceil(cur)))
	}
}

// Format renders v with thousands separators and the suffix, as the final frame
// is displayed.
func (c CountUp) Format(v int64) string {
	return humanize.Comma(v) + c.Suffix
}

// Final is the formatted target value.
func (c CountUp) Final() string {
	return c.Format(c.Target)
}
