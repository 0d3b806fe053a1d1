// Package reveal coordinates the scroll-triggered entrance animations: which
// elements are tracked, which preset each uses and when each has been revealed.
package reveal

import (
	"fmt"
	"time"
)

// Preset is an entrance animation.
type Preset string

const (
	FadeUp    Preset = "fade-up"
	FadeLeft  Preset = "fade-left"
	FadeRight Preset = "fade-right"
	ZoomIn    Preset = "zoom-in"
	ZoomOut   Preset = "zoom-out"
)

func (p Preset) Valid() bool {
	switch p {
	case FadeUp, FadeLeft, FadeRight, ZoomIn, ZoomOut:
		return true
	}
	return false
}

// StaggerStep is the delay between neighbouring cards of a three-column grid.
const StaggerStep = 100 * time.Millisecond

// Stagger returns the delay of the index-th grid card.
func Stagger(index int) time.Duration {
	if index < 0 {
		index = -index
	}
	return time.Duration(index%3) * StaggerStep
}

// Options are the page-wide animation settings handed to the browser.
type Options struct {
	Duration  time.Duration
	Easing    string
	Offset    int
	Delay     time.Duration
	Threshold float64
}

// DefaultOptions returns the settings used on every page.
func DefaultOptions() Options {
	return Options{
		Duration:  800 * time.Millisecond,
		Easing:    "ease-out-cubic",
		Offset:    100,
		Delay:     100 * time.Millisecond,
		Threshold: 0.1,
	}
}

// JSON renders the options for the data-reveal-config attribute.
func (o Options) JSON() string {
	return fmt.Sprintf(`{"duration":%d,"easing":%q,"offset":%d,"delay":%d,"threshold":%g,"once":true}`,
		o.Duration.Milliseconds(), o.Easing, o.Offset, o.Delay.Milliseconds(), o.Threshold)
}
