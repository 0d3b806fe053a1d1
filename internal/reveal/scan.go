package reveal

import (
	"fmt"
	"html/template"
	"time"
)

// Scan collects the animated elements of one rendered page. Templates call Attr
// or Grid for each element; Commit hands the collected ids to the tracker.
type Scan struct {
	tracker *Tracker
	gen     int
	ids     []string
}

func NewScan(t *Tracker) *Scan {
	return &Scan{tracker: t, gen: t.Generation() + 1}
}

// Attr registers an element and returns its data attributes.
func (s *Scan) Attr(p Preset, delay time.Duration) template.HTMLAttr {
	if !p.Valid() {
		p = FadeUp
	}
	id := fmt.Sprintf("r%d-%d", s.gen, len(s.ids))
	s.ids = append(s.ids, id)

	attr := fmt.Sprintf(`data-reveal="%s" data-reveal-id="%s"`, p, id)
	if delay > 0 {
		attr += fmt.Sprintf(` data-reveal-delay="%d"`, delay.Milliseconds())
	}
	return template.HTMLAttr(attr)
}

// Grid registers the index-th card of a grid with the column stagger applied.
func (s *Scan) Grid(p Preset, index int) template.HTMLAttr {
	return s.Attr(p, Stagger(index))
}

// IDs returns the elements registered so far.
func (s *Scan) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Commit makes the scanned elements the tracked set and returns the generation.
func (s *Scan) Commit() int {
	return s.tracker.Rescan(s.ids)
}
