package reveal

import "sync"

// KeepScans is how many recent scans stay eligible for reveal. Pages rendered
// earlier in the same session may still be open in another tab or restored
// from the history cache.
const KeepScans = 8

// Tracker records which elements are eligible for reveal and which have been
// revealed. A reveal is one-shot: elements never hide again. Only elements of
// the last KeepScans scans reveal, so a caller that changes the rendered set
// must Rescan.
type Tracker struct {
	mu         sync.Mutex
	threshold  float64
	keep       int
	scans      []map[string]bool
	revealed   map[string]bool
	generation int
}

func NewTracker(threshold float64) *Tracker {
	return &Tracker{
		threshold: threshold,
		keep:      KeepScans,
		revealed:  make(map[string]bool),
	}
}

// Rescan adds ids as the newest tracked set and returns its generation. The
// oldest set is dropped once more than KeepScans are held, together with the
// reveal marks of its elements.
func (t *Tracker) Rescan(ids []string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	t.scans = append(t.scans, set)
	for len(t.scans) > t.keep {
		for id := range t.scans[0] {
			if !t.trackedLocked(id, 1) {
				delete(t.revealed, id)
			}
		}
		t.scans[0] = nil
		t.scans = t.scans[1:]
	}
	t.generation++
	return t.generation
}

// Observe reports the visible ratio of id. It returns true only for the
// observation that reveals the element.
func (t *Tracker) Observe(id string, ratio float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.trackedLocked(id, 0) || t.revealed[id] {
		return false
	}
	if ratio < t.threshold || ratio <= 0 {
		return false
	}
	t.revealed[id] = true
	return true
}

func (t *Tracker) Revealed(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.revealed[id]
}

func (t *Tracker) Tracked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.trackedLocked(id, 0)
}

func (t *Tracker) trackedLocked(id string, from int) bool {
	for _, set := range t.scans[from:] {
		if set[id] {
			return true
		}
	}
	return false
}

func (t *Tracker) Generation() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation
}
