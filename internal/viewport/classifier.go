package viewport

import "sync"

// Classifier exposes whether a Window currently matches a Query. It holds one
// window subscription from Watch until Close.
type Classifier struct {
	mu       sync.Mutex
	query    Query
	matches  bool
	nextID   int
	handlers map[int]func(bool)
	release  func()
}

// Watch computes the initial match synchronously and keeps it live.
func Watch(w *Window, q Query) *Classifier {
	c := &Classifier{
		query:    q,
		matches:  q.Match(w.Width()),
		handlers: make(map[int]func(bool)),
	}
	c.release = w.Subscribe(c.update)
	return c
}

func (c *Classifier) update(width int) {
	c.mu.Lock()
	next := c.query.Match(width)
	if next == c.matches {
		c.mu.Unlock()
		return
	}
	c.matches = next
	handlers := make([]func(bool), 0, len(c.handlers))
	for i := 0; i < c.nextID; i++ {
		if h, ok := c.handlers[i]; ok {
			handlers = append(handlers, h)
		}
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(next)
	}
}

// Matches returns the current classification.
func (c *Classifier) Matches() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matches
}

// OnChange registers fn to run whenever the classification flips.
func (c *Classifier) OnChange(fn func(matches bool)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.handlers, id)
		c.mu.Unlock()
	}
}

// Close releases the window subscription. Matches keeps its last value.
func (c *Classifier) Close() {
	c.mu.Lock()
	release := c.release
	c.release = nil
	c.handlers = make(map[int]func(bool))
	c.mu.Unlock()
	if release != nil {
		release()
	}
}
