package ui

// Dropdown is a single menu that closes on an outside click or after an item is
// chosen.
type Dropdown struct {
	open bool
}

func (d *Dropdown) IsOpen() bool { return d.open }

func (d *Dropdown) Toggle() { d.open = !d.open }

func (d *Dropdown) Close() { d.open = false }

// Click reports a pointer press. A press outside the menu closes it.
func (d *Dropdown) Click(inside bool) {
	if d.open && !inside {
		d.open = false
	}
}

// Select closes the menu after an item is chosen. On mobile the caller must also
// close the slide-out sidebar; the return value says so.
func (d *Dropdown) Select(mobile bool) (closeSidebar bool) {
	d.open = false
	return mobile
}
