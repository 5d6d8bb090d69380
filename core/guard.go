package core

// Gate states for Guard.Once
const (
	gateSpent = 0
	gateReady = 1
)

// Guard holds a CriticalSection for as long as it lives. Enter acquires the
// section and Leave releases it, so the usual shape is:
//
//	g := core.Enter(&motorLock)
//	defer g.Leave()
//	// ... protected ...
//
// A Guard borrows its section; it never owns it. Guards are plain values and
// are meant to stay on the stack of the function that entered them.
type Guard struct {
	cs   CriticalSection
	gate uint8
	held bool
}

// Enter acquires cs and returns a guard bound to it. It blocks until cs is
// free. cs must not be nil.
func Enter(cs CriticalSection) Guard {
	cs.Acquire()
	return Guard{cs: cs, gate: gateReady, held: true}
}

// Once reports true on its first call and false on every call after that.
// Synchronized uses it to run a body exactly once under the guard.
func (g *Guard) Once() bool {
	if g.gate == gateSpent {
		return false
	}
	g.gate = gateSpent
	return true
}

// Leave releases the section. Only the first call releases; later calls do
// nothing, so an explicit Leave followed by a deferred one is harmless.
func (g *Guard) Leave() {
	if !g.held {
		return
	}
	g.held = false
	g.cs.Release()
}

// Held reports whether the guard still holds its section.
func (g *Guard) Held() bool {
	return g.held
}
