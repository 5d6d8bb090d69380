package core

// Synchronized runs body exactly once while holding cs. The section is
// released when body returns or panics; a panic keeps propagating after the
// release.
//
//	core.Synchronized(&pairLock, func() {
//		left.SetDirection(Forward)
//		right.SetDirection(Reverse)
//	})
func Synchronized(cs CriticalSection, body func()) {
	g := Enter(cs)
	defer g.Leave()
	for g.Once() {
		body()
	}
}

// SynchronizedErr is Synchronized for bodies that return an error. The error
// is passed through untouched.
func SynchronizedErr(cs CriticalSection, body func() error) (err error) {
	g := Enter(cs)
	defer g.Leave()
	for g.Once() {
		err = body()
	}
	return err
}

// SynchronizedValue runs body under cs and returns its result.
func SynchronizedValue[T any](cs CriticalSection, body func() T) (v T) {
	g := Enter(cs)
	defer g.Leave()
	for g.Once() {
		v = body()
	}
	return v
}
