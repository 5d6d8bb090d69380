package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestSynchronizedRunsBodyOnce(t *testing.T) {
	cs := &countingSection{name: "a"}
	runs := 0
	var heldInside bool

	Synchronized(cs, func() {
		runs++
		heldInside = cs.held
	})

	if runs != 1 {
		t.Errorf("Expected body to run once, ran %d times", runs)
	}
	if !heldInside {
		t.Error("Expected section to be held while the body runs")
	}
	if cs.held || cs.releases != 1 {
		t.Errorf("Expected section released exactly once, releases=%d held=%v", cs.releases, cs.held)
	}
}

func TestSynchronizedPanicReleases(t *testing.T) {
	var s Section

	defer func() {
		r := recover()
		if r != "short circuit" {
			t.Errorf("Expected original panic value, got %v", r)
		}
		if s.Locked() {
			t.Error("Section still locked after panic left Synchronized")
		}
	}()

	Synchronized(&s, func() {
		panic("short circuit")
	})
}

func TestSynchronizedErrPassesErrorThrough(t *testing.T) {
	cs := &countingSection{name: "a"}
	errStall := errors.New("motor stalled")

	err := SynchronizedErr(cs, func() error {
		return errStall
	})
	if !errors.Is(err, errStall) {
		t.Errorf("Expected %v, got %v", errStall, err)
	}
	if cs.held {
		t.Error("Section still held after body returned an error")
	}

	if err := SynchronizedErr(cs, func() error { return nil }); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if cs.acquires != 2 || cs.releases != 2 {
		t.Errorf("Expected 2 acquires and releases, got %d and %d", cs.acquires, cs.releases)
	}
}

func TestSynchronizedValue(t *testing.T) {
	var s Section
	level := 7

	got := SynchronizedValue(&s, func() int {
		return level * 2
	})
	if got != 14 {
		t.Errorf("Expected 14, got %d", got)
	}
	if s.Locked() {
		t.Error("Section still locked after SynchronizedValue")
	}
}

func TestNestedSectionsReleaseInReverseOrder(t *testing.T) {
	var trace []string
	a := &countingSection{name: "a", trace: &trace}
	b := &countingSection{name: "b", trace: &trace}

	Synchronized(a, func() {
		Synchronized(b, func() {
			if !a.held || !b.held {
				t.Error("Expected both sections held in the inner block")
			}
		})
		if b.held {
			t.Error("Expected inner section free right after its block")
		}
		if !a.held {
			t.Error("Expected outer section still held")
		}
	})

	want := []string{"acquire a", "acquire b", "release b", "release a"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("Expected %v, got %v", want, trace)
	}
}

func TestNestedSectionsOtherOrder(t *testing.T) {
	var trace []string
	a := &countingSection{name: "a", trace: &trace}
	b := &countingSection{name: "b", trace: &trace}

	Synchronized(b, func() {
		Synchronized(a, func() {})
		if a.held {
			t.Error("Expected section a free right after its block")
		}
		if !b.held {
			t.Error("Expected outer section b still held")
		}
	})

	want := []string{"acquire b", "acquire a", "release a", "release b"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("Expected %v, got %v", want, trace)
	}
}

func TestPanicInNestedBlockReleasesBoth(t *testing.T) {
	var a, b Section

	func() {
		defer func() { recover() }()
		Synchronized(&a, func() {
			Synchronized(&b, func() {
				panic("bumper hit")
			})
		})
	}()

	if a.Locked() || b.Locked() {
		t.Errorf("Expected both sections free, a=%v b=%v", a.Locked(), b.Locked())
	}
}
