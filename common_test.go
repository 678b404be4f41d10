package tether

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test fixtures mirror the original verification harness: payload types
// carry package-level live-instance counters through their Disposer hook,
// and a tracker counts control block alloc/free/double-free. Tests are
// sequential by the package's single-threaded contract; the counters are
// plain ints on purpose.

var (
	instances        int
	instancesDerived int
)

type testObject struct {
	state int
	dead  bool
}

func newTestObject() *testObject {
	instances++
	return &testObject{state: 1337}
}

func (o *testObject) Dispose() {
	if o.dead {
		panic("testObject disposed twice")
	}
	o.dead = true
	instances--
}

// testObjectDerived embeds testObject and surfaces it through Base, which
// is what the widening conversions key on.
type testObjectDerived struct {
	testObject
	extra int
}

func newTestObjectDerived() *testObjectDerived {
	instances++
	instancesDerived++
	return &testObjectDerived{testObject: testObject{state: 1337}, extra: 7}
}

func (o *testObjectDerived) Dispose() {
	instancesDerived--
	o.testObject.Dispose()
}

func (o *testObjectDerived) Base() *testObject {
	return &o.testObject
}

// testDeleter is a stateful destruction strategy; calls counts invocations
// so tests can assert exactly-once (or never, for Release).
type testDeleter struct {
	state int
	calls int
}

func (d *testDeleter) Delete(obj any) {
	d.calls++
	if obj == nil {
		return
	}
	if dis, ok := obj.(Disposer); ok {
		dis.Dispose()
	}
}

// selfObject embeds SelfObserver for the observer-from-self tests.
type selfObject struct {
	SelfObserver
	state int
}

func (o *selfObject) Dispose() {
	instances--
}

func newSelfObject() *selfObject {
	instances++
	return &selfObject{state: 42}
}

// testTracker counts control block alloc/free so leaks and double frees
// surface: outstanding blocks must return to zero and no block may be
// freed twice.
type testTracker struct {
	alloc  int
	freed  int
	double int
}

func (tt *testTracker) BlockAllocated() { tt.alloc++ }
func (tt *testTracker) BlockFreed()     { tt.freed++ }
func (tt *testTracker) DoubleFree()     { tt.double++ }

func (tt *testTracker) outstanding() int { return tt.alloc - tt.freed }

// track installs a fresh tracker for the test and verifies the zero-leak,
// zero-double-free baseline when the test ends. It also resets and checks
// the payload instance counters.
func track(t *testing.T) *testTracker {
	t.Helper()
	instances = 0
	instancesDerived = 0
	tt := &testTracker{}
	prev := SetTracker(tt)
	t.Cleanup(func() {
		SetTracker(prev)
		assert.Zero(t, tt.outstanding(), "control blocks leaked")
		assert.Zero(t, tt.double, "control block freed twice")
		assert.Zero(t, instances, "payload instances leaked")
		assert.Zero(t, instancesDerived, "derived payload instances leaked")
	})
	return tt
}
