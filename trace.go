package tether

// Tracker receives control block lifecycle events. Test harnesses and
// benchmark drivers install one to verify that every block allocated by the
// handle types is retired exactly once. A nil tracker disables reporting.
type Tracker interface {
	BlockAllocated()
	BlockFreed()
	DoubleFree()
}

var tracker Tracker

// SetTracker installs t as the process-wide tracker and returns the
// previous one. Swap trackers only while no handles are in flight; the
// package is single-threaded by contract.
func SetTracker(t Tracker) Tracker {
	prev := tracker
	tracker = t
	return prev
}
