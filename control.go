package tether

// control is the shared bookkeeping record that decouples "does the object
// exist" from "does the owner still exist". At most one owner and any
// number of observers hold an interest in it; the block outlives the
// object until the last interested party lets go.
//
// Invariant: obj != nil implies ownerHere. Once ownerHere drops, obj is
// nil forever.
type control struct {
	obj       any // tracked object, nil once the owner is gone
	observers int
	ownerHere bool
	freed     bool
}

func newControl(obj any) *control {
	c := &control{}
	c.init(obj)
	return c
}

// init arms the block for a freshly acquired object. Split from newControl
// so sealed cells can arm their embedded block without a second allocation.
func (c *control) init(obj any) {
	c.obj = obj
	c.ownerHere = true
	if tracker != nil {
		tracker.BlockAllocated()
	}
}

func (c *control) registerObserver() {
	c.observers++
}

func (c *control) releaseObserver() {
	c.observers--
	if c.observers == 0 && !c.ownerHere {
		c.free()
	}
}

func (c *control) markOwnerGone() {
	c.ownerHere = false
	c.obj = nil
	if c.observers == 0 {
		c.free()
	}
}

func (c *control) expired() bool {
	return !c.ownerHere
}

// free retires the block. Storage is reclaimed by the GC; the tracker hook
// is what makes "freed exactly once" observable to the oracle. Freeing
// twice would be a protocol bug, so it is reported rather than masked.
func (c *control) free() {
	if c.freed {
		if tracker != nil {
			tracker.DoubleFree()
		}
		return
	}
	c.freed = true
	if tracker != nil {
		tracker.BlockFreed()
	}
}
