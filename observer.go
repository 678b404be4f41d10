package tether

// Observer is the non-owning handle. It caches the observed pointer and
// shares the owner's control block, so it can answer "does the object
// still exist" long after the object itself is gone.
//
// The zero value is an empty observer. Make copies with Clone, not by
// copying the struct: a plain struct copy shares the block without
// registering interest and breaks the teardown protocol.
//
// States: empty -> valid -> expired. There is no way back from expired.
type Observer[T any] struct {
	val *T
	blk *control
}

// Get returns the cached pointer. The cache survives expiration so
// diagnostics can report the stale address without crashing; dereferencing
// it once Expired reports true is a contract violation by the caller. The
// type promises detection, not protection.
func (ob *Observer[T]) Get() *T { return ob.val }

// Expired reports whether the observed object is no longer guaranteed to
// exist: the handle is empty, the owner is gone, or the cached pointer is
// nil. The last case matters for aliasing handles made by CastObserver,
// which may cache nil on purpose.
func (ob *Observer[T]) Expired() bool {
	return ob.blk == nil || ob.blk.expired() || ob.val == nil
}

// Clone registers one more interest in the same control block and returns
// the new handle. Cloning preserves liveness state, including expiration,
// and never touches owner-side bookkeeping. Cloning an empty observer
// yields an empty observer.
func (ob *Observer[T]) Clone() *Observer[T] {
	if ob.blk != nil {
		ob.blk.registerObserver()
	}
	return &Observer[T]{val: ob.val, blk: ob.blk}
}

// Take moves src into ob without changing the block's interest count. The
// handle's previous interest, if any, is released first; src is empty
// afterwards.
func (ob *Observer[T]) Take(src *Observer[T]) {
	if ob == src {
		return
	}
	ob.Dispose()
	ob.val, ob.blk = src.val, src.blk
	src.val, src.blk = nil, nil
}

// Dispose releases the handle's interest in the control block; when it was
// the last interested party and the owner is already gone, the block is
// retired. The observer is empty afterwards. Safe on an empty observer,
// and idempotent.
func (ob *Observer[T]) Dispose() {
	if ob.blk != nil {
		ob.blk.releaseObserver()
	}
	ob.val = nil
	ob.blk = nil
}
