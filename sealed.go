package tether

// sealedCell packs payload storage and control block into one allocation.
type sealedCell[T any] struct {
	obj T
	blk control
}

// Sealed is the non-releasable owning handle. Seal constructs the payload
// and its control block in a single allocation, halving the allocation
// count of the releasable variant for callers that never need the raw
// pointer back.
//
// Release is deliberately absent: the payload shares its allocation with
// the control block, so detaching it for independent lifetime management
// would hand out memory that cannot be freed on its own. Custom deleters
// are not supported either; payloads implementing Disposer still get their
// teardown call.
//
// The zero value is an empty owner.
type Sealed[T any] struct {
	val *T  // pointer reported by Get; differs from obj after a narrowing cast
	obj any // object handed to destruction, nil while empty
	blk *control
}

// Seal constructs value in place inside a cell shared with the control
// block and returns its owner. One allocation total.
func Seal[T any](value T) *Sealed[T] {
	cell := &sealedCell[T]{obj: value}
	cell.blk.init(&cell.obj)
	bindSelf(&cell.obj, &cell.blk)
	return &Sealed[T]{val: &cell.obj, obj: &cell.obj, blk: &cell.blk}
}

// Get returns the sealed pointer, nil when empty.
func (s *Sealed[T]) Get() *T { return s.val }

// Dispose destroys the sealed object and withdraws the owner's interest in
// the control block; bound observers report expired from here on. Safe on
// an empty owner, and idempotent.
func (s *Sealed[T]) Dispose() {
	if s.blk != nil {
		destroyObject(s.obj, nil)
		s.blk.markOwnerGone()
	}
	s.val = nil
	s.obj = nil
	s.blk = nil
}

// Reset destroys the sealed object and leaves the owner empty. A cell
// cannot be re-armed in place; to hold a new value, Seal it and Take.
func (s *Sealed[T]) Reset() {
	s.Dispose()
}

// Take moves ownership out of src, destroying the current object first if
// there is one. src is empty afterwards.
func (s *Sealed[T]) Take(src *Sealed[T]) {
	if s == src {
		return
	}
	s.Dispose()
	s.val, s.obj, s.blk = src.val, src.obj, src.blk
	src.val, src.obj, src.blk = nil, nil, nil
}

// Swap exchanges objects and control block references between two sealed
// owners. No allocation, no change to observer interests.
func (s *Sealed[T]) Swap(other *Sealed[T]) {
	s.val, other.val = other.val, s.val
	s.obj, other.obj = other.obj, s.obj
	s.blk, other.blk = other.blk, s.blk
}

// Observe manufactures an observing handle registered with this owner's
// control block. Observing an empty owner yields an empty observer.
func (s *Sealed[T]) Observe() *Observer[T] {
	if s.blk == nil {
		return &Observer[T]{}
	}
	s.blk.registerObserver()
	return &Observer[T]{val: s.val, blk: s.blk}
}
