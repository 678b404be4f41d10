// Package tether provides a pair of cooperating pointer handles: an
// exclusive owner that controls an object's lifetime, and any number of
// non-owning observers that can ask whether the object still exists
// without ever touching a destroyed one.
//
// Owned is the releasable owner (object and control block allocated
// separately, raw pointer can be detached with Release). Sealed
// co-allocates object and control block in one cell and gives up Release
// in exchange. Observer is the copyable liveness probe for either.
//
// Handles are not safe for concurrent mutation. Exactly one logical owner
// exists per object and ownership transfers with Take, never by copying.
// Because Go copies structs silently, lifetime transitions are explicit
// methods: Clone registers interest, Take moves, Dispose releases.
package tether

// Disposer is implemented by payloads that need teardown when ownership
// ends and no custom Deleter was supplied. It doubles as the hook surface
// for instance-counting verification harnesses.
type Disposer interface {
	Dispose()
}

// Deleter destroys an owned object. It is deliberately type-erased: a
// stateful deleter keeps its identity and state across owner-narrowing
// casts and Swap.
type Deleter interface {
	Delete(obj any)
}

// DeleteFunc adapts a plain function to the Deleter interface.
type DeleteFunc func(obj any)

func (f DeleteFunc) Delete(obj any) { f(obj) }

// destroyObject runs the destruction strategy exactly once per acquired
// object: the custom deleter when present, otherwise the payload's own
// Dispose, otherwise nothing (the GC reclaims the storage).
func destroyObject(obj any, d Deleter) {
	if obj == nil {
		return
	}
	if d != nil {
		d.Delete(obj)
		return
	}
	if dis, ok := obj.(Disposer); ok {
		dis.Dispose()
	}
}

// Owned is the releasable owning handle. It holds the reported pointer, an
// optional deleter, and a reference to a separately allocated control
// block. The zero value is an empty owner.
type Owned[T any] struct {
	val *T      // pointer reported by Get; differs from obj after a narrowing cast
	obj any     // object handed to destruction, nil while empty
	del Deleter // survives Reset; replaced only by ResetWithDeleter or Take
	blk *control
}

// New allocates a copy of value on the heap and adopts it: two
// allocations, object and control block. It is the releasable counterpart
// of Seal for callers that may later need the raw pointer back.
func New[T any](value T) *Owned[T] {
	return Adopt(&value)
}

// Adopt takes ownership of obj and allocates its control block. Adopting
// nil yields an empty owner.
func Adopt[T any](obj *T) *Owned[T] {
	return AdoptWithDeleter[T](obj, nil)
}

// AdoptWithDeleter is Adopt with a custom destruction strategy. The deleter
// is stored and queryable even when obj is nil.
func AdoptWithDeleter[T any](obj *T, d Deleter) *Owned[T] {
	o := &Owned[T]{del: d}
	o.acquire(obj)
	return o
}

func (o *Owned[T]) acquire(obj *T) {
	if obj == nil {
		return
	}
	o.val = obj
	o.obj = obj
	o.blk = newControl(obj)
	bindSelf(o.obj, o.blk)
}

// Get returns the owned pointer, nil when empty.
func (o *Owned[T]) Get() *T { return o.val }

// HasDeleter reports whether a custom deleter is stored, including on an
// empty owner.
func (o *Owned[T]) HasDeleter() bool { return o.del != nil }

// Deleter returns the stored deleter, nil when none was supplied.
func (o *Owned[T]) Deleter() Deleter { return o.del }

// Dispose destroys the owned object and withdraws the owner's interest in
// the control block; bound observers report expired from here on. The
// owner is empty afterwards, with its deleter still in place. Safe to call
// on an empty owner, and idempotent.
func (o *Owned[T]) Dispose() {
	if o.blk != nil {
		destroyObject(o.obj, o.del)
		o.blk.markOwnerGone()
	}
	o.val = nil
	o.obj = nil
	o.blk = nil
}

// Reset destroys the current object, expires its observers, and adopts obj
// under a fresh control block. The stored deleter is kept.
func (o *Owned[T]) Reset(obj *T) {
	o.Dispose()
	o.acquire(obj)
}

// ResetWithDeleter is Reset with a replacement deleter. The outgoing
// object is still destroyed by the outgoing deleter.
func (o *Owned[T]) ResetWithDeleter(obj *T, d Deleter) {
	o.Dispose()
	o.del = d
	o.acquire(obj)
}

// Release detaches and returns the owned pointer without invoking the
// deleter. The control block is marked owner-gone, so observers see
// expiration; the caller owns the returned object by convention from here
// on. Returns nil on an empty owner.
func (o *Owned[T]) Release() *T {
	v := o.val
	if o.blk != nil {
		o.blk.markOwnerGone()
	}
	o.val = nil
	o.obj = nil
	o.blk = nil
	return v
}

// Take moves ownership out of src, destroying the current object first if
// there is one. src is empty afterwards. The move transfers the deleter
// along with the object and control block.
func (o *Owned[T]) Take(src *Owned[T]) {
	if o == src {
		return
	}
	o.Dispose()
	o.val, o.obj, o.del, o.blk = src.val, src.obj, src.del, src.blk
	src.val, src.obj, src.del, src.blk = nil, nil, nil, nil
}

// Swap exchanges objects, deleters, and control block references between
// two owners. No allocation; observers keep tracking the block they were
// bound to, which now belongs to the other owner.
func (o *Owned[T]) Swap(other *Owned[T]) {
	o.val, other.val = other.val, o.val
	o.obj, other.obj = other.obj, o.obj
	o.del, other.del = other.del, o.del
	o.blk, other.blk = other.blk, o.blk
}

// Observe manufactures an observing handle registered with this owner's
// control block. Observing an empty owner yields an empty observer.
func (o *Owned[T]) Observe() *Observer[T] {
	if o.blk == nil {
		return &Observer[T]{}
	}
	o.blk.registerObserver()
	return &Observer[T]{val: o.val, blk: o.blk}
}
