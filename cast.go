package tether

// Conversion layer. Payload types may form a hierarchy (in Go: struct
// embedding, or any other static relation the caller can materialize as a
// pointer). The handle types stay concrete; only payloads participate in
// the hierarchy.
//
// Widening is the proven-safe direction: the payload itself must surface a
// pointer to its supertype through Baser, and the compiler checks the
// relation. Narrowing and aliasing are explicit: the caller supplies an
// already-computed related pointer and the claim that it designates (a
// part of) the same object is trusted, not validated.

// Baser is the capability that proves a payload type contains a supertype
// U it can surface, typically an embedded struct.
type Baser[U any] interface {
	Base() *U
}

// WidenOwned converts an owner of a derived payload into an owner of its
// base. Ownership bookkeeping transfers and src becomes empty; destruction
// still targets the originally adopted object with the original deleter.
func WidenOwned[U, T any, PT interface {
	*T
	Baser[U]
}](src *Owned[T]) *Owned[U] {
	var base *U
	if src.val != nil {
		base = PT(src.val).Base()
	}
	dst := &Owned[U]{val: base, obj: src.obj, del: src.del, blk: src.blk}
	src.val, src.obj, src.del, src.blk = nil, nil, nil, nil
	return dst
}

// CastOwned transfers ownership from src to a new owner that reports ptr.
// The caller asserts ptr is a legitimate view of the owned object, e.g. a
// checked downcast result; this lets an owner be narrowed without
// re-validating the cast on every access. The original object and deleter
// travel along for destruction.
func CastOwned[U, T any](src *Owned[T], ptr *U) *Owned[U] {
	dst := &Owned[U]{val: ptr, obj: src.obj, del: src.del, blk: src.blk}
	src.val, src.obj, src.del, src.blk = nil, nil, nil, nil
	return dst
}

// WidenSealed is WidenOwned for sealed owners.
func WidenSealed[U, T any, PT interface {
	*T
	Baser[U]
}](src *Sealed[T]) *Sealed[U] {
	var base *U
	if src.val != nil {
		base = PT(src.val).Base()
	}
	dst := &Sealed[U]{val: base, obj: src.obj, blk: src.blk}
	src.val, src.obj, src.blk = nil, nil, nil
	return dst
}

// CastSealed is CastOwned for sealed owners. The co-allocated cell keeps
// its identity; only the reported pointer changes.
func CastSealed[U, T any](src *Sealed[T], ptr *U) *Sealed[U] {
	dst := &Sealed[U]{val: ptr, obj: src.obj, blk: src.blk}
	src.val, src.obj, src.blk = nil, nil, nil
	return dst
}

// WidenObserver converts an observer of a derived payload into an observer
// of its base. Unlike the owner conversions this is a copy: the source
// stays valid and one more interest is registered with the shared block.
func WidenObserver[U, T any, PT interface {
	*T
	Baser[U]
}](src *Observer[T]) *Observer[U] {
	var base *U
	if src.val != nil {
		base = PT(src.val).Base()
	}
	if src.blk != nil {
		src.blk.registerObserver()
	}
	return &Observer[U]{val: base, blk: src.blk}
}

// CastObserver binds a new observer to src's control block while caching
// ptr as its reported pointer. ptr is typically a downcast result or a
// pointer to a field of the observed object; either way the new handle
// expires exactly when the owning object is destroyed, without re-deriving
// ptr on each access.
//
// A nil ptr yields a handle that reports Expired even while src stays
// valid: for aliasing handles, expiration means "holds a non-nil,
// owner-backed pointer", not owner liveness alone. This is a deliberate,
// tested contract.
func CastObserver[U, T any](src *Observer[T], ptr *U) *Observer[U] {
	if src.blk != nil {
		src.blk.registerObserver()
	}
	return &Observer[U]{val: ptr, blk: src.blk}
}
