package tether

// SelfObserver lets a payload hand out observers of itself once an owning
// handle has acquired it. Embed it in the payload type:
//
//	type node struct {
//	    tether.SelfObserver
//	    // ...
//	}
//
// After Adopt(n) or Seal, tether.Self(n) yields a registered observer of n
// from nothing but the raw pointer.
type SelfObserver struct {
	blk *control
}

func (s *SelfObserver) bindControl(c *control) { s.blk = c }
func (s *SelfObserver) controlRef() *control   { return s.blk }

type selfBinder interface{ bindControl(c *control) }
type selfRef interface{ controlRef() *control }

// bindSelf wires the acquiring handle's control block into payloads that
// embed SelfObserver. No-op for everything else.
func bindSelf(obj any, c *control) {
	if b, ok := obj.(selfBinder); ok {
		b.bindControl(c)
	}
}

// Self returns an observer of obj through the control block bound at
// acquisition. The observer is empty when obj is nil, does not embed
// SelfObserver, was never acquired by an owning handle, or has already
// been destroyed or released by its owner.
func Self[T any](obj *T) *Observer[T] {
	if obj == nil {
		return &Observer[T]{}
	}
	r, ok := any(obj).(selfRef)
	if !ok {
		return &Observer[T]{}
	}
	blk := r.controlRef()
	if blk == nil || blk.expired() {
		return &Observer[T]{}
	}
	blk.registerObserver()
	return &Observer[T]{val: obj, blk: blk}
}
