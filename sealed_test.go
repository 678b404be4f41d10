package tether

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sealedPayload embeds the counting testObject so sealed teardown is
// visible to the oracle.
type sealedPayload struct {
	testObject
}

func newSealedPayload() sealedPayload {
	instances++
	return sealedPayload{testObject: testObject{state: 1337}}
}

func (p *sealedPayload) Base() *testObject {
	return &p.testObject
}

func TestSealCreateDispose(t *testing.T) {
	tt := track(t)

	s := Seal(newSealedPayload())
	require.NotNil(t, s.Get())
	require.Equal(t, 1337, s.Get().state)
	require.Equal(t, 1, instances)
	require.Equal(t, 1, tt.alloc, "payload and block share one tracked block")

	s.Dispose()
	require.Equal(t, 0, instances)
	require.Equal(t, 1, tt.freed)
}

func TestSealZeroValue(t *testing.T) {
	track(t)

	var s Sealed[sealedPayload]
	require.Nil(t, s.Get())
	s.Dispose()
	s.Reset()
}

func TestSealObserve(t *testing.T) {
	tt := track(t)

	s := Seal(newSealedPayload())
	ob := s.Observe()
	raw := ob.Get()
	require.False(t, ob.Expired())
	require.Same(t, s.Get(), raw)

	s.Dispose()
	require.True(t, ob.Expired())
	assert.Same(t, raw, ob.Get(), "stale cached address stays readable")
	require.Equal(t, 0, tt.freed)

	ob.Dispose()
	require.Equal(t, 1, tt.freed)
}

func TestSealObserveEmpty(t *testing.T) {
	track(t)

	var s Sealed[sealedPayload]
	ob := s.Observe()
	require.True(t, ob.Expired())
	ob.Dispose()
}

func TestSealTake(t *testing.T) {
	track(t)

	src := Seal(newSealedPayload())
	raw := src.Get()

	var s Sealed[sealedPayload]
	s.Take(src)
	require.Same(t, raw, s.Get())
	require.Nil(t, src.Get())
	require.Equal(t, 1, instances)

	s.Take(&s) // self-move is a no-op
	require.Equal(t, 1, instances)

	s.Dispose()
	src.Dispose()
	require.Equal(t, 0, instances)
}

func TestSealTakeOverwrites(t *testing.T) {
	track(t)

	s := Seal(newSealedPayload())
	src := Seal(newSealedPayload())
	raw := src.Get()

	s.Take(src)
	require.Equal(t, 1, instances, "previous payload must be destroyed first")
	require.Same(t, raw, s.Get())

	s.Dispose()
	require.Equal(t, 0, instances)
}

func TestSealSwap(t *testing.T) {
	track(t)

	a := Seal(newSealedPayload())
	b := Seal(newSealedPayload())
	rawA, rawB := a.Get(), b.Get()

	a.Swap(b)
	require.Same(t, rawB, a.Get())
	require.Same(t, rawA, b.Get())
	require.Equal(t, 2, instances)

	a.Dispose()
	b.Dispose()
	require.Equal(t, 0, instances)
}

func TestSealReset(t *testing.T) {
	track(t)

	s := Seal(newSealedPayload())
	ob := s.Observe()

	s.Reset()
	require.Nil(t, s.Get())
	require.Equal(t, 0, instances)
	require.True(t, ob.Expired())

	ob.Dispose()
}

func TestSealDisposeIdempotent(t *testing.T) {
	track(t)

	s := Seal(newSealedPayload())
	s.Dispose()
	s.Dispose()
	require.Equal(t, 0, instances)
}
