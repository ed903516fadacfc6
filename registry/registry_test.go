package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-columnar/columnar/coder"
	"github.com/go-columnar/columnar/registry"
)

func TestGetOrCreateReturnsSameInstance(t *testing.T) {
	r := registry.New()

	build := func() *coder.IntEncoder[uint32] { return coder.NewIntEncoder[uint32]() }

	first := registry.GetOrCreate(r, build)
	first.Write(42)

	second := registry.GetOrCreate(r, build)
	assert.Same(t, first, second)
	assert.Equal(t, 1, second.Len(), "second call returns the same accumulated encoder, not a fresh one")
}

func TestDifferentTypesGetDifferentState(t *testing.T) {
	r := registry.New()

	intEnc := registry.GetOrCreate(r, func() *coder.IntEncoder[uint32] { return coder.NewIntEncoder[uint32]() })
	strEnc := registry.GetOrCreate(r, func() *coder.StringEncoder { return coder.NewStringEncoder() })

	assert.Equal(t, 2, r.Len())
	assert.NotSame(t, any(intEnc), any(strEnc))
}

func TestDelete(t *testing.T) {
	r := registry.New()
	registry.GetOrCreate(r, func() *coder.IntEncoder[uint32] { return coder.NewIntEncoder[uint32]() })
	assert.Equal(t, 1, r.Len())

	registry.Delete[*coder.IntEncoder[uint32]](r)
	assert.Equal(t, 0, r.Len())
}
