package cow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-columnar/columnar/cow"
)

func TestBorrowedSharesBackingArray(t *testing.T) {
	data := []byte{1, 2, 3}
	b := cow.Borrowed(data)

	assert.False(t, b.IsOwned())
	assert.Equal(t, data, b.Bytes())

	data[0] = 9
	assert.Equal(t, byte(9), b.Bytes()[0], "borrowed view observes mutation through the shared array")
}

func TestToOwnedCopiesOnlyWhenBorrowed(t *testing.T) {
	data := []byte{1, 2, 3}
	borrowed := cow.Borrowed(data)
	owned := borrowed.ToOwned()

	assert.True(t, owned.IsOwned())
	data[0] = 9
	assert.Equal(t, byte(1), owned.Bytes()[0], "owned copy is independent of the source array")

	alreadyOwned := cow.Owned([]byte{5, 6})
	assert.True(t, alreadyOwned.ToOwned().IsOwned())
}

func TestSlice(t *testing.T) {
	b := cow.Owned([]byte{0, 1, 2, 3, 4})
	assert.Equal(t, []byte{1, 2, 3}, b.Slice(1, 4))
}
