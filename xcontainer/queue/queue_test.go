package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewWithSize[int](2)
	for i := 0; i < 100; i++ {
		require.NoError(t, q.PushBack(i))
	}
	assert.Equal(t, 100, q.Len())
	for i := 0; i < 100; i++ {
		v, err := q.PopFront()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	_, err := q.PopFront()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, 2, len(q.buf))
}

func TestQueueBothEnds(t *testing.T) {
	q := New[int]()
	require.NoError(t, q.PushBack(2))
	require.NoError(t, q.PushFront(1))
	require.NoError(t, q.PushBack(3))
	require.NoError(t, q.PushFront(0))

	front, err := q.Front()
	require.NoError(t, err)
	assert.Equal(t, 0, front)
	back, err := q.Back()
	require.NoError(t, err)
	assert.Equal(t, 3, back)

	last, err := q.Get(-1)
	require.NoError(t, err)
	assert.Equal(t, 3, last)
	assert.Equal(t, 2, q.At(2))
	_, err = q.Get(4)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = q.Get(-5)
	assert.ErrorIs(t, err, ErrOutOfRange)

	v, err := q.PopBack()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	v, err = q.PopFront()
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.Equal(t, 2, q.Len())
}

func TestQueueGrowWrapped(t *testing.T) {
	q := NewWithSize[int](4)
	for i := 0; i < 3; i++ {
		require.NoError(t, q.PushBack(i))
	}
	_, _ = q.PopFront()
	_, _ = q.PopFront()
	for i := 3; i < 9; i++ {
		require.NoError(t, q.PushBack(i))
	}
	for i := 2; i < 9; i++ {
		v, err := q.PopFront()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

func TestQueueEmpty(t *testing.T) {
	q := New[string]()
	_, err := q.Front()
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = q.Back()
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = q.PopBack()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Panics(t, func() { q.At(0) })
}
