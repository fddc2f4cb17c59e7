package ringbuffer

import (
	"iter"
	"math/bits"

	"github.com/pkg/errors"
)

var (
	ErrEmpty            = errors.New("ringbuffer: empty")
	ErrCapacityExceeded = errors.New("ringbuffer: capacity exceeded")
	ErrOutOfRange       = errors.New("ringbuffer: index out of range")
)

// MaxCapacity is the largest capacity a ring can have.
const MaxCapacity = 1 << (bits.UintSize - 2)

// Policy decides what a push does when the buffer is full.
type Policy int

const (
	Reject    Policy = iota // fail with ErrCapacityExceeded
	Overwrite               // drop the element at the opposite end
	Grow                    // double the capacity
)

func (p Policy) String() string {
	switch p {
	case Reject:
		return "reject"
	case Overwrite:
		return "overwrite"
	case Grow:
		return "grow"
	}
	return "unknown"
}

type Option func(*options)

type options struct {
	policy Policy
}

func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// Ring is a fixed size circular deque. Capacity is always a power of two so
// logical index i lives at buf[(head+i)&mask].
//
// A Ring is not safe for concurrent use.
type Ring[T any] struct {
	buf    []T
	mask   int
	head   int
	count  int
	policy Policy
}

// New returns a ring holding at least minCapacity elements. Like make, it
// panics when minCapacity exceeds MaxCapacity.
func New[T any](minCapacity int, opts ...Option) *Ring[T] {
	o := options{policy: Reject}
	for _, opt := range opts {
		opt(&o)
	}
	capacity, err := nextPowerOfTwo(minCapacity)
	if err != nil {
		panic(err)
	}
	return &Ring[T]{
		buf:    make([]T, capacity),
		mask:   capacity - 1,
		policy: o.policy,
	}
}

func nextPowerOfTwo(n int) (int, error) {
	if n > MaxCapacity {
		return 0, errors.Wrapf(ErrCapacityExceeded, "capacity %d above %d", n, MaxCapacity)
	}
	c := 1
	for c < n {
		c <<= 1
	}
	return c, nil
}

func (r *Ring[T]) slot(i int) int {
	return (r.head + i) & r.mask
}

func (r *Ring[T]) Len() int       { return r.count }
func (r *Ring[T]) Cap() int       { return len(r.buf) }
func (r *Ring[T]) Empty() bool    { return r.count == 0 }
func (r *Ring[T]) Full() bool     { return r.count == len(r.buf) }
func (r *Ring[T]) Policy() Policy { return r.policy }

// PushBack appends v at the logical end. A Grow push invalidates indexes
// taken before the call.
func (r *Ring[T]) PushBack(v T) error {
	if r.Full() {
		switch r.policy {
		case Overwrite:
			r.buf[r.head] = v
			r.head = r.slot(1)
			return nil
		case Grow:
			if err := r.Reserve(len(r.buf) + 1); err != nil {
				return err
			}
		default:
			return ErrCapacityExceeded
		}
	}
	r.buf[r.slot(r.count)] = v
	r.count++
	return nil
}

// PushFront prepends v. Under Overwrite a full ring drops its back element.
func (r *Ring[T]) PushFront(v T) error {
	if r.Full() {
		switch r.policy {
		case Overwrite:
			r.head = r.slot(-1)
			r.buf[r.head] = v
			return nil
		case Grow:
			if err := r.Reserve(len(r.buf) + 1); err != nil {
				return err
			}
		default:
			return ErrCapacityExceeded
		}
	}
	r.head = r.slot(-1)
	r.buf[r.head] = v
	r.count++
	return nil
}

func (r *Ring[T]) PopFront() (T, error) {
	var zero T
	if r.count == 0 {
		return zero, ErrEmpty
	}
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = r.slot(1)
	r.count--
	return v, nil
}

func (r *Ring[T]) PopBack() (T, error) {
	var zero T
	if r.count == 0 {
		return zero, ErrEmpty
	}
	idx := r.slot(r.count - 1)
	v := r.buf[idx]
	r.buf[idx] = zero
	r.count--
	return v, nil
}

func (r *Ring[T]) Front() (T, error) {
	if r.count == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return r.buf[r.head], nil
}

func (r *Ring[T]) Back() (T, error) {
	if r.count == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return r.buf[r.slot(r.count-1)], nil
}

// At returns the i-th element from the front. It panics when i is out of
// range, like slice indexing.
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.count {
		panic(errors.Wrapf(ErrOutOfRange, "index %d, len %d", i, r.count))
	}
	return r.buf[r.slot(i)]
}

// Get is the checked form of At.
func (r *Ring[T]) Get(i int) (T, error) {
	if i < 0 || i >= r.count {
		var zero T
		return zero, errors.Wrapf(ErrOutOfRange, "index %d, len %d", i, r.count)
	}
	return r.buf[r.slot(i)], nil
}

func (r *Ring[T]) Set(i int, v T) error {
	if i < 0 || i >= r.count {
		return errors.Wrapf(ErrOutOfRange, "index %d, len %d", i, r.count)
	}
	r.buf[r.slot(i)] = v
	return nil
}

func (r *Ring[T]) Clear() {
	clear(r.buf)
	r.head = 0
	r.count = 0
}

// Reserve raises the capacity to at least minCapacity, keeping logical order.
// It never shrinks.
func (r *Ring[T]) Reserve(minCapacity int) error {
	if minCapacity <= len(r.buf) {
		return nil
	}
	capacity, err := nextPowerOfTwo(minCapacity)
	if err != nil {
		return err
	}
	buf := make([]T, capacity)
	n := copy(buf, r.buf[r.head:min(r.head+r.count, len(r.buf))])
	if n < r.count {
		copy(buf[n:], r.buf[:r.count-n])
	}
	r.buf = buf
	r.mask = capacity - 1
	r.head = 0
	return nil
}

// Erase removes the elements in [first, last) and closes the gap.
func (r *Ring[T]) Erase(first, last int) error {
	if first < 0 || last > r.count || first > last {
		return errors.Wrapf(ErrOutOfRange, "erase [%d, %d), len %d", first, last, r.count)
	}
	gap := last - first
	if gap == 0 {
		return nil
	}
	for i := last; i < r.count; i++ {
		r.buf[r.slot(i-gap)] = r.buf[r.slot(i)]
	}
	var zero T
	for i := r.count - gap; i < r.count; i++ {
		r.buf[r.slot(i)] = zero
	}
	r.count -= gap
	return nil
}

// All iterates front to back. Mutating the ring during iteration is not
// supported.
func (r *Ring[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < r.count; i++ {
			if !yield(i, r.buf[r.slot(i)]) {
				return
			}
		}
	}
}

// Backward iterates back to front.
func (r *Ring[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := r.count - 1; i >= 0; i-- {
			if !yield(i, r.buf[r.slot(i)]) {
				return
			}
		}
	}
}

func (r *Ring[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < r.count; i++ {
			if !yield(r.buf[r.slot(i)]) {
				return
			}
		}
	}
}

// Slice copies the contents in logical order.
func (r *Ring[T]) Slice() []T {
	out := make([]T, r.count)
	for i := range out {
		out[i] = r.buf[r.slot(i)]
	}
	return out
}
