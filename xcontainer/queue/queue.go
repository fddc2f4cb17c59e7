package queue

import "github.com/pkg/errors"

const initQueueLen = 16

var (
	ErrEmpty      = errors.New("queue: empty")
	ErrOutOfRange = errors.New("queue: index out of range")
)

// Queue is a growable double ended ring. It doubles when full and halves when
// a quarter full, never going below its initial size.
type Queue[T any] struct {
	buf     []T
	head    int
	tail    int
	count   int
	initLen int
}

func New[T any]() *Queue[T] {
	return NewWithSize[T](initQueueLen)
}

func NewWithSize[T any](size int) *Queue[T] {
	if size <= 0 {
		size = 1
	}
	return &Queue[T]{
		buf:     make([]T, size),
		initLen: size,
	}
}

func (q *Queue[T]) resize(size int) {
	newBuf := make([]T, size)
	if q.tail > q.head {
		copy(newBuf, q.buf[q.head:q.tail])
	} else if q.count > 0 {
		n := copy(newBuf, q.buf[q.head:])
		copy(newBuf[n:], q.buf[:q.tail])
	}
	q.head = 0
	q.tail = q.count % size
	q.buf = newBuf
}

func (q *Queue[T]) shrink() {
	if len(q.buf) > q.initLen && (q.count<<2) <= len(q.buf) {
		q.resize(max(len(q.buf)>>1, q.initLen))
	}
}

// PushBack never fails; the error is there to satisfy xwedge.Deque.
func (q *Queue[T]) PushBack(ele T) error {
	if q.count == len(q.buf) {
		q.resize(q.count << 1)
	}
	q.buf[q.tail] = ele
	q.tail = (q.tail + 1) % len(q.buf)
	q.count++
	return nil
}

func (q *Queue[T]) PushFront(ele T) error {
	if q.count == len(q.buf) {
		q.resize(q.count << 1)
	}
	q.head = (q.head - 1 + len(q.buf)) % len(q.buf)
	q.buf[q.head] = ele
	q.count++
	return nil
}

func (q *Queue[T]) PopFront() (T, error) {
	var zero T
	if q.count <= 0 {
		return zero, ErrEmpty
	}
	ret := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	q.shrink()
	return ret, nil
}

func (q *Queue[T]) PopBack() (T, error) {
	var zero T
	if q.count <= 0 {
		return zero, ErrEmpty
	}
	q.tail = (q.tail - 1 + len(q.buf)) % len(q.buf)
	ret := q.buf[q.tail]
	q.buf[q.tail] = zero
	q.count--
	q.shrink()
	return ret, nil
}

// Get returns the i-th element from the head; negative i counts from the
// tail, -1 being the last.
func (q *Queue[T]) Get(i int) (T, error) {
	if i < 0 {
		i += q.count
	}
	if i < 0 || i >= q.count {
		var zero T
		return zero, errors.Wrapf(ErrOutOfRange, "index %d, len %d", i, q.count)
	}
	return q.buf[(q.head+i)%len(q.buf)], nil
}

// At is the unchecked form of Get for non-negative i.
func (q *Queue[T]) At(i int) T {
	if i < 0 || i >= q.count {
		panic(errors.Wrapf(ErrOutOfRange, "index %d, len %d", i, q.count))
	}
	return q.buf[(q.head+i)%len(q.buf)]
}

// Front returns the ele at the head of the queue
func (q *Queue[T]) Front() (T, error) {
	if q.count <= 0 {
		var zero T
		return zero, ErrEmpty
	}
	return q.buf[q.head], nil
}

func (q *Queue[T]) Back() (T, error) {
	if q.count <= 0 {
		var zero T
		return zero, ErrEmpty
	}
	return q.buf[(q.tail-1+len(q.buf))%len(q.buf)], nil
}

func (q *Queue[T]) Len() int {
	return q.count
}
