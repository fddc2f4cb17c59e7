// Package xwindow tracks the rolling maximum and minimum of a position
// tagged stream using two monotonic wedges hosted in ring buffers.
package xwindow

import (
	"github.com/pkg/errors"

	"xmono/xcontainer/ringbuffer"
	"xmono/xlog"
	"xmono/xwedge"
)

var (
	ErrEmpty      = errors.New("xwindow: no samples")
	ErrOutOfOrder = errors.New("xwindow: sample position not increasing")
)

type Sample[T any] struct {
	Pos   int64
	Value T
}

// Tracker is not safe for concurrent use.
type Tracker[T any] struct {
	window  int64
	byValue xwedge.Less[Sample[T]]
	maxW    *ringbuffer.Ring[Sample[T]]
	minW    *ringbuffer.Ring[Sample[T]]
	last    int64
	started bool
}

// New validates cfg and allocates both wedges. A wedge holds at most one
// sample per position in the window, which may be far more than the samples
// actually pushed, so the rings start small and grow on demand.
func New[T any](cfg Config, less xwedge.Less[T]) (*Tracker[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.initialCapacity()
	t := &Tracker[T]{
		window: cfg.Window,
		maxW:   ringbuffer.New[Sample[T]](n, ringbuffer.WithPolicy(ringbuffer.Grow)),
		minW:   ringbuffer.New[Sample[T]](n, ringbuffer.WithPolicy(ringbuffer.Grow)),
	}
	t.byValue = func(a, b Sample[T]) bool { return less(a.Value, b.Value) }
	return t, nil
}

// Push adds value at pos. Positions must strictly increase.
func (t *Tracker[T]) Push(pos int64, value T) error {
	if t.started && pos <= t.last {
		xlog.Warnw("dropping out of order sample", "pos", pos, "last", t.last)
		return errors.Wrapf(ErrOutOfOrder, "pos %d after %d", pos, t.last)
	}
	// s.Pos < pos, so the true distance fits in a uint64 even when the
	// int64 subtraction wraps.
	stale := func(s Sample[T]) bool { return uint64(pos-s.Pos) >= uint64(t.window) }
	if _, err := xwedge.Evict[Sample[T]](t.maxW, stale); err != nil {
		return err
	}
	if _, err := xwedge.Evict[Sample[T]](t.minW, stale); err != nil {
		return err
	}
	s := Sample[T]{Pos: pos, Value: value}
	if err := xwedge.MaxUpdate[Sample[T]](t.maxW, s, t.byValue); err != nil {
		return errors.Wrap(err, "max wedge")
	}
	if err := xwedge.MinUpdate[Sample[T]](t.minW, s, t.byValue); err != nil {
		return errors.Wrap(err, "min wedge")
	}
	t.last = pos
	t.started = true
	return nil
}

// Max returns the largest sample in the window ending at the last push.
func (t *Tracker[T]) Max() (Sample[T], error) {
	s, err := t.maxW.Front()
	if err != nil {
		return s, ErrEmpty
	}
	return s, nil
}

func (t *Tracker[T]) Min() (Sample[T], error) {
	s, err := t.minW.Front()
	if err != nil {
		return s, ErrEmpty
	}
	return s, nil
}

// IsNewMax reports whether value would become the window maximum if pushed
// now, ignoring eviction.
func (t *Tracker[T]) IsNewMax(value T) bool {
	return xwedge.MaxSearch[Sample[T]](t.maxW, Sample[T]{Value: value}, t.byValue) == 0
}

func (t *Tracker[T]) IsNewMin(value T) bool {
	return xwedge.MinSearch[Sample[T]](t.minW, Sample[T]{Value: value}, t.byValue) == 0
}

// Len is the number of samples held by the max and min wedges.
func (t *Tracker[T]) Len() (maxLen, minLen int) {
	return t.maxW.Len(), t.minW.Len()
}

func (t *Tracker[T]) Window() int64 { return t.window }

// Last returns the position of the latest accepted sample.
func (t *Tracker[T]) Last() (int64, bool) { return t.last, t.started }

func (t *Tracker[T]) Reset() {
	t.maxW.Clear()
	t.minW.Clear()
	t.last = 0
	t.started = false
}
