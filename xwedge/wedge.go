// Package xwedge maintains monotonic wedges: double ended sequences kept in
// sorted order so that the front is always the extreme of every sample still
// held. Combined with front eviction this yields the running maximum or
// minimum over a sliding window in amortized O(1) per sample.
//
// The package holds no state. Callers own the sequence, feed samples in
// increasing position order and evict stale samples from the front.
package xwedge

import (
	"sort"

	"github.com/pkg/errors"
)

// Less is a strict weak ordering.
type Less[T any] func(a, b T) bool

// Deque is the part of a double ended sequence the update rule touches.
type Deque[T any] interface {
	Len() int
	Back() (T, error)
	PopBack() (T, error)
	PushBack(v T) error
}

// FrontPopper is the part of a sequence window eviction touches.
type FrontPopper[T any] interface {
	Len() int
	Front() (T, error)
	PopFront() (T, error)
}

// Indexed gives random access from the front. At may panic out of range.
type Indexed[T any] interface {
	Len() int
	At(i int) T
}

// Update pops back elements for which dominated(back, sample) holds and then
// pushes sample. It never touches the front.
func Update[T any](seq Deque[T], sample T, dominated func(back, sample T) bool) error {
	for seq.Len() > 0 {
		back, err := seq.Back()
		if err != nil {
			return errors.Wrap(err, "wedge back")
		}
		if !dominated(back, sample) {
			break
		}
		if _, err := seq.PopBack(); err != nil {
			return errors.Wrap(err, "wedge pop back")
		}
	}
	if err := seq.PushBack(sample); err != nil {
		return errors.Wrap(err, "wedge push back")
	}
	return nil
}

// MaxUpdate keeps seq non-increasing front to back. Older samples equal to
// sample are dropped since the newer one outlives them.
func MaxUpdate[T any](seq Deque[T], sample T, less Less[T]) error {
	return Update(seq, sample, func(back, s T) bool { return !less(s, back) })
}

// MinUpdate keeps seq non-decreasing front to back.
func MinUpdate[T any](seq Deque[T], sample T, less Less[T]) error {
	return Update(seq, sample, func(back, s T) bool { return !less(back, s) })
}

// Search returns the first index i in [0, seq.Len()) where before(seq[i], query)
// is false, or seq.Len(). seq must be partitioned by before.
func Search[T any](seq Indexed[T], query T, before func(elem, query T) bool) int {
	return sort.Search(seq.Len(), func(i int) bool { return !before(seq.At(i), query) })
}

// MaxSearch returns the index query would occupy after MaxUpdate: the first
// element not greater than query. Zero means query is a new maximum.
func MaxSearch[T any](seq Indexed[T], query T, less Less[T]) int {
	return Search(seq, query, func(e, q T) bool { return less(q, e) })
}

// MinSearch returns the first element not less than query. Zero means query
// is a new minimum.
func MinSearch[T any](seq Indexed[T], query T, less Less[T]) int {
	return Search(seq, query, func(e, q T) bool { return less(e, q) })
}

// Evict pops the front while stale reports true and returns how many samples
// were removed. It stops at an empty sequence.
func Evict[T any](seq FrontPopper[T], stale func(T) bool) (int, error) {
	n := 0
	for seq.Len() > 0 {
		front, err := seq.Front()
		if err != nil {
			return n, errors.Wrap(err, "wedge front")
		}
		if !stale(front) {
			break
		}
		if _, err := seq.PopFront(); err != nil {
			return n, errors.Wrap(err, "wedge pop front")
		}
		n++
	}
	return n, nil
}
