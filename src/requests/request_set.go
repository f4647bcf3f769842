// Package requests holds the pending target floors of one sweep direction.
package requests

import (
	"cmp"
	"errors"
	"slices"

	"monovator/src/types"
)

var ErrEmptyQueue = errors.New("request set is empty")

// Set is an ordered set of floors. An up set iterates ascending, a down set descending,
// so the front is always the nearest floor in the sweep direction.
// Set is not safe for concurrent use.
type Set struct {
	order  types.Direction
	floors []int
}

func New(order types.Direction) *Set {
	return &Set{order: order}
}

func (s *Set) Order() types.Direction {
	return s.order
}

func (s *Set) compare(a, b int) int {
	if s.order == types.Down {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}

// Insert adds floor and reports whether it was not already present.
func (s *Set) Insert(floor int) bool {
	i, found := slices.BinarySearchFunc(s.floors, floor, s.compare)
	if found {
		return false
	}
	s.floors = slices.Insert(s.floors, i, floor)
	return true
}

// PopNearest removes and returns the front floor: the minimum of an up set, the maximum of a down set.
func (s *Set) PopNearest() (int, error) {
	if len(s.floors) == 0 {
		return 0, ErrEmptyQueue
	}
	floor := s.floors[0]
	s.floors = slices.Delete(s.floors, 0, 1)
	return floor, nil
}

func (s *Set) Contains(floor int) bool {
	_, found := slices.BinarySearchFunc(s.floors, floor, s.compare)
	return found
}

func (s *Set) IsEmpty() bool { return len(s.floors) == 0 }

func (s *Set) Len() int { return len(s.floors) }

// Floors returns a copy of the floors in iteration order.
func (s *Set) Floors() []int {
	return slices.Clone(s.floors)
}
