package requests

import (
	"errors"
	"slices"
	"testing"

	"monovator/src/types"
)

func TestInsertKeepsIterationOrder(t *testing.T) {
	tests := []struct {
		name   string
		order  types.Direction
		insert []int
		want   []int
	}{
		{"up ascending", types.Up, []int{7, 4, 9, 5}, []int{4, 5, 7, 9}},
		{"down descending", types.Down, []int{2, 8, 1, 5}, []int{8, 5, 2, 1}},
		{"duplicates ignored", types.Up, []int{3, 3, 6, 3}, []int{3, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.order)
			for _, f := range tt.insert {
				s.Insert(f)
			}
			if got := s.Floors(); !slices.Equal(got, tt.want) {
				t.Errorf("Floors() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsertReportsNewFloor(t *testing.T) {
	s := New(types.Up)
	if !s.Insert(5) {
		t.Fatal("first insert of 5 reported duplicate")
	}
	if s.Insert(5) {
		t.Fatal("second insert of 5 reported new")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestPopNearest(t *testing.T) {
	up := New(types.Up)
	down := New(types.Down)
	for _, f := range []int{6, 2, 9} {
		up.Insert(f)
		down.Insert(f)
	}

	var gotUp, gotDown []int
	for !up.IsEmpty() {
		f, err := up.PopNearest()
		if err != nil {
			t.Fatal(err)
		}
		gotUp = append(gotUp, f)
	}
	for !down.IsEmpty() {
		f, err := down.PopNearest()
		if err != nil {
			t.Fatal(err)
		}
		gotDown = append(gotDown, f)
	}

	if !slices.Equal(gotUp, []int{2, 6, 9}) {
		t.Errorf("up pops = %v", gotUp)
	}
	if !slices.Equal(gotDown, []int{9, 6, 2}) {
		t.Errorf("down pops = %v", gotDown)
	}
}

func TestPopNearestEmpty(t *testing.T) {
	s := New(types.Down)
	if _, err := s.PopNearest(); !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("PopNearest() on empty set: err = %v, want ErrEmptyQueue", err)
	}
}

func TestContainsAndFloorsCopy(t *testing.T) {
	s := New(types.Down)
	s.Insert(3)
	s.Insert(8)

	if !s.Contains(8) || s.Contains(4) {
		t.Fatalf("Contains mismatch for %v", s.Floors())
	}

	floors := s.Floors()
	floors[0] = 100
	if s.Contains(100) {
		t.Fatal("Floors() exposed internal storage")
	}
	if s.Order() != types.Down {
		t.Fatalf("Order() = %v, want Down", s.Order())
	}
}
