package systems

import (
	"slices"
	"testing"
)

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.At(5, func(int64) { got = append(got, "b") })
	s.At(3, func(int64) { got = append(got, "a") })
	s.At(5, func(int64) { got = append(got, "c") })
	s.At(9, func(int64) { got = append(got, "d") })

	if n := s.RunDue(2); n != 0 {
		t.Fatalf("RunDue(2) ran %d entries", n)
	}
	if n := s.RunDue(5); n != 3 {
		t.Fatalf("RunDue(5) ran %d entries, want 3", n)
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if next, ok := s.Next(); !ok || next != 9 {
		t.Errorf("Next() = %d, %v, want 9, true", next, ok)
	}
}

func TestSchedulerRescheduleFromCallback(t *testing.T) {
	s := NewScheduler()
	runs := 0
	s.At(1, func(now int64) {
		runs++
		s.At(now, func(int64) { runs++ })
		s.At(now+1, func(int64) { runs++ })
	})

	s.RunDue(1)
	if runs != 2 {
		t.Errorf("runs after tick 1 = %d, want 2", runs)
	}
	s.RunDue(2)
	if runs != 3 || s.Len() != 0 {
		t.Errorf("runs = %d, pending = %d, want 3 and 0", runs, s.Len())
	}
}
