package ring

import (
	"errors"
	"reflect"
	"testing"
)

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -50} {
		r, err := New[string](capacity)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("New(%d) error = %v, want ErrInvalidArgument", capacity, err)
		}
		if r != nil {
			t.Errorf("New(%d) returned a ring", capacity)
		}
	}
}

func TestRing_Empty(t *testing.T) {
	r, err := New[int](DefaultCapacity)
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsEmpty() || r.IsFull() || r.Size() != 0 {
		t.Errorf("new ring: empty=%t full=%t size=%d", r.IsEmpty(), r.IsFull(), r.Size())
	}
	if r.Capacity() != DefaultCapacity || r.CapacityLeft() != DefaultCapacity {
		t.Errorf("Capacity() = %d, CapacityLeft() = %d", r.Capacity(), r.CapacityLeft())
	}
	if _, err := r.Get(0); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("Get(0) on empty ring error = %v", err)
	}
	if got := r.Slice(); len(got) != 0 {
		t.Errorf("Slice() = %v, want empty", got)
	}
}

func TestRing_PartiallyFilled(t *testing.T) {
	r, _ := New[string](3)
	r.Add("A")
	r.Add("B")

	if r.Size() != 2 || r.IsEmpty() || r.IsFull() {
		t.Errorf("size=%d empty=%t full=%t, want 2 false false", r.Size(), r.IsEmpty(), r.IsFull())
	}
	if r.CapacityLeft() != 1 {
		t.Errorf("CapacityLeft() = %d, want 1", r.CapacityLeft())
	}

	want := []string{"B", "A"}
	for i, w := range want {
		got, err := r.Get(i)
		if err != nil || got != w {
			t.Errorf("Get(%d) = %q, %v, want %q", i, got, err, w)
		}
	}
	if _, err := r.Get(2); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("Get(2) error = %v, want ErrIndexOutOfBounds", err)
	}
}

func TestRing_Overwrite(t *testing.T) {
	r, _ := New[string](3)
	for _, item := range []string{"A", "B", "C", "D"} {
		r.Add(item)
	}

	if r.Size() != 3 || !r.IsFull() || r.IsEmpty() {
		t.Errorf("size=%d full=%t empty=%t, want 3 true false", r.Size(), r.IsFull(), r.IsEmpty())
	}
	for i, want := range []string{"D", "C", "B"} {
		got, err := r.Get(i)
		if err != nil || got != want {
			t.Errorf("Get(%d) = %q, %v, want %q", i, got, err, want)
		}
	}
	for _, index := range []int{3, -1, 100} {
		if _, err := r.Get(index); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Errorf("Get(%d) error = %v, want ErrIndexOutOfBounds", index, err)
		}
	}
}

func TestRing_ManyWraps(t *testing.T) {
	r, _ := New[int](4)
	for i := 1; i <= 103; i++ {
		r.Add(i)
		if r.Size() != min(i, 4) {
			t.Fatalf("after %d adds size = %d", i, r.Size())
		}
	}
	if got := r.Slice(); !reflect.DeepEqual(got, []int{103, 102, 101, 100}) {
		t.Errorf("Slice() = %v", got)
	}
}

func TestRing_All(t *testing.T) {
	r, _ := New[int](3)
	r.Add(1)
	r.Add(2)
	r.Add(3)
	r.Add(4)

	// iteration is restartable
	for pass := 0; pass < 2; pass++ {
		var indexes, items []int
		for i, item := range r.All() {
			indexes = append(indexes, i)
			items = append(items, item)
		}
		if !reflect.DeepEqual(indexes, []int{0, 1, 2}) || !reflect.DeepEqual(items, []int{4, 3, 2}) {
			t.Errorf("pass %d: All() gave %v %v", pass, indexes, items)
		}
	}

	var first []int
	for _, item := range r.All() {
		first = append(first, item)
		break
	}
	if !reflect.DeepEqual(first, []int{4}) {
		t.Errorf("early break gave %v", first)
	}
}

func TestRing_CapacityOne(t *testing.T) {
	r, _ := New[string](1)
	r.Add("x")
	r.Add("y")
	got, err := r.Get(0)
	if err != nil || got != "y" || r.Size() != 1 || !r.IsFull() {
		t.Errorf("Get(0) = %q, %v size=%d", got, err, r.Size())
	}
}
