package history

import (
	"reflect"
	"testing"
)

func TestRing_LengthIsBounded(t *testing.T) {
	tests := []struct {
		name    string
		appends int
	}{
		{"empty", 0},
		{"one", 1},
		{"below capacity", 29},
		{"at capacity", 30},
		{"one past capacity", 31},
		{"far past capacity", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRing(Capacity)
			for i := 1; i <= tt.appends; i++ {
				r.Append(i)
			}

			want := min(tt.appends, Capacity)
			got := r.Values()
			if len(got) != want {
				t.Fatalf("Expected %d values, got %d", want, len(got))
			}
			// Retained values are exactly the last `want` appended, oldest first.
			for i, v := range got {
				expected := tt.appends - want + 1 + i
				if v != expected {
					t.Errorf("values[%d] = %d, expected %d", i, v, expected)
				}
			}
		})
	}
}

func TestRing_EvictsOldestAfter31Appends(t *testing.T) {
	r := NewRing(Capacity)
	for i := 1; i <= 31; i++ {
		r.Append(i)
	}

	want := make([]int, 0, 30)
	for i := 2; i <= 31; i++ {
		want = append(want, i)
	}

	if got := r.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, expected %v", got, want)
	}
}

func TestRing_ValuesIsACopy(t *testing.T) {
	r := NewRing(3)
	r.Append(1)
	r.Append(2)

	values := r.Values()
	values[0] = 99

	if got := r.Values(); got[0] != 1 {
		t.Errorf("Mutating the returned slice changed the ring: %v", got)
	}
}

func TestNewRing_InvalidCapacity(t *testing.T) {
	r := NewRing(0)
	if r.Cap() != Capacity {
		t.Errorf("Expected fallback capacity %d, got %d", Capacity, r.Cap())
	}
}
