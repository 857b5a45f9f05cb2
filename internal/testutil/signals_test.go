package testutil

import "testing"

func TestImpulse(t *testing.T) {
	s := Impulse(8, 3)
	for i, v := range s {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("s[%d] = %v, want %v", i, v, want)
		}
	}

	out := Impulse(4, 10)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out-of-range impulse: s[%d] = %v", i, v)
		}
	}
}

func TestOnesAndRamp(t *testing.T) {
	for i, v := range Ones(5) {
		if v != 1 {
			t.Fatalf("Ones[%d] = %v, want 1", i, v)
		}
	}

	for i, v := range Ramp(5) {
		if v != float64(i) {
			t.Fatalf("Ramp[%d] = %v, want %d", i, v, i)
		}
	}
}
