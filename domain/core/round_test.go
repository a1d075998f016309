package core

import (
	"math"
	"testing"
)

func TestRound3(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1.23456, 1.235},
		{1.2344, 1.234},
		{-1.23456, -1.235},
		{0.0005, 0.001}, // half away from zero
		{-0.0005, -0.001},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round3(tc.in); got != tc.want {
			t.Fatalf("Round3(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestRound3_Idempotent(t *testing.T) {
	for _, x := range []float64{3.14159, -2.71828, 0.0004999, 123.456789} {
		once := Round3(x)
		if Round3(once) != once {
			t.Fatalf("Round3 not idempotent for %v: %v then %v", x, once, Round3(once))
		}
	}
}

func TestRound_NonFinitePassThrough(t *testing.T) {
	if !math.IsNaN(Round3(math.NaN())) {
		t.Fatalf("NaN must survive rounding")
	}
	if !math.IsInf(Round3(math.Inf(1)), 1) {
		t.Fatalf("+Inf must survive rounding")
	}
	if !math.IsInf(Round4(math.Inf(-1)), -1) {
		t.Fatalf("-Inf must survive rounding")
	}
}

func TestRound4(t *testing.T) {
	if got := Round4(0.123456); got != 0.1235 {
		t.Fatalf("Round4(0.123456): expected 0.1235, got %v", got)
	}
	if got := Round4(-0.00005); got != -0.0001 {
		t.Fatalf("Round4(-0.00005): expected -0.0001, got %v", got)
	}
}
