package jsonvalue

import (
	"math"
	"strings"
	"testing"
)

func TestStringToDouble(t *testing.T) {
	cases := map[string]float64{
		"1":       1,
		"1.5":     1.5,
		"-1.5":    -1.5,
		"1e10":    1e10,
		"1.5e-3":  1.5e-3,
		"Infinity": math.Inf(1),
	}
	for in, want := range cases {
		v, n := stringToDouble([]byte(in))
		if n != len(in) {
			t.Fatalf("%q: consumed %d, want %d", in, n, len(in))
		}
		if v != want {
			t.Fatalf("%q: got %v, want %v", in, v, want)
		}
	}
}

func TestStringToDoubleNegativeInfinityAndNaN(t *testing.T) {
	v, n := stringToDouble([]byte("-Infinity"))
	if n != len("-Infinity") || !math.IsInf(v, -1) {
		t.Fatalf("got (%v, %d)", v, n)
	}
	v, n = stringToDouble([]byte("NaN"))
	if n != 3 || !math.IsNaN(v) {
		t.Fatalf("got (%v, %d)", v, n)
	}
}

func TestStringToDoubleUnparsable(t *testing.T) {
	v, n := stringToDouble([]byte("abc"))
	if v != 0 || n != 0 {
		t.Fatalf("got (%v, %d), want (0, 0)", v, n)
	}
}

func TestStringToDoubleStopsAtTrailingJunk(t *testing.T) {
	v, n := stringToDouble([]byte("1.5xyz"))
	if v != 1.5 || n != 3 {
		t.Fatalf("got (%v, %d), want (1.5, 3)", v, n)
	}
}

func TestDoubleToShortestRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 0.1, 1e300, 1e-300, 123456789.123456} {
		buf := doubleToShortest(nil, v)
		got, n := stringToDouble(buf)
		if n != len(buf) {
			t.Fatalf("%v: reparse consumed %d of %d", v, n, len(buf))
		}
		if got != v {
			t.Fatalf("round trip of %v produced %q -> %v", v, buf, got)
		}
	}
}

func TestDoubleToShortestSpecials(t *testing.T) {
	if got := string(doubleToShortest(nil, math.NaN())); got != "null" {
		t.Fatalf("NaN -> %q, want null", got)
	}
	if got := string(doubleToShortest(nil, math.Inf(1))); got != "1e5000" {
		t.Fatalf("+Inf -> %q, want 1e5000", got)
	}
	if got := string(doubleToShortest(nil, math.Inf(-1))); got != "-1e5000" {
		t.Fatalf("-Inf -> %q, want -1e5000", got)
	}
	if got := string(doubleToShortest(nil, math.Copysign(0, -1))); got != "0" {
		t.Fatalf("-0 -> %q, want unique zero 0", got)
	}
}

func TestDoubleToShortestExponentForm(t *testing.T) {
	got := string(doubleToShortest(nil, 1e21))
	if !strings.Contains(got, "e+") {
		t.Fatalf("expected exponential form with explicit '+' sign, got %q", got)
	}
}
