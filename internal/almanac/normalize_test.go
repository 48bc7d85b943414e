package almanac

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		ref  float64
		want float64
	}{
		{"morning rise before noon ref", 17000.5, 18, 12},
		{"late evening set reflected", 17000 + 22.0/24, 6, -2},
		{"set just after midnight kept", 17000 + 1.0/24, 6, 1},
		{"exactly at ref kept", 17000.25, 6, 6},
		{"zero", 17000, 0, 0},
		{"ref zero reflects everything else", 17000.75, 0, -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.x, tt.ref); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Normalize(%v, %v) = %v, want %v", tt.x, tt.ref, got, tt.want)
			}
		})
	}
}

func TestNormalize_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		x := 17000 + rng.Float64()*400
		ref := rng.Float64() * 24
		h := Normalize(x, ref)
		if h > ref || h <= ref-24 {
			t.Fatalf("Normalize(%v, %v) = %v, want in (%v, %v]", x, ref, h, ref-24, ref)
		}
	}
}

func TestReferences(t *testing.T) {
	tests := []struct {
		offset   int
		rise     float64
		midnight float64
		noon     float64
	}{
		{-6, 18, 6, 18},
		{0, 12, 0, 12},
		{12, 0, -12, 0},
		{-12, 0, 12, 0},
		{5, 7, -5, 7},
		{-13, 1, 13, 1},
	}
	for _, tt := range tests {
		if got := RiseReference(tt.offset); got != tt.rise {
			t.Errorf("RiseReference(%d) = %v, want %v", tt.offset, got, tt.rise)
		}
		if got := SetReference(tt.offset, SetRefMidnight); got != tt.midnight {
			t.Errorf("SetReference(%d, midnight) = %v, want %v", tt.offset, got, tt.midnight)
		}
		if got := SetReference(tt.offset, SetRefNoon); got != tt.noon {
			t.Errorf("SetReference(%d, noon) = %v, want %v", tt.offset, got, tt.noon)
		}
	}
}

func TestFractionalDay(t *testing.T) {
	tests := []struct {
		t        time.Time
		wantFrac float64
	}{
		{time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2017, 1, 1, 6, 0, 0, 0, time.UTC), 0.25},
		{time.Date(2017, 7, 4, 18, 30, 0, 0, time.UTC), 18.5 / 24},
		{time.Date(2017, 7, 4, 13, 30, 0, 0, time.FixedZone("EDT", -4*3600)), 17.5 / 24},
		{time.Date(1969, 12, 31, 12, 0, 0, 0, time.UTC), 0.5},
	}
	for _, tt := range tests {
		x := FractionalDay(tt.t)
		if frac := x - math.Floor(x); math.Abs(frac-tt.wantFrac) > 1e-9 {
			t.Errorf("FractionalDay(%v) fraction = %v, want %v", tt.t, frac, tt.wantFrac)
		}
	}

	a := FractionalDay(time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC))
	b := FractionalDay(time.Date(2017, 3, 2, 0, 0, 0, 0, time.UTC))
	if b-a != 1 {
		t.Errorf("consecutive midnights differ by %v days", b-a)
	}
}
