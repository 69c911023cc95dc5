package geo

import (
	"errors"
	"testing"
)

func TestDistanceSamePoint(t *testing.T) {
	points := [][]float64{
		{0, 0},
		{52.52, 13.405},
		{-33.8688, 151.2093},
	}
	for _, p := range points {
		d, err := Distance(p, p)
		if err != nil {
			t.Fatalf("Distance(%v, %v) returned error: %v", p, p, err)
		}
		if d != 0 {
			t.Errorf("Distance(%v, %v) = %d, want 0", p, p, d)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := []float64{52.52, 13.405}   // Berlin
	b := []float64{48.8566, 2.3522} // Paris

	ab, err := Distance(a, b)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := Distance(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if ab != ba {
		t.Errorf("Distance not symmetric: %d vs %d", ab, ba)
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// New York to Los Angeles.
	nyc := []float64{40.7128, -74.0060}
	la := []float64{34.0522, -118.2437}

	d, err := Distance(nyc, la)
	if err != nil {
		t.Fatal(err)
	}
	if d < 3930 || d > 3932 {
		t.Errorf("Distance(NYC, LA) = %d, want 3931 +/- 1", d)
	}
}

func TestDistanceInvalidInput(t *testing.T) {
	cases := [][2][]float64{
		{{52.52}, {48.8566, 2.3522}},
		{{52.52, 13.405}, {48.8566}},
		{nil, {48.8566, 2.3522}},
		{{52.52, 13.405, 1.0}, {48.8566, 2.3522}},
	}
	for _, c := range cases {
		if _, err := Distance(c[0], c[1]); !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("Distance(%v, %v) error = %v, want ErrInvalidCoordinates", c[0], c[1], err)
		}
	}
}
