package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b Point) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Point
		want float64
	}{
		{Pt(0, 0), Pt(3, 4), 5},
		{Pt(1, 1), Pt(1, 1), 0},
		{Pt(-2, 0), Pt(2, 0), 4},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); math.Abs(got-tt.want) > epsilon {
			t.Errorf("Distance(%v, %v): expected %f, got %f", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestSegmentIntersectCrossing(t *testing.T) {
	hit := SegmentIntersect(Pt(0, 0), Pt(10, 0), Pt(5, -5), Pt(5, 5))
	if !hit.OK {
		t.Fatal("Expected ray to hit the segment")
	}
	if !approxEqual(hit.Point, Pt(5, 0)) {
		t.Errorf("Expected hit at (5, 0), got %v", hit.Point)
	}
}

func TestSegmentIntersectParallel(t *testing.T) {
	end := Pt(10, 0)
	hit := SegmentIntersect(Pt(0, 0), end, Pt(0, 5), Pt(10, 5))
	if hit.OK {
		t.Fatalf("Expected parallel segment to miss, got %v", hit.Point)
	}
	if got := hit.Or(end); got != end {
		t.Errorf("Expected sentinel %v, got %v", end, got)
	}
}

func TestSegmentIntersectOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
	}{
		{"segment beyond ray end", Pt(20, -5), Pt(20, 5)},
		{"segment behind origin", Pt(-5, -5), Pt(-5, 5)},
		{"segment above ray", Pt(5, 1), Pt(5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit := SegmentIntersect(Pt(0, 0), Pt(10, 0), tt.p1, tt.p2); hit.OK {
				t.Errorf("Expected miss, got hit at %v", hit.Point)
			}
		})
	}
}

func TestSegmentIntersectEndpointTouch(t *testing.T) {
	// u == 0 sits on the closed interval and counts as a hit
	hit := SegmentIntersect(Pt(0, 0), Pt(10, 0), Pt(4, 0), Pt(4, 6))
	if !hit.OK || !approxEqual(hit.Point, Pt(4, 0)) {
		t.Errorf("Expected hit at (4, 0), got %+v", hit)
	}
}

func TestCircleIntersectTwoRoots(t *testing.T) {
	hits := CircleIntersect(Pt(0, 0), Pt(20, 0), Pt(10, 0), 3)

	if !hits[0].OK || !hits[1].OK {
		t.Fatalf("Expected two hits, got %+v", hits)
	}
	// (-b+√disc)/2a comes first
	if !approxEqual(hits[0].Point, Pt(13, 0)) {
		t.Errorf("Expected first root at (13, 0), got %v", hits[0].Point)
	}
	if !approxEqual(hits[1].Point, Pt(7, 0)) {
		t.Errorf("Expected second root at (7, 0), got %v", hits[1].Point)
	}

	if d := Distance(Pt(0, 0), hits[1].Point); math.Abs(d-7) > epsilon {
		t.Errorf("Expected near root at distance 7, got %f", d)
	}
	if d := Distance(Pt(0, 0), hits[0].Point); math.Abs(d-13) > epsilon {
		t.Errorf("Expected far root at distance 13, got %f", d)
	}
}

func TestCircleIntersectMiss(t *testing.T) {
	end := Pt(20, 0)
	hits := CircleIntersect(Pt(0, 0), end, Pt(10, 10), 3)

	for i, h := range hits {
		if h.OK {
			t.Errorf("Root %d: expected miss, got %v", i, h.Point)
		}
		if got := h.Or(end); got != end {
			t.Errorf("Root %d: expected sentinel %v, got %v", i, end, got)
		}
	}
}

func TestCircleIntersectOriginInside(t *testing.T) {
	// Only the forward root is inside [0, 1]
	hits := CircleIntersect(Pt(10, 0), Pt(30, 0), Pt(10, 0), 5)

	if !hits[0].OK || !approxEqual(hits[0].Point, Pt(15, 0)) {
		t.Errorf("Expected forward root at (15, 0), got %+v", hits[0])
	}
	if hits[1].OK {
		t.Errorf("Expected backward root to miss, got %v", hits[1].Point)
	}
}

func TestCircleIntersectTangent(t *testing.T) {
	hits := CircleIntersect(Pt(0, 0), Pt(20, 0), Pt(10, 3), 3)

	if !hits[0].OK || !hits[1].OK {
		t.Fatalf("Expected tangent to report both roots, got %+v", hits)
	}
	if hits[0].Point != hits[1].Point {
		t.Errorf("Expected coincident roots, got %v and %v", hits[0].Point, hits[1].Point)
	}
	if !approxEqual(hits[0].Point, Pt(10, 0)) {
		t.Errorf("Expected tangent point (10, 0), got %v", hits[0].Point)
	}
}

func TestCircleIntersectZeroLengthRay(t *testing.T) {
	hits := CircleIntersect(Pt(1, 1), Pt(1, 1), Pt(0, 0), 5)
	if hits[0].OK || hits[1].OK {
		t.Errorf("Expected zero-length ray to miss, got %+v", hits)
	}
}

func TestPolarOffset(t *testing.T) {
	got := PolarOffset(Pt(100, 50), 2000, 0)
	if !approxEqual(got, Pt(2100, 50)) {
		t.Errorf("Expected (2100, 50), got %v", got)
	}

	got = PolarOffset(Pt(0, 0), 10, math.Pi/2)
	if !approxEqual(got, Pt(0, 10)) {
		t.Errorf("Expected (0, 10), got %v", got)
	}
}
