package geometry

import "math"

// SegmentIntersect intersects the ray segment origin->end with the fixed segment p1->p2.
// It solves origin + t*(end-origin) = p1 + u*(p2-p1) with the determinant form and
// reports a hit only when both t and u lie in [0, 1].
// Parallel or degenerate configurations (zero determinant) are a miss.
func SegmentIntersect(origin, end, p1, p2 Point) Hit {
	x1, y1 := origin.X, origin.Y
	x2, y2 := end.X, end.Y
	x3, y3 := p1.X, p1.Y
	x4, y4 := p2.X, p2.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if denom == 0 {
		return Miss
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Miss
	}

	return Hit{
		Point: Point{X: x1 + t*(x2-x1), Y: y1 + t*(y2-y1)},
		OK:    true,
	}
}

// CircleIntersect intersects the ray segment origin->end with a circle.
//
// The ray is parametrised as A + tV with V = end - A, which gives the quadratic
//
//	(V·V)t² + 2V·(A-Q)t + (A·A + Q·Q - 2A·Q - r²) = 0
//
// Both roots are reported independently, in the order (-b+√disc)/2a, (-b-√disc)/2a.
// A root is a hit only when it lies in [0, 1]. A negative discriminant misses twice.
func CircleIntersect(origin, end, center Point, radius float64) [2]Hit {
	var hits [2]Hit

	v := end.Sub(origin)
	a := v.Dot(v)
	if a == 0 {
		// zero-length ray
		return hits
	}
	b := 2 * v.Dot(origin.Sub(center))
	c := origin.Dot(origin) + center.Dot(center) - 2*origin.Dot(center) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return hits
	}

	sq := math.Sqrt(disc)
	roots := [2]float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
	for i, t := range roots {
		if t >= 0 && t <= 1 {
			hits[i] = Hit{Point: origin.Add(v.Scale(t)), OK: true}
		}
	}

	return hits
}
