package rasterize

import "brickforge.ai/internal/model"

// shapeBounds returns the integer bounding box [x0,x1)x[z0,z1) of a shape,
// used to limit the membership scan.
func shapeBounds(s model.Shape) (x0, z0, x1, z1 int) {
	switch s.Type {
	case model.ShapeRectangle, model.ShapeRoundedRectangle:
		return s.X, s.Z, s.X + s.Width, s.Z + s.Depth
	case model.ShapeCircle:
		return s.CX - s.Radius, s.CZ - s.Radius, s.CX + s.Radius + 1, s.CZ + s.Radius + 1
	case model.ShapeOval:
		return s.CX - s.RX, s.CZ - s.RZ, s.CX + s.RX + 1, s.CZ + s.RZ + 1
	case model.ShapePolygon:
		if len(s.Points) == 0 {
			return 0, 0, 0, 0
		}
		x0, z0 = s.Points[0].X, s.Points[0].Z
		x1, z1 = x0, z0
		for _, p := range s.Points[1:] {
			if p.X < x0 {
				x0 = p.X
			}
			if p.X > x1 {
				x1 = p.X
			}
			if p.Z < z0 {
				z0 = p.Z
			}
			if p.Z > z1 {
				z1 = p.Z
			}
		}
		return x0, z0, x1 + 1, z1 + 1
	}
	return 0, 0, 0, 0
}

// contains reports whether grid cell (x,z) belongs to the shape. Curved
// shapes are evaluated at the cell center (x+0.5, z+0.5); rectangles use
// half-open integer bounds.
func contains(s model.Shape, x, z int) bool {
	switch s.Type {
	case model.ShapeRectangle:
		return x >= s.X && x < s.X+s.Width && z >= s.Z && z < s.Z+s.Depth
	case model.ShapeRoundedRectangle:
		return roundedRectContains(s, x, z)
	case model.ShapeCircle:
		dx := float64(x) + 0.5 - float64(s.CX)
		dz := float64(z) + 0.5 - float64(s.CZ)
		r := float64(s.Radius)
		return dx*dx+dz*dz <= r*r
	case model.ShapeOval:
		dx := (float64(x) + 0.5 - float64(s.CX)) / float64(s.RX)
		dz := (float64(z) + 0.5 - float64(s.CZ)) / float64(s.RZ)
		return dx*dx+dz*dz <= 1
	case model.ShapePolygon:
		return polygonContains(s.Points, float64(x)+0.5, float64(z)+0.5)
	}
	return false
}

func roundedRectContains(s model.Shape, x, z int) bool {
	if x < s.X || x >= s.X+s.Width || z < s.Z || z >= s.Z+s.Depth {
		return false
	}
	r := s.Radius
	if r <= 0 {
		return true
	}
	// Inside the cross-shaped core: not in any corner square.
	fx := float64(x) + 0.5
	fz := float64(z) + 0.5
	left := float64(s.X) + float64(r)
	right := float64(s.X+s.Width) - float64(r)
	near := float64(s.Z) + float64(r)
	far := float64(s.Z+s.Depth) - float64(r)
	cx := fx
	if fx < left {
		cx = left
	} else if fx > right {
		cx = right
	}
	cz := fz
	if fz < near {
		cz = near
	} else if fz > far {
		cz = far
	}
	dx := fx - cx
	dz := fz - cz
	return dx*dx+dz*dz <= float64(r)*float64(r)
}

// polygonContains is the classic ray-casting parity test. Winding order is
// irrelevant; the ray runs in +X from the query point.
func polygonContains(pts []model.Point, fx, fz float64) bool {
	inside := false
	n := len(pts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		zi := float64(pts[i].Z)
		zj := float64(pts[j].Z)
		if (zi > fz) == (zj > fz) {
			continue
		}
		xi := float64(pts[i].X)
		xj := float64(pts[j].X)
		crossX := xi + (fz-zi)/(zj-zi)*(xj-xi)
		if fx < crossX {
			inside = !inside
		}
	}
	return inside
}
