package brick

// seamSet holds the unit-length boundary segments of one placed layer.
// A vertical seam at key (x,z) is the segment from (x,z) to (x,z+1) on the
// line X=x; a horizontal seam at (x,z) runs from (x,z) to (x+1,z) on Z=z.
type seamSet struct {
	vert  map[cell]struct{}
	horiz map[cell]struct{}
}

func collectSeams(bricks []Brick) seamSet {
	s := seamSet{vert: map[cell]struct{}{}, horiz: map[cell]struct{}{}}
	for _, b := range bricks {
		for z := b.Z; z < b.Z+b.Depth; z++ {
			s.vert[cell{b.X, z}] = struct{}{}
			s.vert[cell{b.X + b.Width, z}] = struct{}{}
		}
		for x := b.X; x < b.X+b.Width; x++ {
			s.horiz[cell{x, b.Z}] = struct{}{}
			s.horiz[cell{x, b.Z + b.Depth}] = struct{}{}
		}
	}
	return s
}

// crossed counts parent seam segments strictly interior to a w x d footprint
// anchored at (x,z). Segments on the candidate's own boundary do not bind
// anything and are not counted.
func (s seamSet) crossed(x, z, w, d int) int {
	n := 0
	for sx := x + 1; sx < x+w; sx++ {
		for sz := z; sz < z+d; sz++ {
			if _, ok := s.vert[cell{sx, sz}]; ok {
				n++
			}
		}
	}
	for sz := z + 1; sz < z+d; sz++ {
		for sx := x; sx < x+w; sx++ {
			if _, ok := s.horiz[cell{sx, sz}]; ok {
				n++
			}
		}
	}
	return n
}
