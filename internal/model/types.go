package model

// Structural maxima. Config may lower these per deployment, never raise them.
const (
	MaxWidthStuds   = 64
	MaxDepthStuds   = 64
	MaxHeightPlates = 96
	MaxLayers       = 50
	MinPolygonPts   = 3
	MaxPolygonPts   = 20
)

// PlatesPerStud converts horizontal stud units to vertical plate units
// (8mm stud pitch / 3.2mm plate height). View-based models arrive with raw
// Y values in studs and are rescaled by this before carving.
const PlatesPerStud = 2.5

// View mode discriminants.
const (
	KindTri    = "tri_view"
	KindMulti  = "multi_view"
	KindSingle = "single_view"
)

// Point is a horizontal-plane grid position in studs.
type Point struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Shape types.
const (
	ShapeRectangle        = "rectangle"
	ShapeRoundedRectangle = "rounded_rectangle"
	ShapeCircle           = "circle"
	ShapeOval             = "oval"
	ShapePolygon          = "polygon"
)

// Shape is the tagged union over the five 2D shape kinds. Which fields are
// meaningful depends on Type; the schema enforces the per-type shape. Holes
// reuse the same struct with Color left empty.
type Shape struct {
	Type string `json:"type"`

	// rectangle / rounded_rectangle
	X      int `json:"x,omitempty"`
	Z      int `json:"z,omitempty"`
	Width  int `json:"width,omitempty"`
	Depth  int `json:"depth,omitempty"`
	Radius int `json:"radius,omitempty"` // corner radius (rounded_rectangle) or circle radius

	// circle / oval
	CX int `json:"cx,omitempty"`
	CZ int `json:"cz,omitempty"`
	RX int `json:"rx,omitempty"`
	RZ int `json:"rz,omitempty"`

	// polygon
	Points []Point `json:"points,omitempty"`

	Color Color `json:"color,omitempty"`
}

// Layer is one vertical slab of a single-view model: shapes unioned, holes
// subtracted, extruded through [YMin, YMax) in plates.
type Layer struct {
	YMin       int     `json:"y_min"`
	YMax       int     `json:"y_max"`
	Shapes     []Shape `json:"shapes"`
	Holes      []Shape `json:"holes,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// BoundingBox bounds the whole model: width/depth in studs, height in plates.
type BoundingBox struct {
	Width  int `json:"width"`
	Depth  int `json:"depth"`
	Height int `json:"height"`
}

// SilhouetteModel is the single-view (layer stack) input variant.
type SilhouetteModel struct {
	ViewMode    string      `json:"view_mode,omitempty"`
	Units       string      `json:"units,omitempty"` // "studs_plates"
	BoundingBox BoundingBox `json:"bounding_box"`
	Layers      []Layer     `json:"layers"`
}

// Column is one vertical filled span of an orthogonal projection: at
// horizontal position Position, rows [YMin, YMax) are filled with Color.
// Y values are raw (stud-scaled) until rescaled by PlatesPerStud.
type Column struct {
	Position int   `json:"position"`
	YMin     int   `json:"y_min"`
	YMax     int   `json:"y_max"`
	Color    Color `json:"color"`
}

// FrontView projects onto the XY plane (positions are X coordinates).
type FrontView struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Columns []Column `json:"columns"`
}

// SideView projects onto the ZY plane (positions are Z coordinates).
type SideView struct {
	Depth   int      `json:"depth"`
	Height  int      `json:"height"`
	Columns []Column `json:"columns"`
}

// TopCell is one occupied (x,z) cell of a top-down projection.
type TopCell struct {
	X     int   `json:"x"`
	Z     int   `json:"z"`
	Color Color `json:"color,omitempty"`
}

// TopRow is a filled X span at a fixed Z of a top-down projection.
type TopRow struct {
	Z     int   `json:"z"`
	XMin  int   `json:"x_min"`
	XMax  int   `json:"x_max"`
	Color Color `json:"color,omitempty"`
}

// TopView is a top-down projection, as sparse cells and/or row spans.
type TopView struct {
	Cells []TopCell `json:"cells,omitempty"`
	Rows  []TopRow  `json:"rows,omitempty"`
}

// MultiViewModel is the two-projection (front+side) input variant.
type MultiViewModel struct {
	ViewMode     string      `json:"view_mode,omitempty"`
	BoundingBox  BoundingBox `json:"bounding_box"`
	FrontView    FrontView   `json:"front_view"`
	SideView     SideView    `json:"side_view"`
	SymmetryAxis string      `json:"symmetry_axis,omitempty"` // "x", "z", "xz"
}

// TriViewModel adds a required top view to the multi-view variant.
type TriViewModel struct {
	ViewMode     string      `json:"view_mode,omitempty"`
	BoundingBox  BoundingBox `json:"bounding_box"`
	FrontView    FrontView   `json:"front_view"`
	SideView     SideView    `json:"side_view"`
	TopView      TopView     `json:"top_view"`
	SymmetryAxis string      `json:"symmetry_axis,omitempty"`
}

// Parsed is the result of Parse: exactly one of the three variants is set,
// and Kind names which one matched.
type Parsed struct {
	Kind   string
	Single *SilhouetteModel
	Multi  *MultiViewModel
	Tri    *TriViewModel
}
