package model

import "fmt"

// Validate runs the structural checks the schema cannot express: layer
// ordering, height ceilings, interval sanity. Returns nil when valid.
func (m *SilhouetteModel) Validate() *ValidationError {
	verr := &ValidationError{Kind: KindSingle}
	validateBox(verr, m.BoundingBox)
	if len(m.Layers) == 0 {
		verr.add("layers", "at least one layer required")
	}
	if len(m.Layers) > MaxLayers {
		verr.addf("layers", "%d layers exceeds maximum %d", len(m.Layers), MaxLayers)
	}
	prevYMin := -1
	for i, l := range m.Layers {
		field := fmt.Sprintf("layers[%d]", i)
		if l.YMax <= l.YMin {
			verr.addf(field+".y_max", "y_max %d must exceed y_min %d", l.YMax, l.YMin)
		}
		if l.YMin < 0 {
			verr.addf(field+".y_min", "y_min %d is negative", l.YMin)
		}
		if l.YMax > m.BoundingBox.Height {
			verr.addf(field+".y_max", "y_max %d exceeds bounding box height %d", l.YMax, m.BoundingBox.Height)
		}
		if l.YMin < prevYMin {
			verr.addf(field+".y_min", "layers must be ordered ascending by y_min")
		}
		prevYMin = l.YMin
		for j, s := range l.Shapes {
			validateShape(verr, fmt.Sprintf("%s.shapes[%d]", field, j), s, true)
		}
		for j, h := range l.Holes {
			validateShape(verr, fmt.Sprintf("%s.holes[%d]", field, j), h, false)
		}
	}
	if verr.ok() {
		return nil
	}
	return verr
}

func (m *MultiViewModel) Validate() *ValidationError {
	verr := &ValidationError{Kind: KindMulti}
	validateBox(verr, m.BoundingBox)
	validateColumns(verr, "front_view", m.FrontView.Columns, m.FrontView.Width)
	validateColumns(verr, "side_view", m.SideView.Columns, m.SideView.Depth)
	if m.FrontView.Width > m.BoundingBox.Width {
		verr.addf("front_view.width", "width %d exceeds bounding box width %d", m.FrontView.Width, m.BoundingBox.Width)
	}
	if m.SideView.Depth > m.BoundingBox.Depth {
		verr.addf("side_view.depth", "depth %d exceeds bounding box depth %d", m.SideView.Depth, m.BoundingBox.Depth)
	}
	if verr.ok() {
		return nil
	}
	return verr
}

func (m *TriViewModel) Validate() *ValidationError {
	mv := MultiViewModel{
		BoundingBox: m.BoundingBox,
		FrontView:   m.FrontView,
		SideView:    m.SideView,
	}
	verr := mv.Validate()
	if verr == nil {
		verr = &ValidationError{}
	}
	verr.Kind = KindTri
	if len(m.TopView.Cells) == 0 && len(m.TopView.Rows) == 0 {
		verr.add("top_view", "cells or rows required")
	}
	for i, c := range m.TopView.Cells {
		if c.X < 0 || c.X >= m.BoundingBox.Width || c.Z < 0 || c.Z >= m.BoundingBox.Depth {
			verr.addf(fmt.Sprintf("top_view.cells[%d]", i), "cell (%d,%d) outside %dx%d box", c.X, c.Z, m.BoundingBox.Width, m.BoundingBox.Depth)
		}
	}
	for i, r := range m.TopView.Rows {
		field := fmt.Sprintf("top_view.rows[%d]", i)
		if r.XMin > r.XMax {
			verr.addf(field, "x_min %d exceeds x_max %d", r.XMin, r.XMax)
		}
		if r.Z < 0 || r.Z >= m.BoundingBox.Depth || r.XMin < 0 || r.XMax >= m.BoundingBox.Width {
			verr.addf(field, "row outside %dx%d box", m.BoundingBox.Width, m.BoundingBox.Depth)
		}
	}
	if verr.ok() {
		return nil
	}
	return verr
}

func validateBox(verr *ValidationError, bb BoundingBox) {
	if bb.Width < 1 || bb.Width > MaxWidthStuds {
		verr.addf("bounding_box.width", "width %d outside [1,%d]", bb.Width, MaxWidthStuds)
	}
	if bb.Depth < 1 || bb.Depth > MaxDepthStuds {
		verr.addf("bounding_box.depth", "depth %d outside [1,%d]", bb.Depth, MaxDepthStuds)
	}
	if bb.Height < 1 || bb.Height > MaxHeightPlates {
		verr.addf("bounding_box.height", "height %d outside [1,%d]", bb.Height, MaxHeightPlates)
	}
}

func validateShape(verr *ValidationError, field string, s Shape, wantColor bool) {
	switch s.Type {
	case ShapeRectangle, ShapeRoundedRectangle:
		if s.Width < 1 || s.Depth < 1 {
			verr.addf(field, "%s needs positive width and depth", s.Type)
		}
	case ShapeCircle:
		if s.Radius < 1 {
			verr.addf(field, "circle needs positive radius")
		}
	case ShapeOval:
		if s.RX < 1 || s.RZ < 1 {
			verr.addf(field, "oval needs positive rx and rz")
		}
	case ShapePolygon:
		if len(s.Points) < MinPolygonPts || len(s.Points) > MaxPolygonPts {
			verr.addf(field+".points", "%d points outside [%d,%d]", len(s.Points), MinPolygonPts, MaxPolygonPts)
		}
	default:
		verr.addf(field+".type", "unknown shape type %q", s.Type)
	}
	if wantColor && !s.Color.Valid() {
		verr.addf(field+".color", "unknown color %q", s.Color)
	}
}

func validateColumns(verr *ValidationError, view string, cols []Column, span int) {
	for i, c := range cols {
		field := fmt.Sprintf("%s.columns[%d]", view, i)
		if c.YMax <= c.YMin {
			verr.addf(field, "y_max %d must exceed y_min %d", c.YMax, c.YMin)
		}
		if c.Position < 0 || c.Position >= span {
			verr.addf(field+".position", "position %d outside [0,%d)", c.Position, span)
		}
		if !c.Color.Valid() {
			verr.addf(field+".color", "unknown color %q", c.Color)
		}
	}
}
