// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type style struct {
	color  color.Color
	shape  draw.GlyphDrawer
	radius vg.Length
}

// Series colors: blue, red, cyan, magenta, yellow, black, white.
var palette = []color.Color{
	color.NRGBA{0, 0, 0xFF, 0xFF},
	color.NRGBA{0xFF, 0, 0, 0xFF},
	color.NRGBA{0, 0xBF, 0xBF, 0xFF},
	color.NRGBA{0xBF, 0, 0xBF, 0xFF},
	color.NRGBA{0xBF, 0xBF, 0, 0xFF},
	color.NRGBA{0, 0, 0, 0xFF},
	color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF},
}

// Series markers: circle, cross, diamond, star, left and right
// triangles, dot.
var markers = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	CrossGlyph{},
	DiamondGlyph{},
	StarGlyph{},
	TriLeft{},
	TriRight{},
	draw.CircleGlyph{},
}

var dashes = []vg.Length{vg.Points(6), vg.Points(3)}

const (
	pointRad = 3
	dotRad   = 1.5
)

// styleOf returns the style of the i'th series. Styles repeat after
// the palette is exhausted.
func styleOf(i int) style {
	st := style{
		color:  palette[i%len(palette)],
		shape:  markers[i%len(markers)],
		radius: vg.Points(pointRad),
	}
	if i%len(markers) == len(markers)-1 {
		st.radius = vg.Points(dotRad)
	}
	return st
}

const (
	cosπover4 = vg.Length(.707106781202420)
	cosπover6 = vg.Length(.866025403769473)
	sinπover6 = vg.Length(.500000000025921)
)

// CrossGlyph draws a heavy X.
type CrossGlyph struct{}

// DrawGlyph implements the draw.GlyphDrawer interface.
func (CrossGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1.5)})
	r := sty.Radius * cosπover4
	p := make(vg.Path, 0, 2)
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
	c.Stroke(p)
	p = p[:0]
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r})
	c.Stroke(p)
}

// DiamondGlyph draws a filled, narrow diamond.
type DiamondGlyph struct{}

// DrawGlyph implements the draw.GlyphDrawer interface.
func (DiamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	w := r * cosπover6
	c.FillPolygon(sty.Color, []vg.Point{
		{X: pt.X, Y: pt.Y + r},
		{X: pt.X + w, Y: pt.Y},
		{X: pt.X, Y: pt.Y - r},
		{X: pt.X - w, Y: pt.Y},
	})
}

// StarGlyph draws a filled five-pointed star.
type StarGlyph struct{}

// DrawGlyph implements the draw.GlyphDrawer interface.
func (StarGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	pts := make([]vg.Point, 0, 10)
	for i := 0; i < 10; i++ {
		r := sty.Radius
		if i%2 == 1 {
			r *= 0.4
		}
		θ := math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, vg.Point{
			X: pt.X + r*vg.Length(math.Cos(θ)),
			Y: pt.Y + r*vg.Length(math.Sin(θ)),
		})
	}
	c.FillPolygon(sty.Color, pts)
}

// TriLeft draws a filled triangle pointing left.
type TriLeft struct{}

// DrawGlyph implements the draw.GlyphDrawer interface.
func (TriLeft) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	c.FillPolygon(sty.Color, []vg.Point{
		{X: pt.X - r, Y: pt.Y},
		{X: pt.X + r*sinπover6, Y: pt.Y + r*cosπover6},
		{X: pt.X + r*sinπover6, Y: pt.Y - r*cosπover6},
	})
}

// TriRight draws a filled triangle pointing right.
type TriRight struct{}

// DrawGlyph implements the draw.GlyphDrawer interface.
func (TriRight) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	c.FillPolygon(sty.Color, []vg.Point{
		{X: pt.X + r, Y: pt.Y},
		{X: pt.X - r*sinπover6, Y: pt.Y + r*cosπover6},
		{X: pt.X - r*sinπover6, Y: pt.Y - r*cosπover6},
	})
}
