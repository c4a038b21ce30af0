package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	. "github.com/jakecoffman/phys2d"
	"github.com/pkg/errors"
)

var (
	outlineColor = FColor{R: 0.2, G: 0.2, B: 0.2, A: 1}
	staticColor  = FColor{R: 0.6, G: 0.6, B: 0.6, A: 1}
	dynamicColor = FColor{R: 0.3, G: 0.5, B: 0.9, A: 1}
	sensorColor  = FColor{R: 0.9, G: 0.8, B: 0.2, A: 0.5}
	jointColor   = FColor{R: 0.5, G: 1, B: 0.5, A: 1}
	contactColor = FColor{R: 1, G: 0, B: 0, A: 1}
)

// svgDrawer writes an SVG fragment, y up, one world unit per user unit.
type svgDrawer struct {
	sb strings.Builder
}

func css(c FColor) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", int(c.R*255), int(c.G*255), int(c.B*255), c.A)
}

func (d *svgDrawer) DrawCircle(pos Vector, angle, radius float64, outline, fill FColor) {
	fmt.Fprintf(&d.sb, `<circle cx="%g" cy="%g" r="%g" fill="%s" stroke="%s" stroke-width="0.05"/>`+"\n",
		pos.X, pos.Y, radius, css(fill), css(outline))
	edge := pos.Add(ForAngle(angle).Mult(radius))
	d.DrawSegment(pos, edge, outline)
}

func (d *svgDrawer) DrawSegment(a, b Vector, fill FColor) {
	fmt.Fprintf(&d.sb, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="0.05"/>`+"\n",
		a.X, a.Y, b.X, b.Y, css(fill))
}

func (d *svgDrawer) DrawFatSegment(a, b Vector, radius float64, outline, fill FColor) {
	fmt.Fprintf(&d.sb, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%g" stroke-linecap="round"/>`+"\n",
		a.X, a.Y, b.X, b.Y, css(fill), 2*radius)
}

func (d *svgDrawer) DrawPolygon(verts []Vector, outline, fill FColor) {
	points := make([]string, len(verts))
	for i, v := range verts {
		points[i] = fmt.Sprintf("%g,%g", v.X, v.Y)
	}
	fmt.Fprintf(&d.sb, `<polygon points="%s" fill="%s" stroke="%s" stroke-width="0.05"/>`+"\n",
		strings.Join(points, " "), css(fill), css(outline))
}

func (d *svgDrawer) DrawDot(size float64, pos Vector, fill FColor) {
	fmt.Fprintf(&d.sb, `<circle cx="%g" cy="%g" r="%g" fill="%s"/>`+"\n", pos.X, pos.Y, size*0.02, css(fill))
}

func (d *svgDrawer) Flags() int {
	return DRAW_SHAPES | DRAW_JOINTS | DRAW_CONTACT_POINTS
}

func (d *svgDrawer) OutlineColor() FColor {
	return outlineColor
}

func (d *svgDrawer) ShapeColor(c *Collider) FColor {
	switch {
	case c.Virtual():
		return sensorColor
	case c.Body().IsStatic():
		return staticColor
	}
	return dynamicColor
}

func (d *svgDrawer) JointColor() FColor {
	return jointColor
}

func (d *svgDrawer) ContactPointColor() FColor {
	return contactColor
}

func writeSVG(path string, world *World, view BB) error {
	d := &svgDrawer{}
	DrawWorld(world, d)

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating svg")
	}
	defer f.Close()

	_, err = io.WriteString(f, fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n<g transform=\"scale(1,-1)\">\n%s</g>\n</svg>\n",
		view.L, -view.T, view.R-view.L, view.T-view.B, d.sb.String()))
	return errors.Wrap(err, "writing svg")
}
