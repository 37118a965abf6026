package render

import (
	"bytes"
	"fmt"

	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/geom"
	"github.com/scenestack/scenestack/pkg/scene"
	"github.com/scenestack/scenestack/pkg/stack"
)

// palette cycles per stack so neighboring stacks read apart at a glance.
var palette = []string{"#f2e8cf", "#e8d5c4", "#d5e3e8", "#e3d5e8", "#d9e8d5"}

// Option configures elevation rendering.
type Option func(*renderer)

type renderer struct {
	scale      float64
	margin     float64
	groundLine bool
}

// WithScale sets the number of SVG units per scene unit.
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

// WithMargin sets the frame margin in SVG units.
func WithMargin(m float64) Option { return func(r *renderer) { r.margin = m } }

// WithGroundLine draws a line at world y zero.
func WithGroundLine() Option { return func(r *renderer) { r.groundLine = true } }

type memberBox struct {
	name  string
	box   geom.Box
	stack int
}

// Elevation renders a front elevation of the given stacks: every member box
// becomes a labeled rectangle projected onto the x/y plane. Members are drawn
// in stack order, bottom to top, so the output is stable across runs. The
// world y axis points up; SVG coordinates are flipped accordingly.
func Elevation(doc *scene.Document, stacks []stack.Stack, opts ...Option) ([]byte, error) {
	r := renderer{scale: 40, margin: 20}
	for _, opt := range opts {
		opt(&r)
	}

	var boxes []memberBox
	for i, st := range stacks {
		for _, m := range st.Members {
			b, err := doc.GetBoundingBox(m)
			if err != nil {
				return nil, err
			}
			boxes = append(boxes, memberBox{name: m, box: b, stack: i})
		}
	}
	if len(boxes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no stacks to render")
	}

	minX, maxX := boxes[0].box.Min.X(), boxes[0].box.Max.X()
	minY, maxY := boxes[0].box.Min.Y(), boxes[0].box.Max.Y()
	for _, mb := range boxes[1:] {
		minX = min(minX, mb.box.Min.X())
		maxX = max(maxX, mb.box.Max.X())
		minY = min(minY, mb.box.Min.Y())
		maxY = max(maxY, mb.box.Max.Y())
	}
	if r.groundLine {
		minY = min(minY, 0)
	}

	sx := func(wx float64) float64 { return (wx-minX)*r.scale + r.margin }
	sy := func(wy float64) float64 { return (maxY-wy)*r.scale + r.margin }
	width := (maxX-minX)*r.scale + 2*r.margin
	height := (maxY-minY)*r.scale + 2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	if r.groundLine {
		fmt.Fprintf(&buf, `  <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999" stroke-dasharray="4 2"/>`+"\n",
			sy(0), width, sy(0))
	}

	for _, mb := range boxes {
		fill := palette[mb.stack%len(palette)]
		x, y := sx(mb.box.Min.X()), sy(mb.box.Max.Y())
		w, h := mb.box.Width()*r.scale, mb.box.Height()*r.scale
		fmt.Fprintf(&buf, `  <rect id="block-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#333"/>`+"\n",
			mb.name, x, y, w, h, fill)
	}
	for _, mb := range boxes {
		c := mb.box.Center()
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			sx(c.X()), sy(c.Y()), r.scale*0.2, mb.name)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}
