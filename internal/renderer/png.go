package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"

	"github.com/ankek/terraform-provider-archdiagram/internal/fonts"
	"github.com/ankek/terraform-provider-archdiagram/internal/icons"
	"github.com/ankek/terraform-provider-archdiagram/internal/scene"
	"github.com/fogleman/gg"
)

const (
	platformBarHeight = 80
	platformBarInset  = 40
	platformIconStart = 160
	platformIconSize  = 36

	legendX = 50

	gridStep = 100
)

// RasterRenderer paints a diagram onto an RGBA canvas.
type RasterRenderer struct {
	dc      *gg.Context
	diagram *scene.Diagram
	icons   *icons.Resolver
	fonts   *fonts.Set
	options RenderOptions
}

// NewRasterRenderer creates a raster renderer. A nil resolver draws every
// service as a fallback glyph.
func NewRasterRenderer(resolver *icons.Resolver, fontSet *fonts.Set, opts RenderOptions) *RasterRenderer {
	return &RasterRenderer{
		icons:   resolver,
		fonts:   fontSet,
		options: opts,
	}
}

// Render paints d in z-order and returns the canvas flattened onto the background.
func (r *RasterRenderer) Render(d *scene.Diagram) *image.RGBA {
	r.diagram = d
	r.dc = gg.NewContext(d.Width, d.Height)

	bg := r.options.background()
	r.dc.SetColor(parseColor(bg))
	r.dc.Clear()

	if r.options.ShowGrid {
		r.drawGrid()
	}
	for _, z := range d.Zones() {
		r.drawZone(z)
	}
	for _, h := range d.SectionHeaders() {
		r.drawText(h.Text, float64(h.X), float64(h.Y), fonts.Bold, 22, colorTextBlack, 0)
	}
	for _, c := range d.Connectors() {
		r.drawConnector(c)
	}
	for _, s := range d.Services() {
		r.drawService(s)
	}
	for _, a := range d.Actors() {
		r.drawActor(a)
	}
	for _, a := range d.Annotations() {
		r.drawText(a.Text, float64(a.X), float64(a.Y), fonts.Style(a.Style), 12, strokeColor(a.Color), 0)
	}
	if p, ok := d.PlatformBar(); ok && len(p.Keys) > 0 {
		r.drawPlatformBar(p)
	}
	if legend := d.Legend(); len(legend) > 0 {
		r.drawLegend(legend)
	}

	return flatten(r.dc.Image(), parseColor(bg))
}

// flatten composites img over an opaque background.
func flatten(img image.Image, bg color.Color) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

func (r *RasterRenderer) drawGrid() {
	lineColor := lightenColor(colorBorderGrey, 50)
	r.dc.SetLineWidth(1)
	for x := gridStep; x < r.diagram.Width; x += gridStep {
		r.dc.SetColor(parseColor(lineColor))
		r.dc.DrawLine(float64(x), 0, float64(x), float64(r.diagram.Height))
		r.dc.Stroke()
		r.drawText(strconv.Itoa(x), float64(x+2), 2, fonts.Regular, 9, colorTextGrey, 0)
	}
	for y := gridStep; y < r.diagram.Height; y += gridStep {
		r.dc.SetColor(parseColor(lineColor))
		r.dc.DrawLine(0, float64(y), float64(r.diagram.Width), float64(y))
		r.dc.Stroke()
		r.drawText(strconv.Itoa(y), 2, float64(y+2), fonts.Regular, 9, colorTextGrey, 0)
	}
}

func (r *RasterRenderer) drawZone(z scene.Zone) {
	preset := zonePresets[z.Style]
	x, y := float64(z.X), float64(z.Y)
	w, h := float64(z.Width), float64(z.Height)

	r.dc.DrawRoundedRectangle(x, y, w, h, 10)
	r.dc.SetColor(parseColor(preset.fill))
	if preset.dashed {
		r.dc.Fill()
		for _, edge := range rectEdges(x, y, x+w, y+h) {
			r.strokeDashed(edge.A, edge.B, preset.border, 1, zoneDash, zoneGap)
		}
	} else {
		r.dc.FillPreserve()
		r.dc.SetColor(parseColor(preset.border))
		r.dc.SetLineWidth(1)
		r.dc.Stroke()
	}

	if z.Label != "" {
		r.drawText(z.Label, x+12, y+8, fonts.Bold, 16, colorTextBlack, 0)
	}
	if z.Sublabel != "" {
		labelW := r.measure(z.Label, fonts.Bold, 16)
		r.drawText(z.Sublabel, x+18+labelW, y+12, fonts.Italic, 11, colorTextGrey, 0)
	}
}

func (r *RasterRenderer) drawService(s scene.Service) {
	x, y := float64(s.X), float64(s.Y)
	sz := s.IconSize
	half := sz / 2

	if img, ok := r.icons.Image(s.Icon, sz); ok {
		r.dc.DrawImage(img, s.X-half, s.Y-half)
	} else {
		r.drawFallbackGlyph(s.Abbreviation, s.Category, x, y, sz)
	}

	top := y + float64(half)
	r.drawText(s.Label, x, top+4, fonts.Regular, 13, colorTextBlack, 0.5)
	if s.Detail != "" {
		r.drawText(s.Detail, x, top+20, fonts.Italic, 10, colorTextGrey, 0.5)
	}
}

// drawFallbackGlyph draws a rounded square in the category colour with the
// abbreviation centred in white.
func (r *RasterRenderer) drawFallbackGlyph(abbrev string, cat scene.Category, cx, cy float64, size int) {
	half := float64(size / 2)
	r.dc.DrawRoundedRectangle(cx-half, cy-half, 2*half, 2*half, 8)
	r.dc.SetColor(parseColor(getCategoryColor(cat)))
	r.dc.Fill()

	fontSize := 18.0
	if len([]rune(abbrev)) > 3 {
		fontSize = 14
	}
	r.drawTextCentered(abbrev, cx, cy, fonts.Bold, fontSize, colorTextWhite)
}

func (r *RasterRenderer) drawConnector(c scene.Connector) {
	start, end, err := r.diagram.Endpoints(c)
	if err != nil {
		return
	}
	a := Vec{float64(start.X), float64(start.Y)}
	b := Vec{float64(end.X), float64(end.Y)}
	hex := strokeColor(c.Color)

	if c.Style == scene.LineDashed {
		r.strokeDashed(a, b, hex, lineWidth, connectorDash, connectorGap)
	} else {
		r.strokeLine(a, b, hex, lineWidth)
	}

	r.fillArrowhead(a, b, hex, arrowSize)
	if c.Bidirectional {
		r.fillArrowhead(b, a, hex, arrowSize)
	}

	mid := Midpoint(a, b)
	// Step 0 is the unset value and draws no marker.
	if c.Step > 0 {
		r.dc.DrawCircle(mid.X, mid.Y, stepRadius)
		r.dc.SetColor(parseColor(hex))
		r.dc.Fill()
		r.drawTextCentered(strconv.Itoa(c.Step), mid.X, mid.Y-1, fonts.Bold, 12, colorTextWhite)
	}
	if c.Label != "" {
		r.drawText(c.Label, mid.X+6, mid.Y-16, fonts.Italic, 10, colorTextBlack, 0)
	}
}

func (r *RasterRenderer) drawActor(a scene.Actor) {
	x, y := float64(a.X), float64(a.Y)
	r.dc.SetColor(parseColor(colorTextBlack))
	r.dc.SetLineWidth(2)

	switch a.Kind {
	case scene.ActorPerson:
		r.dc.DrawEllipse(x, y-14, 8, 8)
		r.dc.Stroke()
		r.dc.DrawEllipticalArc(x, y+6, 16, 10, math.Pi, 2*math.Pi)
		r.dc.Stroke()
	case scene.ActorStore:
		r.dc.DrawEllipse(x, y-13, 14, 5)
		r.dc.Stroke()
		r.dc.DrawLine(x-14, y-13, x-14, y+10)
		r.dc.DrawLine(x+14, y-13, x+14, y+10)
		r.dc.Stroke()
		r.dc.DrawEllipticalArc(x, y+10, 14, 10, 0, math.Pi)
		r.dc.Stroke()
	case scene.ActorSystem:
		r.dc.DrawRoundedRectangle(x-12, y-22, 24, 32, 3)
		r.dc.Stroke()
		for _, ly := range []float64{y - 12, y - 2} {
			r.dc.DrawLine(x-12, ly, x+12, ly)
		}
		r.dc.Stroke()
		r.dc.DrawCircle(x+6, y+4, 1.5)
		r.dc.Fill()
	case scene.ActorDevice:
		r.dc.DrawRoundedRectangle(x-16, y-20, 32, 22, 2)
		r.dc.Stroke()
		r.dc.DrawLine(x, y+2, x, y+9)
		r.dc.DrawLine(x-8, y+10, x+8, y+10)
		r.dc.Stroke()
	}

	r.drawText(a.Label, x, y+22, fonts.Bold, 13, colorTextBlack, 0.5)
	if a.Detail != "" {
		r.drawText(a.Detail, x, y+38, fonts.Regular, 10, colorTextGrey, 0.5)
	}
}

func (r *RasterRenderer) drawPlatformBar(p scene.PlatformBar) {
	width := r.diagram.Width
	barY := p.Y
	if barY == 0 {
		barY = r.diagram.Height - 100
	}

	r.dc.DrawRoundedRectangle(platformBarInset, float64(barY), float64(width-2*platformBarInset), platformBarHeight, 8)
	r.dc.SetColor(parseColor(colorZoneGrey))
	r.dc.FillPreserve()
	r.dc.SetColor(parseColor(colorBorderGrey))
	r.dc.SetLineWidth(1)
	r.dc.Stroke()

	r.drawText(p.Label, platformBarInset+16, float64(barY+platformBarHeight/2-10), fonts.Bold, 14, colorTextBlack, 0)

	spacing := (width - 2*platformBarInset - platformIconStart) / len(p.Keys)
	for i, key := range p.Keys {
		sx := platformIconStart + i*spacing + spacing/2
		sy := barY + platformBarHeight/2

		if img, ok := r.icons.Image(key, platformIconSize); ok {
			r.dc.DrawImage(img, sx-platformIconSize/2, sy-22)
		} else {
			r.dc.DrawRoundedRectangle(float64(sx-14), float64(sy-22), 28, 22, 4)
			r.dc.SetColor(parseColor(colorCatBlue))
			r.dc.Fill()
		}

		for j, line := range strings.Split(icons.DisplayName(key), "\n") {
			r.drawText(line, float64(sx), float64(sy+16+j*13), fonts.Regular, 10, colorTextBlack, 0.5)
		}
	}
}

func (r *RasterRenderer) drawLegend(items []scene.LegendItem) {
	ly := r.diagram.Height - 140
	for i, it := range items {
		iy := float64(ly + i*20)
		a := Vec{legendX, iy + 6}
		b := Vec{legendX + 30, iy + 6}
		hex := strokeColor(it.Color)

		if it.Style == scene.LineDashed {
			r.strokeDashed(a, b, hex, lineWidth, connectorDash, connectorGap)
		} else {
			r.strokeLine(a, b, hex, lineWidth)
		}
		r.fillArrowhead(a, b, hex, legendArrowSize)
		r.drawText(it.Label, legendX+36, iy, fonts.Italic, 10, colorTextBlack, 0)
	}
}

func (r *RasterRenderer) strokeLine(a, b Vec, hex string, width float64) {
	r.dc.SetColor(parseColor(hex))
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	r.dc.Stroke()
}

func (r *RasterRenderer) strokeDashed(a, b Vec, hex string, width, dash, gap float64) {
	for _, seg := range DashSegments(a, b, dash, gap) {
		r.strokeLine(seg.A, seg.B, hex, width)
	}
}

func (r *RasterRenderer) fillArrowhead(tail, tip Vec, hex string, size float64) {
	pts := ArrowheadPoints(tail, tip, size)
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	r.dc.LineTo(pts[1].X, pts[1].Y)
	r.dc.LineTo(pts[2].X, pts[2].Y)
	r.dc.ClosePath()
	r.dc.SetColor(parseColor(hex))
	r.dc.Fill()
}

func (r *RasterRenderer) measure(text string, style fonts.Style, size float64) float64 {
	if text == "" {
		return 0
	}
	r.dc.SetFontFace(r.fonts.Face(style, size))
	w, _ := r.dc.MeasureString(text)
	return w
}

// drawText draws text whose top edge is at y. ax selects the horizontal
// anchor: 0 puts the left edge at x, 0.5 centres the text on x.
func (r *RasterRenderer) drawText(text string, x, y float64, style fonts.Style, size float64, hex string, ax float64) {
	if text == "" {
		return
	}
	face := r.fonts.Face(style, size)
	r.dc.SetFontFace(face)
	r.dc.SetColor(parseColor(hex))
	w, _ := r.dc.MeasureString(text)
	ascent := float64(face.Metrics().Ascent) / 64
	r.dc.DrawString(text, x-ax*w, y+ascent)
}

// drawTextCentered centres text on (cx, cy) both ways.
func (r *RasterRenderer) drawTextCentered(text string, cx, cy float64, style fonts.Style, size float64, hex string) {
	if text == "" {
		return
	}
	face := r.fonts.Face(style, size)
	r.dc.SetFontFace(face)
	r.dc.SetColor(parseColor(hex))
	w, _ := r.dc.MeasureString(text)
	m := face.Metrics()
	ascent, descent := float64(m.Ascent)/64, float64(m.Descent)/64
	r.dc.DrawString(text, cx-w/2, cy+(ascent-descent)/2)
}
