package renderer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image"
	"image/png"
	"strings"

	"github.com/ankek/terraform-provider-archdiagram/internal/icons"
	"github.com/ankek/terraform-provider-archdiagram/internal/scene"
)

const svgFontFamily = "Segoe UI, DejaVu Sans, Arial, sans-serif"

// SVGRenderer writes a diagram as SVG using the same geometry as the raster output.
type SVGRenderer struct {
	buf     *bytes.Buffer
	diagram *scene.Diagram
	icons   *icons.Resolver
	options RenderOptions
}

// NewSVGRenderer creates a new SVG renderer
func NewSVGRenderer(resolver *icons.Resolver, opts RenderOptions) *SVGRenderer {
	return &SVGRenderer{
		buf:     &bytes.Buffer{},
		icons:   resolver,
		options: opts,
	}
}

// Render generates the SVG document for d.
func (r *SVGRenderer) Render(d *scene.Diagram) ([]byte, error) {
	r.buf.Reset()
	r.diagram = d

	r.writeHeader()

	if r.options.ShowGrid {
		r.writeGrid()
	}
	for _, z := range d.Zones() {
		r.writeZone(z)
	}
	for _, h := range d.SectionHeaders() {
		r.writeText(h.Text, float64(h.X), float64(h.Y), "bold", 22, colorTextBlack, "start")
	}
	for _, c := range d.Connectors() {
		r.writeConnector(c)
	}
	for _, s := range d.Services() {
		if err := r.writeService(s); err != nil {
			return nil, err
		}
	}
	for _, a := range d.Actors() {
		r.writeActor(a)
	}
	for _, a := range d.Annotations() {
		r.writeText(a.Text, float64(a.X), float64(a.Y), string(a.Style), 12, strokeColor(a.Color), "start")
	}
	if p, ok := d.PlatformBar(); ok && len(p.Keys) > 0 {
		if err := r.writePlatformBar(p); err != nil {
			return nil, err
		}
	}
	for i, it := range d.Legend() {
		r.writeLegendItem(i, it)
	}

	r.buf.WriteString("</svg>\n")
	return r.buf.Bytes(), nil
}

func (r *SVGRenderer) writeHeader() {
	w, h := r.diagram.Width, r.diagram.Height
	fmt.Fprintf(r.buf, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, w, h, w, h)
	if r.diagram.Title != "" {
		fmt.Fprintf(r.buf, "<title>%s</title>\n", html.EscapeString(r.diagram.Title))
	}
	fmt.Fprintf(r.buf, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", r.options.background())
}

func (r *SVGRenderer) writeGrid() {
	stroke := lightenColor(colorBorderGrey, 50)
	for x := gridStep; x < r.diagram.Width; x += gridStep {
		fmt.Fprintf(r.buf, "<line x1=\"%d\" y1=\"0\" x2=\"%d\" y2=\"%d\" stroke=\"%s\" stroke-width=\"1\"/>\n", x, x, r.diagram.Height, stroke)
	}
	for y := gridStep; y < r.diagram.Height; y += gridStep {
		fmt.Fprintf(r.buf, "<line x1=\"0\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"%s\" stroke-width=\"1\"/>\n", y, r.diagram.Width, y, stroke)
	}
}

func (r *SVGRenderer) writeZone(z scene.Zone) {
	preset := zonePresets[z.Style]
	dash := ""
	if preset.dashed {
		dash = fmt.Sprintf(` stroke-dasharray="%g %g"`, zoneDash, zoneGap)
	}
	fmt.Fprintf(r.buf, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" rx=\"10\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1\"%s/>\n",
		z.X, z.Y, z.Width, z.Height, preset.fill, preset.border, dash)

	if z.Label != "" {
		r.writeText(z.Label, float64(z.X+12), float64(z.Y+8), "bold", 16, colorTextBlack, "start")
	}
	if z.Sublabel != "" {
		// Without font metrics the sublabel is placed from an average glyph width.
		labelW := float64(len([]rune(z.Label))) * 16 * 0.6
		r.writeText(z.Sublabel, float64(z.X+18)+labelW, float64(z.Y+12), "italic", 11, colorTextGrey, "start")
	}
}

func (r *SVGRenderer) writeService(s scene.Service) error {
	half := s.IconSize / 2
	if img, ok := r.icons.Image(s.Icon, s.IconSize); ok {
		uri, err := pngDataURI(img)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.buf, "<image x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" href=\"%s\"/>\n",
			s.X-half, s.Y-half, s.IconSize, s.IconSize, uri)
	} else {
		fmt.Fprintf(r.buf, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" rx=\"8\" fill=\"%s\"/>\n",
			s.X-half, s.Y-half, 2*half, 2*half, getCategoryColor(s.Category))
		size := 18
		if len([]rune(s.Abbreviation)) > 3 {
			size = 14
		}
		fmt.Fprintf(r.buf, "<text x=\"%d\" y=\"%d\" font-family=\"%s\" font-size=\"%d\" font-weight=\"bold\" fill=\"%s\" text-anchor=\"middle\" dominant-baseline=\"central\">%s</text>\n",
			s.X, s.Y, svgFontFamily, size, colorTextWhite, html.EscapeString(s.Abbreviation))
	}

	top := float64(s.Y + half)
	r.writeText(s.Label, float64(s.X), top+4, "regular", 13, colorTextBlack, "middle")
	if s.Detail != "" {
		r.writeText(s.Detail, float64(s.X), top+20, "italic", 10, colorTextGrey, "middle")
	}
	return nil
}

func (r *SVGRenderer) writeConnector(c scene.Connector) {
	start, end, err := r.diagram.Endpoints(c)
	if err != nil {
		return
	}
	a := Vec{float64(start.X), float64(start.Y)}
	b := Vec{float64(end.X), float64(end.Y)}
	hex := strokeColor(c.Color)

	r.writeLine(a, b, hex, c.Style == scene.LineDashed)
	r.writeArrowhead(a, b, hex, arrowSize)
	if c.Bidirectional {
		r.writeArrowhead(b, a, hex, arrowSize)
	}

	mid := Midpoint(a, b)
	// Step 0 is the unset value and draws no marker.
	if c.Step > 0 {
		fmt.Fprintf(r.buf, "<circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"%s\"/>\n", mid.X, mid.Y, stepRadius, hex)
		fmt.Fprintf(r.buf, "<text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"12\" font-weight=\"bold\" fill=\"%s\" text-anchor=\"middle\" dominant-baseline=\"central\">%d</text>\n",
			mid.X, mid.Y-1, svgFontFamily, colorTextWhite, c.Step)
	}
	if c.Label != "" {
		r.writeText(c.Label, mid.X+6, mid.Y-16, "italic", 10, colorTextBlack, "start")
	}
}

func (r *SVGRenderer) writeLine(a, b Vec, hex string, dashed bool) {
	dash := ""
	if dashed {
		dash = fmt.Sprintf(` stroke-dasharray="%g %g"`, connectorDash, connectorGap)
	}
	fmt.Fprintf(r.buf, "<line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"%g\"%s/>\n",
		a.X, a.Y, b.X, b.Y, hex, lineWidth, dash)
}

func (r *SVGRenderer) writeArrowhead(tail, tip Vec, hex string, size float64) {
	pts := ArrowheadPoints(tail, tip, size)
	fmt.Fprintf(r.buf, "<polygon points=\"%.2f,%.2f %.2f,%.2f %.2f,%.2f\" fill=\"%s\"/>\n",
		pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y, hex)
}

func (r *SVGRenderer) writeActor(a scene.Actor) {
	x, y := a.X, a.Y
	stroke := fmt.Sprintf(`fill="none" stroke="%s" stroke-width="2"`, colorTextBlack)
	switch a.Kind {
	case scene.ActorPerson:
		fmt.Fprintf(r.buf, "<circle cx=\"%d\" cy=\"%d\" r=\"8\" %s/>\n", x, y-14, stroke)
		fmt.Fprintf(r.buf, "<path d=\"M %d %d A 16 10 0 0 1 %d %d\" %s/>\n", x-16, y+6, x+16, y+6, stroke)
	case scene.ActorStore:
		fmt.Fprintf(r.buf, "<ellipse cx=\"%d\" cy=\"%d\" rx=\"14\" ry=\"5\" %s/>\n", x, y-13, stroke)
		fmt.Fprintf(r.buf, "<path d=\"M %d %d L %d %d A 14 10 0 0 0 %d %d L %d %d\" %s/>\n",
			x-14, y-13, x-14, y+10, x+14, y+10, x+14, y-13, stroke)
	case scene.ActorSystem:
		fmt.Fprintf(r.buf, "<rect x=\"%d\" y=\"%d\" width=\"24\" height=\"32\" rx=\"3\" %s/>\n", x-12, y-22, stroke)
		fmt.Fprintf(r.buf, "<path d=\"M %d %d H %d M %d %d H %d\" %s/>\n", x-12, y-12, x+12, x-12, y-2, x+12, stroke)
	case scene.ActorDevice:
		fmt.Fprintf(r.buf, "<rect x=\"%d\" y=\"%d\" width=\"32\" height=\"22\" rx=\"2\" %s/>\n", x-16, y-20, stroke)
		fmt.Fprintf(r.buf, "<path d=\"M %d %d V %d M %d %d H %d\" %s/>\n", x, y+2, y+9, x-8, y+10, x+8, stroke)
	}

	r.writeText(a.Label, float64(x), float64(y+22), "bold", 13, colorTextBlack, "middle")
	if a.Detail != "" {
		r.writeText(a.Detail, float64(x), float64(y+38), "regular", 10, colorTextGrey, "middle")
	}
}

func (r *SVGRenderer) writePlatformBar(p scene.PlatformBar) error {
	width := r.diagram.Width
	barY := p.Y
	if barY == 0 {
		barY = r.diagram.Height - 100
	}

	fmt.Fprintf(r.buf, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" rx=\"8\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1\"/>\n",
		platformBarInset, barY, width-2*platformBarInset, platformBarHeight, colorZoneGrey, colorBorderGrey)
	r.writeText(p.Label, platformBarInset+16, float64(barY+platformBarHeight/2-10), "bold", 14, colorTextBlack, "start")

	spacing := (width - 2*platformBarInset - platformIconStart) / len(p.Keys)
	for i, key := range p.Keys {
		sx := platformIconStart + i*spacing + spacing/2
		sy := barY + platformBarHeight/2

		if img, ok := r.icons.Image(key, platformIconSize); ok {
			uri, err := pngDataURI(img)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.buf, "<image x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" href=\"%s\"/>\n",
				sx-platformIconSize/2, sy-22, platformIconSize, platformIconSize, uri)
		} else {
			fmt.Fprintf(r.buf, "<rect x=\"%d\" y=\"%d\" width=\"28\" height=\"22\" rx=\"4\" fill=\"%s\"/>\n", sx-14, sy-22, colorCatBlue)
		}
		for j, line := range strings.Split(icons.DisplayName(key), "\n") {
			r.writeText(line, float64(sx), float64(sy+16+j*13), "regular", 10, colorTextBlack, "middle")
		}
	}
	return nil
}

func (r *SVGRenderer) writeLegendItem(i int, it scene.LegendItem) {
	iy := float64(r.diagram.Height - 140 + i*20)
	a := Vec{legendX, iy + 6}
	b := Vec{legendX + 30, iy + 6}
	hex := strokeColor(it.Color)

	r.writeLine(a, b, hex, it.Style == scene.LineDashed)
	r.writeArrowhead(a, b, hex, legendArrowSize)
	r.writeText(it.Label, legendX+36, iy, "italic", 10, colorTextBlack, "start")
}

// writeText places text with its top edge at y.
func (r *SVGRenderer) writeText(text string, x, y float64, style string, size int, fill, anchor string) {
	if text == "" {
		return
	}
	weight, fontStyle := "normal", "normal"
	if strings.Contains(style, "bold") {
		weight = "bold"
	}
	if strings.Contains(style, "italic") {
		fontStyle = "italic"
	}
	fmt.Fprintf(r.buf, "<text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"%d\" font-weight=\"%s\" font-style=\"%s\" fill=\"%s\" text-anchor=\"%s\" dominant-baseline=\"hanging\">%s</text>\n",
		x, y, svgFontFamily, size, weight, fontStyle, fill, anchor, html.EscapeString(text))
}

// pngDataURI embeds a resolved icon as a base64 PNG.
func pngDataURI(img image.Image) (string, error) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return "", fmt.Errorf("failed to encode icon: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
