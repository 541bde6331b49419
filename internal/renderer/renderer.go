// Package renderer draws a scene.Diagram to PNG, JPEG or SVG.
//
// Elements are painted in a fixed order: zones, section headers, connectors,
// services, actors, annotations, the platform bar and the legend. Output is
// deterministic: the same diagram always encodes to the same bytes.
package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ankek/terraform-provider-archdiagram/internal/fonts"
	"github.com/ankek/terraform-provider-archdiagram/internal/icons"
	"github.com/ankek/terraform-provider-archdiagram/internal/scene"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatSVG  = "svg"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatPNG, FormatJPEG, FormatSVG}

// RenderOptions contains configuration for rendering
type RenderOptions struct {
	Format      string // "png", "jpeg" or "svg"; empty means png
	ShowGrid    bool   // light 100px grid for placing elements
	Background  string // #RRGGBB, default white
	JPEGQuality int
}

func (o RenderOptions) background() string {
	if o.Background == "" {
		return colorCanvas
	}
	return o.Background
}

// NormalizeFormat maps a format name to one of Formats.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unsupported format: %s (supported: png, jpeg, svg)", format)
}

// FormatFromPath picks a format from a file extension, defaulting to png.
func FormatFromPath(path string) string {
	f, err := NormalizeFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatPNG
	}
	return f
}

// Renderer encodes diagrams using an injected icon resolver and font set.
type Renderer struct {
	icons *icons.Resolver
	fonts *fonts.Set
}

// New returns a renderer. A nil resolver draws fallback glyphs for every
// service; a nil font set uses system fonts with the built-in fallback.
func New(resolver *icons.Resolver, fontSet *fonts.Set) *Renderer {
	if fontSet == nil {
		fontSet = fonts.Load()
	}
	return &Renderer{icons: resolver, fonts: fontSet}
}

// Render encodes d in the requested format.
func (r *Renderer) Render(d *scene.Diagram, opts RenderOptions) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("diagram cannot be nil")
	}
	format, err := NormalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	if opts.Background != "" {
		if _, err := scene.ParseColor(opts.Background); err != nil || !strings.HasPrefix(opts.Background, "#") {
			return nil, fmt.Errorf("invalid background colour %q", opts.Background)
		}
	}

	if format == FormatSVG {
		return NewSVGRenderer(r.icons, opts).Render(d)
	}

	img := NewRasterRenderer(r.icons, r.fonts, opts).Render(d)
	if format == FormatJPEG {
		return encodeJPEG(img, opts.JPEGQuality)
	}
	return encodePNG(img, d.DPI, d.Title)
}
