package renderer

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/ankek/terraform-provider-archdiagram/internal/scene"
)

// Palette of the Azure Architecture Center diagram style.
const (
	colorCanvas = "#FFFFFF"

	colorZoneGrey   = "#F2F2F2"
	colorZoneGreen  = "#F1FFF4"
	colorZoneSubtle = "#F8F8F8"

	colorBorderGrey   = "#BFBFBF"
	colorBorderGreen  = "#00B050"
	colorBorderBlue   = "#0070C0"
	colorBorderSubtle = "#A5A5A5"

	colorTextBlack = "#000000"
	colorTextGrey  = "#737373"
	colorTextWhite = "#FFFFFF"

	colorArrowBlack = "#000000"
	colorArrowBlue  = "#0070C0"
	colorArrowGreen = "#00B050"
	colorArrowGrey  = "#A5A5A5"

	colorCatBlue   = "#0078D4"
	colorCatPurple = "#5C2D91"
	colorCatTeal   = "#008272"
	colorCatOrange = "#D83B01"
	colorCatYellow = "#F2C811"
)

// zonePreset is the fill, border and dash setting of a zone style.
type zonePreset struct {
	fill   string
	border string
	dashed bool
}

var zonePresets = map[scene.ZoneStyle]zonePreset{
	scene.ZoneGrey:        {colorZoneGrey, colorBorderGrey, false},
	scene.ZoneGreen:       {colorZoneGreen, colorBorderGreen, false},
	scene.ZoneBlue:        {colorZoneGreen, colorBorderBlue, false},
	scene.ZoneSubtle:      {colorZoneSubtle, colorBorderSubtle, false},
	scene.ZoneDashed:      {colorZoneGrey, colorBorderGrey, true},
	scene.ZoneDashedGreen: {colorZoneGreen, colorBorderGreen, true},
}

// getCategoryColor returns the fallback glyph colour of a service category.
func getCategoryColor(c scene.Category) string {
	switch c {
	case scene.CategoryAI:
		return colorCatPurple
	case scene.CategoryIdentity, scene.CategorySecurity:
		return colorCatTeal
	case scene.CategoryDevOps, scene.CategoryMonitor, scene.CategoryManagement:
		return colorCatOrange
	case scene.CategoryAnalytics:
		return colorCatYellow
	default:
		return colorCatBlue
	}
}

// CategoryColor exposes the category palette to other output formats.
func CategoryColor(c scene.Category) string {
	return getCategoryColor(c)
}

// strokeColor maps a named connector colour to hex. Hex colours pass through.
func strokeColor(name string) string {
	switch name {
	case scene.ColorBlack, "":
		return colorArrowBlack
	case scene.ColorBlue:
		return colorArrowBlue
	case scene.ColorGreen:
		return colorArrowGreen
	case scene.ColorGrey:
		return colorArrowGrey
	}
	return name
}

// parseColor parses a #RRGGBB string. Malformed input yields black.
func parseColor(hexColor string) color.RGBA {
	hexColor = strings.TrimPrefix(hexColor, "#")

	var r, g, b uint8
	if len(hexColor) == 6 {
		fmt.Sscanf(hexColor, "%02x%02x%02x", &r, &g, &b)
	}

	return color.RGBA{r, g, b, 255}
}

// lightenColor lightens a hex color by a percentage
func lightenColor(hexColor string, percent int) string {
	hexColor = strings.TrimPrefix(hexColor, "#")
	if len(hexColor) != 6 {
		return "#FFFFFF"
	}

	r, _ := strconv.ParseInt(hexColor[0:2], 16, 64)
	g, _ := strconv.ParseInt(hexColor[2:4], 16, 64)
	b, _ := strconv.ParseInt(hexColor[4:6], 16, 64)

	factor := float64(percent) / 100.0
	r = int64(float64(r) + (255-float64(r))*factor)
	g = int64(float64(g) + (255-float64(g))*factor)
	b = int64(float64(b) + (255-float64(b))*factor)

	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
