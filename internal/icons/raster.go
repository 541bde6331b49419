package icons

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// decodeFile decodes a raster file, or rasterises an SVG at size.
func decodeFile(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return RasterizeSVG(f, size)
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon %s: %w", path, err)
	}
	return img, nil
}

// RasterizeSVG renders an SVG document into a transparent size x size image,
// preserving aspect ratio and centring the drawing.
func RasterizeSVG(r io.Reader, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", size)
	}
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = float64(size), float64(size)
	}
	scale := float64(size) / w
	if sy := float64(size) / h; sy < scale {
		scale = sy
	}
	dw, dh := w*scale, h*scale
	icon.SetTarget((float64(size)-dw)/2, (float64(size)-dh)/2, dw, dh)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return dst, nil
}

// Resize scales img to size x size with Catmull-Rom interpolation. Images
// already at that size are returned unchanged.
func Resize(img image.Image, size int) image.Image {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// ConvertSVGFile rasterises an SVG file to a PNG file of size x size.
func ConvertSVGFile(svgPath, pngPath string, size int) error {
	data, err := os.ReadFile(svgPath)
	if err != nil {
		return err
	}
	img, err := RasterizeSVG(bytes.NewReader(data), size)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(svgPath), err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return os.WriteFile(pngPath, buf.Bytes(), 0644)
}
