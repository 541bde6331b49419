package renderer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/jpeg"
	"image/png"
	"math"
)

const pngHeaderLen = 8 + 25 // signature + IHDR chunk

// encodePNG encodes img and adds a pHYs chunk for dpi and, when title is
// set, a tEXt Title chunk. No timestamps are written.
func encodePNG(img image.Image, dpi int, title string) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	data := buf.Bytes()
	if len(data) < pngHeaderLen {
		return nil, fmt.Errorf("encoded PNG too short")
	}

	var extra []byte
	if dpi > 0 {
		extra = append(extra, physChunk(dpi)...)
	}
	if title != "" {
		extra = append(extra, pngChunk("tEXt", append([]byte("Title\x00"), latin1(title)...))...)
	}
	if len(extra) == 0 {
		return data, nil
	}

	out := make([]byte, 0, len(data)+len(extra))
	out = append(out, data[:pngHeaderLen]...)
	out = append(out, extra...)
	out = append(out, data[pngHeaderLen:]...)
	return out, nil
}

// physChunk stores dpi as pixels per metre on both axes.
func physChunk(dpi int) []byte {
	ppm := uint32(math.Round(float64(dpi) / 0.0254))
	body := make([]byte, 9)
	binary.BigEndian.PutUint32(body[0:4], ppm)
	binary.BigEndian.PutUint32(body[4:8], ppm)
	body[8] = 1 // unit: metre
	return pngChunk("pHYs", body)
}

func pngChunk(typ string, body []byte) []byte {
	chunk := make([]byte, 0, 12+len(body))
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(body)))
	chunk = append(chunk, typ...)
	chunk = append(chunk, body...)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(body)
	return binary.BigEndian.AppendUint32(chunk, crc.Sum32())
}

// latin1 maps text to ISO 8859-1 as tEXt requires, replacing other runes with '?'.
func latin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF || r == 0 {
			out = append(out, '?')
			continue
		}
		out = append(out, byte(r))
	}
	return out
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = 95
	}
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
