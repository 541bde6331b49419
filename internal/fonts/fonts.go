// Package fonts resolves the four text styles used on diagrams to TrueType
// faces. System fonts are searched first, then the Go fonts compiled into the
// binary, then the basic bitmap face.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Style is a font variant.
type Style string

const (
	Regular    Style = "regular"
	Bold       Style = "bold"
	Italic     Style = "italic"
	BoldItalic Style = "bolditalic"
)

var styles = []Style{Regular, Bold, Italic, BoldItalic}

// DefaultDirs are searched when no directories are configured.
var DefaultDirs = []string{"/usr/share/fonts/truetype"}

// candidates lists font files per style, relative to a search directory.
var candidates = map[Style][]string{
	Regular:    {"dejavu/DejaVuSans.ttf", "liberation/LiberationSans-Regular.ttf", "liberation/LiberationSans.ttf"},
	Bold:       {"dejavu/DejaVuSans-Bold.ttf", "liberation/LiberationSans-Bold.ttf"},
	Italic:     {"dejavu/DejaVuSans-Oblique.ttf", "liberation/LiberationSans-Italic.ttf"},
	BoldItalic: {"dejavu/DejaVuSans-BoldOblique.ttf", "liberation/LiberationSans-BoldItalic.ttf"},
}

var builtin = map[Style][]byte{
	Regular:    goregular.TTF,
	Bold:       gobold.TTF,
	Italic:     goitalic.TTF,
	BoldItalic: gobolditalic.TTF,
}

type faceKey struct {
	style Style
	size  float64
}

// Set holds one parsed font per style and caches faces by size.
type Set struct {
	mu      sync.Mutex
	fonts   map[Style]*truetype.Font
	sources map[Style]string
	faces   map[faceKey]font.Face
}

// Load searches dirs (DefaultDirs when empty) for system fonts. Styles with
// no system font use the regular system font if one was found, otherwise the
// built-in Go font of the same style.
func Load(dirs ...string) *Set {
	if len(dirs) == 0 {
		dirs = DefaultDirs
	}
	s := newSet()
	for _, st := range styles {
		if f, path := findSystemFont(dirs, st); f != nil {
			s.fonts[st] = f
			s.sources[st] = path
		}
	}
	systemRegular, regularSource := s.fonts[Regular], s.sources[Regular]
	for _, st := range styles {
		if s.fonts[st] != nil {
			continue
		}
		if systemRegular != nil {
			s.fonts[st] = systemRegular
			s.sources[st] = regularSource
			continue
		}
		s.setBuiltin(st)
	}
	return s
}

// Builtin returns a set backed only by the Go fonts, independent of the host.
func Builtin() *Set {
	s := newSet()
	for _, st := range styles {
		s.setBuiltin(st)
	}
	return s
}

func newSet() *Set {
	return &Set{
		fonts:   make(map[Style]*truetype.Font),
		sources: make(map[Style]string),
		faces:   make(map[faceKey]font.Face),
	}
}

func (s *Set) setBuiltin(st Style) {
	f, err := truetype.Parse(builtin[st])
	if err != nil {
		return
	}
	s.fonts[st] = f
	s.sources[st] = "builtin:go-" + string(st)
}

func findSystemFont(dirs []string, st Style) (*truetype.Font, string) {
	for _, dir := range dirs {
		for _, rel := range candidates[st] {
			path := filepath.Join(dir, rel)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			f, err := truetype.Parse(data)
			if err != nil {
				continue
			}
			return f, path
		}
	}
	return nil, ""
}

// Source reports where the font for a style came from.
func (s *Set) Source(st Style) string {
	if src, ok := s.sources[st]; ok {
		return src
	}
	return "basicfont"
}

// Face returns a face of the given pixel size. Unknown styles use regular;
// if no font could be parsed at all the basic bitmap face is returned.
func (s *Set) Face(st Style, size float64) font.Face {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.fonts[st]; !ok {
		st = Regular
	}
	key := faceKey{st, size}
	if face, ok := s.faces[key]; ok {
		return face
	}
	f := s.fonts[st]
	if f == nil {
		return basicfont.Face7x13
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	s.faces[key] = face
	return face
}

// String summarises the resolved sources, for logging.
func (s *Set) String() string {
	return fmt.Sprintf("regular=%s bold=%s italic=%s bolditalic=%s",
		s.Source(Regular), s.Source(Bold), s.Source(Italic), s.Source(BoldItalic))
}
