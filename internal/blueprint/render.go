package blueprint

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ankek/terraform-provider-archdiagram/internal/icons"
	"github.com/ankek/terraform-provider-archdiagram/internal/nodetype"
)

// Output formats. FormatDOT writes the graph source without running Graphviz.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatPNG, FormatSVG, FormatPDF, FormatDOT}

// Renderer lays out blueprints with Graphviz.
type Renderer struct {
	Registry *nodetype.Registry
	Icons    *icons.Resolver
	// DotPath is the Graphviz binary, "dot" on PATH when empty.
	DotPath string
}

// NewRenderer returns a renderer over reg. A nil resolver draws every node as a box.
func NewRenderer(reg *nodetype.Registry, resolver *icons.Resolver) *Renderer {
	if reg == nil {
		reg = nodetype.Default
	}
	return &Renderer{Registry: reg, Icons: resolver}
}

// Render writes doc to output.<format> and returns the written path.
func (r *Renderer) Render(ctx context.Context, doc *Document, output, format string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if !validFormat(format) {
		return "", fmt.Errorf("unsupported format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
	if output == "" {
		return "", fmt.Errorf("output path cannot be empty")
	}

	src, err := GenerateDOT(doc, r.Registry, r.Icons)
	if err != nil {
		return "", fmt.Errorf("invalid blueprint: %w", err)
	}

	path := output + "." + format
	if format == FormatDOT {
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		return path, nil
	}

	dot, err := r.dotBinary()
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, dot, "-T"+format, "-o", path)
	cmd.Stdin = strings.NewReader(src)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("graphviz failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return path, nil
}

func (r *Renderer) dotBinary() (string, error) {
	name := r.DotPath
	if name == "" {
		name = "dot"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("graphviz %q not found, install graphviz to render blueprints: %w", name, err)
	}
	return path, nil
}

func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
