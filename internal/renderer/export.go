package renderer

import (
	"context"
	"fmt"

	"github.com/ankek/terraform-provider-archdiagram/internal/scene"
)

// RenderFile renders d and writes it to outputPath. An empty format is taken
// from the file extension.
func (r *Renderer) RenderFile(ctx context.Context, d *scene.Diagram, outputPath string, opts RenderOptions) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if opts.Format == "" {
		opts.Format = FormatFromPath(outputPath)
	}

	data, err := r.Render(d, opts)
	if err != nil {
		return fmt.Errorf("failed to render diagram: %w", err)
	}

	return writeFile(outputPath, data)
}
