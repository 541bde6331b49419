// Package interfaces defines the seams the CLI and provider depend on, so
// rendering and blueprint backends can be swapped in tests.
package interfaces

import (
	"context"

	"github.com/ankek/terraform-provider-archdiagram/internal/blueprint"
	"github.com/ankek/terraform-provider-archdiagram/internal/renderer"
	"github.com/ankek/terraform-provider-archdiagram/internal/scene"
)

// SceneRenderer writes a diagram to an image file.
type SceneRenderer interface {
	RenderFile(ctx context.Context, d *scene.Diagram, outputPath string, opts renderer.RenderOptions) error
}

// BlueprintRenderer lays out a blueprint document and returns the written path.
type BlueprintRenderer interface {
	Render(ctx context.Context, doc *blueprint.Document, output, format string) (string, error)
}
