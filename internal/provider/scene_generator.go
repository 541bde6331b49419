// Package provider implements the Terraform provider for archdiagram.
// The archdiagram_scene resource and data source both render a scene file
// to an image through the shared SceneGenerator.
package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/ankek/terraform-provider-archdiagram/internal/fonts"
	"github.com/ankek/terraform-provider-archdiagram/internal/icons"
	"github.com/ankek/terraform-provider-archdiagram/internal/renderer"
	"github.com/ankek/terraform-provider-archdiagram/internal/scenefile"
	"github.com/ankek/terraform-provider-archdiagram/internal/validation"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// SceneGenerator loads, renders and writes scene files. It is shared between
// the resource and data source implementations.
type SceneGenerator struct {
	icons    *icons.Resolver
	fontDirs []string
}

// NewSceneGenerator returns a generator drawing icons from resolver. A nil
// resolver renders every service as a fallback glyph.
func NewSceneGenerator(resolver *icons.Resolver, fontDirs []string) *SceneGenerator {
	return &SceneGenerator{icons: resolver, fontDirs: fontDirs}
}

// SceneConfig contains all configuration needed to render a scene
type SceneConfig struct {
	ScenePath  string
	OutputPath string
	Format     string // empty selects the format from the output extension
	Variables  map[string]string
	ShowGrid   bool
}

// GenerateResult contains the results of scene rendering
type GenerateResult struct {
	ServiceCount  int64
	OutputPath    string
	Format        string
	ContentSHA256 string
}

// Generate renders cfg.ScenePath to cfg.OutputPath.
//
// It performs the following steps:
//  1. Validates the scene and output paths
//  2. Loads the scene file with the given variables
//  3. Renders it and writes the image
//  4. Hashes the written file
func (g *SceneGenerator) Generate(ctx context.Context, cfg SceneConfig) (*GenerateResult, error) {
	if err := validation.ValidateOutputPath(cfg.OutputPath); err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}
	if err := validation.ValidateScenePath(cfg.ScenePath); err != nil {
		return nil, fmt.Errorf("invalid scene path: %w", err)
	}

	format := cfg.Format
	if format == "" {
		format = renderer.FormatFromPath(cfg.OutputPath)
	}
	format, err := renderer.NormalizeFormat(format)
	if err != nil {
		return nil, err
	}

	d, err := scenefile.Load(ctx, cfg.ScenePath, scenefile.StringVars(cfg.Variables))
	if err != nil {
		return nil, err
	}

	tflog.Debug(ctx, "rendering scene", map[string]interface{}{
		"scene":    cfg.ScenePath,
		"output":   cfg.OutputPath,
		"format":   format,
		"services": len(d.Services()),
	})

	// Font faces are not safe for concurrent use, so each render gets its own set.
	r := renderer.New(g.icons, fonts.Load(g.fontDirs...))
	opts := renderer.RenderOptions{Format: format, ShowGrid: cfg.ShowGrid}
	if err := r.RenderFile(ctx, d, cfg.OutputPath, opts); err != nil {
		return nil, err
	}

	sum, err := fileSHA256(cfg.OutputPath)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		ServiceCount:  int64(len(d.Services())),
		OutputPath:    cfg.OutputPath,
		Format:        format,
		ContentSHA256: sum,
	}, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// outputID derives a stable identifier from the output path.
func outputID(outputPath string) string {
	sum := sha256.Sum256([]byte(outputPath))
	return hex.EncodeToString(sum[:8])
}
