// Package noderef writes markdown reference pages listing the node types of
// each provider in a nodetype.Registry.
package noderef

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ankek/terraform-provider-archdiagram/internal/nodetype"
)

// Markdown renders the reference page of one provider.
func Markdown(provider string, modules map[string][]string) string {
	display := nodetype.DisplayName(provider)
	total := 0
	names := make([]string, 0, len(modules))
	for m, types := range modules {
		total += len(types)
		names = append(names, m)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Node Reference\n\n", display)
	fmt.Fprintf(&b, "Complete list of available %s node types in the blueprint registry.\n", display)
	fmt.Fprintf(&b, "Use: `\"type\": \"%s.<module>.<Name>\"`\n\n", provider)
	fmt.Fprintf(&b, "**Total: %d node types across %d modules**\n\n", total, len(modules))

	for _, m := range names {
		fmt.Fprintf(&b, "## %s.%s\n\n", provider, m)
		types := append([]string(nil), modules[m]...)
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(&b, "- `%s`\n", t)
		}
		b.WriteString("\n")
	}
	// Sections are blank-line separated; the page ends with a single newline.
	return strings.TrimSuffix(b.String(), "\n")
}

// Result describes one written reference file.
type Result struct {
	Provider string
	Path     string
	Types    int
	Modules  int
}

// Generate writes <provider>-nodes.md into dir for each provider that has
// registered types. Providers without types are skipped with a warning.
func Generate(ctx context.Context, reg *nodetype.Registry, providers []string, dir string, log *slog.Logger) ([]Result, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var results []Result
	for _, p := range providers {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		if !nodetype.IsKnownProvider(p) {
			return results, fmt.Errorf("unknown provider %q", p)
		}
		modules := reg.Modules(p)
		if len(modules) == 0 {
			log.Warn("provider has no registered node types, skipping", "provider", p)
			continue
		}

		path := filepath.Join(dir, p+"-nodes.md")
		if err := os.WriteFile(path, []byte(Markdown(p, modules)), 0644); err != nil {
			return results, fmt.Errorf("failed to write %s: %w", path, err)
		}

		res := Result{Provider: p, Path: path, Modules: len(modules)}
		for _, types := range modules {
			res.Types += len(types)
		}
		log.Info("wrote node reference", "provider", p, "types", res.Types, "modules", res.Modules, "path", path)
		results = append(results, res)
	}
	return results, nil
}
