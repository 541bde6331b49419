// Command archdiagram renders architecture scene files, prepares the icon
// cache, lays out blueprints with Graphviz and writes node type references.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ankek/terraform-provider-archdiagram/internal/blueprint"
	"github.com/ankek/terraform-provider-archdiagram/internal/fonts"
	"github.com/ankek/terraform-provider-archdiagram/internal/icons"
	"github.com/ankek/terraform-provider-archdiagram/internal/interfaces"
	"github.com/ankek/terraform-provider-archdiagram/internal/logger"
	"github.com/ankek/terraform-provider-archdiagram/internal/noderef"
	"github.com/ankek/terraform-provider-archdiagram/internal/nodetype"
	"github.com/ankek/terraform-provider-archdiagram/internal/renderer"
	"github.com/ankek/terraform-provider-archdiagram/internal/scenefile"
	"github.com/ankek/terraform-provider-archdiagram/internal/validation"
)

const usage = `archdiagram - cloud architecture diagrams

Usage:
  archdiagram <command> [options]

Commands:
  render     Render a scene file to PNG, JPEG or SVG
  icons      Download and prepare the Azure icon cache
  blueprint  Lay out a JSON/YAML blueprint with Graphviz
  noderefs   Write markdown references of the registered node types
  help       Show this help

Examples:
  archdiagram icons
  archdiagram render app.hcl -o app.png -var env=prod
  archdiagram blueprint -example aws -format svg
  archdiagram blueprint -json spec.json -output arch -direction TB
  archdiagram noderefs -all -output-dir references

Use "archdiagram <command> -h" for more information about a command.
`

type app struct {
	stdout io.Writer
	stderr io.Writer

	sceneRenderer     func(resolver *icons.Resolver, fontDirs []string) interfaces.SceneRenderer
	blueprintRenderer func(resolver *icons.Resolver) interfaces.BlueprintRenderer
	registry          *nodetype.Registry
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		sceneRenderer: func(resolver *icons.Resolver, fontDirs []string) interfaces.SceneRenderer {
			return renderer.New(resolver, fonts.Load(fontDirs...))
		},
		blueprintRenderer: func(resolver *icons.Resolver) interfaces.BlueprintRenderer {
			return blueprint.NewRenderer(nodetype.Default, resolver)
		},
		registry: nodetype.Default,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := newApp(os.Stdout, os.Stderr).run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func (a *app) run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		fmt.Fprint(a.stderr, usage)
		return 1
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "render":
		err = a.cmdRender(ctx, rest)
	case "icons":
		err = a.cmdIcons(ctx, rest)
	case "blueprint":
		err = a.cmdBlueprint(ctx, rest)
	case "noderefs":
		err = a.cmdNodeRefs(ctx, rest)
	case "-h", "--help", "help":
		fmt.Fprint(a.stdout, usage)
		return 0
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(a.stderr, usage)
		return 1
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// logFlags registers the logging flags shared by every subcommand.
type logFlags struct {
	level  string
	format string
}

func (l *logFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&l.level, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&l.format, "log-format", "text", "log format: text or json")
}

func (l *logFlags) logger(w io.Writer) (*slog.Logger, error) {
	return logger.New(logger.Options{Level: l.level, Format: l.format, Output: w})
}

func (a *app) flagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: archdiagram %s\n\nOptions:\n", synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// parseInterspersed parses fs, allowing positional arguments before flags.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// varFlags collects repeated -var name=value flags.
type varFlags map[string]string

func (v varFlags) String() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k+"="+v[k])
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func (v varFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	v[name] = value
	return nil
}

// stringList collects a repeated string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func loadResolver(dir string, log *slog.Logger) *icons.Resolver {
	resolver, err := icons.LoadResolver(dir)
	if err != nil {
		log.Warn("icon index unreadable, using fallback glyphs", "dir", dir, "error", err)
	}
	log.Debug("icon resolver loaded", "dir", dir, "icons", resolver.Len())
	return resolver
}

func (a *app) cmdRender(ctx context.Context, args []string) error {
	fs := a.flagSet("render", "render <scene-file> [options]")
	var lf logFlags
	lf.register(fs)
	output := fs.String("o", "", "output image path (default: scene name with the format extension)")
	format := fs.String("format", "", "output format: png, jpeg or svg (default: from -o, else png)")
	grid := fs.Bool("grid", false, "draw a 100px placement grid")
	iconDir := fs.String("icons", icons.DefaultCacheDir(), "icon cache directory")
	vars := varFlags{}
	fs.Var(vars, "var", "scene variable as name=value (repeatable)")
	var fontDirs stringList
	fs.Var(&fontDirs, "fonts", "extra font directory (repeatable)")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly one scene file")
	}
	scenePath := positional[0]

	log, err := lf.logger(a.stderr)
	if err != nil {
		return err
	}
	if err := validation.ValidateScenePath(scenePath); err != nil {
		return err
	}

	f := *format
	if f == "" && *output != "" {
		f = renderer.FormatFromPath(*output)
	}
	f, err = renderer.NormalizeFormat(f)
	if err != nil {
		return err
	}
	out := *output
	if out == "" {
		out = strings.TrimSuffix(scenePath, filepath.Ext(scenePath)) + "." + f
	}
	if err := validation.ValidateOutputPath(out); err != nil {
		return err
	}

	d, err := scenefile.Load(ctx, scenePath, scenefile.StringVars(vars))
	if err != nil {
		return err
	}

	r := a.sceneRenderer(loadResolver(*iconDir, log), fontDirs)
	if err := r.RenderFile(ctx, d, out, renderer.RenderOptions{Format: f, ShowGrid: *grid}); err != nil {
		return err
	}
	log.Info("rendered scene", "scene", scenePath, "output", out, "format", f, "services", len(d.Services()))
	fmt.Fprintf(a.stdout, "Written: %s\n", out)
	return nil
}

func (a *app) cmdIcons(ctx context.Context, args []string) error {
	fs := a.flagSet("icons", "icons [--list] [--force] [options]")
	var lf logFlags
	lf.register(fs)
	defaults := icons.DefaultSetupOptions()
	list := fs.Bool("list", false, "list cached icons instead of preparing them")
	force := fs.Bool("force", false, "download and convert again even when the cache exists")
	dir := fs.String("dir", defaults.Dir, "icon cache directory")
	url := fs.String("url", defaults.URL, "icon pack URL")
	size := fs.Int("size", defaults.Size, "PNG edge length in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, err := lf.logger(a.stderr)
	if err != nil {
		return err
	}

	if *list {
		idx, err := icons.LoadIndex(filepath.Join(*dir, icons.IndexFile))
		if err != nil {
			return err
		}
		if len(idx) == 0 {
			fmt.Fprintln(a.stdout, "No icons cached. Run 'archdiagram icons' first.")
			return nil
		}
		fmt.Fprintf(a.stdout, "Available icons (%d/%d):\n", idx.Available(), len(idx))
		return icons.List(a.stdout, idx)
	}

	opts := defaults
	opts.Dir = *dir
	opts.URL = *url
	opts.Size = *size
	opts.Force = *force
	opts.Logger = log

	idx, err := icons.Setup(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Icon cache ready: %d/%d icons in %s\n", idx.Available(), len(icons.Catalog), *dir)
	return nil
}

func (a *app) cmdBlueprint(ctx context.Context, args []string) error {
	fs := a.flagSet("blueprint", "blueprint [-json spec.json | -example name] [options]")
	var lf logFlags
	lf.register(fs)
	specPath := fs.String("json", "", "blueprint file (.json, .yaml or .yml)")
	example := fs.String("example", "", "built-in example: "+strings.Join(blueprint.ExampleNames(), ", "))
	output := fs.String("output", "cloud_architecture", "output filename without extension")
	format := fs.String("format", "png", "output format: "+strings.Join(blueprint.Formats, ", "))
	direction := fs.String("direction", "LR", "layout direction: "+strings.Join(blueprint.Directions, ", "))
	iconDir := fs.String("icons", icons.DefaultCacheDir(), "icon cache directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, err := lf.logger(a.stderr)
	if err != nil {
		return err
	}
	directionSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "direction" {
			directionSet = true
		}
	})

	var doc *blueprint.Document
	switch {
	case *specPath != "" && *example != "":
		return fmt.Errorf("-json and -example are mutually exclusive")
	case *specPath != "":
		doc, err = blueprint.Load(*specPath)
		if err != nil {
			return err
		}
		if doc.Direction == "" {
			doc.Direction = *direction
		}
	default:
		name := *example
		if name == "" {
			name = "azure"
		}
		var ok bool
		doc, ok = blueprint.Example(name)
		if !ok {
			return fmt.Errorf("unknown example %q (available: %s)", name, strings.Join(blueprint.ExampleNames(), ", "))
		}
		if directionSet || doc.Direction == "" {
			doc.Direction = *direction
		}
	}

	if err := doc.Validate(a.registry); err != nil {
		return err
	}

	path, err := a.blueprintRenderer(loadResolver(*iconDir, log)).Render(ctx, doc, *output, *format)
	if err != nil {
		return err
	}
	log.Info("rendered blueprint", "title", doc.Title, "nodes", len(doc.AllNodes()), "edges", len(doc.Edges), "output", path)
	fmt.Fprintf(a.stdout, "Diagram saved: %s\n", path)
	return nil
}

func (a *app) cmdNodeRefs(ctx context.Context, args []string) error {
	fs := a.flagSet("noderefs", "noderefs (-provider name | -all | -all-providers) [-output-dir dir]")
	var lf logFlags
	lf.register(fs)
	provider := fs.String("provider", "", "single provider, e.g. aws or gcp")
	all := fs.Bool("all", false, "default providers: "+strings.Join(nodetype.DefaultProviders, ", "))
	allProviders := fs.Bool("all-providers", false, "every known provider")
	outDir := fs.String("output-dir", "references", "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, err := lf.logger(a.stderr)
	if err != nil {
		return err
	}

	var providers []string
	switch {
	case *allProviders:
		providers = nodetype.KnownProviders
	case *all:
		providers = nodetype.DefaultProviders
	case *provider != "":
		providers = []string{*provider}
	default:
		fs.Usage()
		return fmt.Errorf("specify -provider <name>, -all, or -all-providers")
	}

	results, err := noderef.Generate(ctx, a.registry, providers, *outDir, log)
	for _, r := range results {
		fmt.Fprintf(a.stdout, "%s: %d nodes across %d modules -> %s\n", r.Provider, r.Types, r.Modules, r.Path)
	}
	return err
}
