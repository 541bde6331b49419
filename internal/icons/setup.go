package icons

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultPackURL is the official Azure architecture icon pack.
	DefaultPackURL = "https://arch-center.azureedge.net/icons/Azure_Public_Service_Icons_V21.zip"

	// DefaultSize is the edge length of prepared PNG icons.
	DefaultSize = 64

	// MinPackSize is the size below which a cached or downloaded zip is treated as broken.
	MinPackSize = 100000

	packFile = "azure-icons.zip"
	svgDir   = "svg"
	pngDir   = "png"

	// EnvCacheDir overrides the default cache directory.
	EnvCacheDir = "ARCHDIAGRAM_ICON_DIR"
)

// DefaultCacheDir returns $ARCHDIAGRAM_ICON_DIR, or a directory under the
// user cache directory.
func DefaultCacheDir() string {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "archdiagram", "azure-icons")
}

// SetupOptions configures Setup.
type SetupOptions struct {
	Dir    string
	URL    string
	Size   int
	Force  bool
	Logger *slog.Logger

	// RetryMax bounds download retries.
	RetryMax int
}

// DefaultSetupOptions returns options for the default cache directory.
func DefaultSetupOptions() SetupOptions {
	return SetupOptions{
		Dir:      DefaultCacheDir(),
		URL:      DefaultPackURL,
		Size:     DefaultSize,
		RetryMax: 3,
	}
}

// Setup prepares the icon cache: it fetches the pack, flattens its SVGs,
// converts every catalog key to PNG and writes the index. An existing index is
// reused unless Force is set. A failed download is logged and yields an empty
// index so diagrams fall back to glyphs.
func Setup(ctx context.Context, opts SetupOptions) (Index, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if opts.Dir == "" {
		opts.Dir = DefaultCacheDir()
	}
	if opts.URL == "" {
		opts.URL = DefaultPackURL
	}
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve icon cache dir: %w", err)
	}
	indexPath := filepath.Join(dir, IndexFile)

	if !opts.Force {
		if _, err := os.Stat(indexPath); err == nil {
			idx, err := LoadIndex(indexPath)
			if err != nil {
				return nil, err
			}
			log.Info("icon cache ready", "available", idx.Available(), "catalog", len(Catalog), "dir", dir)
			return idx, nil
		}
	}

	for _, sub := range []string{dir, filepath.Join(dir, svgDir), filepath.Join(dir, pngDir)} {
		if err := os.MkdirAll(sub, 0755); err != nil {
			return nil, fmt.Errorf("failed to create icon cache dir: %w", err)
		}
	}

	zipPath, err := fetchPack(ctx, dir, opts, log)
	if err != nil {
		log.Warn("icon download failed, fallback glyphs will be used", "url", opts.URL, "error", err)
		return Index{}, nil
	}

	n, err := extractSVGs(zipPath, filepath.Join(dir, svgDir))
	if err != nil {
		return nil, err
	}
	log.Info("extracted SVG icons", "count", n)

	idx := make(Index, len(Catalog))
	for _, key := range CatalogKeys() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx[key] = ""
		svgPath, ok := ResolveSVG(key, filepath.Join(dir, svgDir))
		if !ok {
			log.Debug("no SVG for icon key", "key", key)
			continue
		}
		pngPath := filepath.Join(dir, pngDir, key+".png")
		if _, err := os.Stat(pngPath); err != nil || opts.Force {
			if err := ConvertSVGFile(svgPath, pngPath, opts.Size); err != nil {
				log.Warn("icon conversion failed", "key", key, "error", err)
				continue
			}
		}
		idx[key] = pngPath
	}

	if err := WriteIndex(indexPath, idx); err != nil {
		return nil, err
	}
	log.Info("icon setup complete", "available", idx.Available(), "catalog", len(Catalog))
	return idx, nil
}

// fetchPack returns a usable zip, downloading it when the cached copy is
// missing or too small.
func fetchPack(ctx context.Context, dir string, opts SetupOptions, log *slog.Logger) (string, error) {
	zipPath := filepath.Join(dir, packFile)
	if info, err := os.Stat(zipPath); err == nil && info.Size() > MinPackSize {
		log.Info("icon pack already cached", "bytes", info.Size())
		return zipPath, nil
	}

	log.Info("downloading icon pack", "url", opts.URL)

	client := retryablehttp.NewClient()
	client.RetryMax = opts.RetryMax
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", opts.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download icon pack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("icon pack download returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(dir, packFile+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("failed to save icon pack: %w", err)
	}
	if written <= MinPackSize {
		return "", fmt.Errorf("icon pack too small (%d bytes)", written)
	}
	if err := os.Rename(tmp.Name(), zipPath); err != nil {
		return "", fmt.Errorf("failed to store icon pack: %w", err)
	}
	log.Info("downloaded icon pack", "bytes", written)
	return zipPath, nil
}

// extractSVGs copies every .svg in the archive into dst, flattening
// directories. Existing files are kept.
func extractSVGs(zipPath, dst string) (int, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open icon pack: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".svg") {
			continue
		}
		target := filepath.Join(dst, filepath.Base(f.Name))
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := copyZipFile(f, target); err != nil {
			return 0, err
		}
	}

	matches, err := filepath.Glob(filepath.Join(dst, "*.svg"))
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

func copyZipFile(f *zip.File, target string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	defer src.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return out.Close()
}

// ResolveSVG finds the SVG for a catalog key in dir: the pattern as an exact
// file name first, then the first sorted file name containing it.
func ResolveSVG(key, dir string) (string, bool) {
	entry, ok := Catalog[key]
	if !ok {
		return "", false
	}

	exact := filepath.Join(dir, entry.Pattern)
	if info, err := os.Stat(exact); err == nil && !info.IsDir() {
		return exact, true
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	if err != nil {
		return "", false
	}
	sort.Strings(matches)
	for _, m := range matches {
		if strings.Contains(filepath.Base(m), entry.Pattern) {
			return m, true
		}
	}
	return "", false
}

// List writes one line per index key with its availability and category.
func List(w io.Writer, idx Index) error {
	for _, key := range idx.Keys() {
		status := "✗"
		if idx[key] != "" {
			status = "✓"
		}
		category := "unknown"
		if e, ok := Catalog[key]; ok {
			category = string(e.Category)
		}
		if _, err := fmt.Fprintf(w, "  %s %-25s [%s]\n", status, key, category); err != nil {
			return err
		}
	}
	return nil
}
