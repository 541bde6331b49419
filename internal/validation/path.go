// Package validation checks user-supplied file paths before the provider or
// CLI reads a scene or writes an image.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SceneExtensions are the file extensions accepted for scene files.
var SceneExtensions = []string{".hcl", ".scene", ".json"}

const writeProbe = ".archdiagram_write_test"

// hasParentSegment reports whether p walks upward through a ".." element.
// It looks at the raw path, since filepath.Clean folds ".." away.
func hasParentSegment(p string) bool {
	for _, seg := range strings.FieldsFunc(filepath.ToSlash(p), func(r rune) bool { return r == '/' }) {
		if seg == ".." {
			return true
		}
	}
	return false
}

// ValidateOutputPath checks that outputPath names a file in an existing,
// writable directory.
func ValidateOutputPath(outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if hasParentSegment(outputPath) {
		return fmt.Errorf("path traversal detected in output path: %s", outputPath)
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory: %s", absPath)
	}

	dir := filepath.Dir(absPath)
	dirInfo, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", dir)
		}
		return fmt.Errorf("failed to access output directory: %w", err)
	}
	if !dirInfo.IsDir() {
		return fmt.Errorf("output path parent is not a directory: %s", dir)
	}

	probe := filepath.Join(dir, writeProbe)
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("output directory is not writable: %s: %w", dir, err)
	}
	f.Close()
	os.Remove(probe)

	return nil
}

// ValidateInputPath checks that inputPath exists and is a directory when
// mustBeDir is set, or a regular file otherwise.
func ValidateInputPath(inputPath string, mustBeDir bool) error {
	if inputPath == "" {
		return fmt.Errorf("input path cannot be empty")
	}
	if !filepath.IsAbs(inputPath) && hasParentSegment(inputPath) {
		return fmt.Errorf("potentially unsafe path detected: %s", inputPath)
	}

	cleanPath := filepath.Clean(inputPath)
	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input path does not exist: %s", cleanPath)
		}
		return fmt.Errorf("failed to access input path: %w", err)
	}

	switch {
	case mustBeDir && !info.IsDir():
		return fmt.Errorf("input path must be a directory: %s", cleanPath)
	case !mustBeDir && info.IsDir():
		return fmt.Errorf("input path must be a file: %s", cleanPath)
	}
	return nil
}

// ValidateScenePath checks that path is an existing file with one of
// SceneExtensions.
func ValidateScenePath(path string) error {
	if err := ValidateInputPath(path, false); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SceneExtensions {
		if ext == e {
			return nil
		}
	}
	return fmt.Errorf("unsupported scene file extension %q (supported: %s)", ext, strings.Join(SceneExtensions, ", "))
}
