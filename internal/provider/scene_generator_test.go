package provider

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testScene = `
diagram {
  title  = var.title
  width  = 800
  height = 500
}

zone "app" {
  label  = "Application"
  x      = 40
  y      = 40
  width  = 700
  height = 300
}

service "web" {
  label = "Web App"
  icon  = "app-service"
  x     = 200
  y     = 180
}

service "db" {
  label    = "Azure SQL"
  icon     = "sql-database"
  category = "databases"
  x        = 500
  y        = 180
}

connector {
  from = "web"
  to   = "db"
}
`

func writeScene(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "app.hcl")
	if err := os.WriteFile(path, []byte(testScene), 0644); err != nil {
		t.Fatalf("Failed to create test scene file: %v", err)
	}
	return path
}

func TestSceneGenerator_Generate(t *testing.T) {
	tmpDir := t.TempDir()
	scenePath := writeScene(t, tmpDir)
	vars := map[string]string{"title": "App"}

	generator := NewSceneGenerator(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name       string
		config     SceneConfig
		wantFormat string
		wantErr    bool
	}{
		{
			name: "png from extension",
			config: SceneConfig{
				ScenePath:  scenePath,
				OutputPath: filepath.Join(tmpDir, "diagram.png"),
				Variables:  vars,
			},
			wantFormat: "png",
		},
		{
			name: "explicit svg",
			config: SceneConfig{
				ScenePath:  scenePath,
				OutputPath: filepath.Join(tmpDir, "diagram.out"),
				Format:     "svg",
				Variables:  vars,
				ShowGrid:   true,
			},
			wantFormat: "svg",
		},
		{
			name: "jpg alias",
			config: SceneConfig{
				ScenePath:  scenePath,
				OutputPath: filepath.Join(tmpDir, "diagram.jpg"),
				Variables:  vars,
			},
			wantFormat: "jpeg",
		},
		{
			name: "missing variable",
			config: SceneConfig{
				ScenePath:  scenePath,
				OutputPath: filepath.Join(tmpDir, "diagram.png"),
			},
			wantErr: true,
		},
		{
			name: "invalid output path",
			config: SceneConfig{
				ScenePath:  scenePath,
				OutputPath: "/nonexistent/directory/diagram.png",
				Variables:  vars,
			},
			wantErr: true,
		},
		{
			name: "non-existent scene file",
			config: SceneConfig{
				ScenePath:  filepath.Join(tmpDir, "missing.hcl"),
				OutputPath: filepath.Join(tmpDir, "diagram.png"),
			},
			wantErr: true,
		},
		{
			name: "unsupported format",
			config: SceneConfig{
				ScenePath:  scenePath,
				OutputPath: filepath.Join(tmpDir, "diagram.png"),
				Format:     "gif",
				Variables:  vars,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := generator.Generate(ctx, tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if result.ServiceCount != 2 {
				t.Errorf("ServiceCount = %d, want 2", result.ServiceCount)
			}
			if result.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", result.Format, tt.wantFormat)
			}

			data, err := os.ReadFile(tt.config.OutputPath)
			if err != nil {
				t.Fatalf("output file not created: %v", err)
			}
			sum := sha256.Sum256(data)
			if result.ContentSHA256 != hex.EncodeToString(sum[:]) {
				t.Error("ContentSHA256 does not match the written file")
			}
		})
	}
}

func TestSceneGenerator_Deterministic(t *testing.T) {
	tmpDir := t.TempDir()
	scenePath := writeScene(t, tmpDir)
	generator := NewSceneGenerator(nil, nil)

	var sums []string
	var contents [][]byte
	for _, name := range []string{"a.png", "b.png"} {
		out := filepath.Join(tmpDir, name)
		result, err := generator.Generate(context.Background(), SceneConfig{
			ScenePath:  scenePath,
			OutputPath: out,
			Variables:  map[string]string{"title": "App"},
		})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		sums = append(sums, result.ContentSHA256)
		data, _ := os.ReadFile(out)
		contents = append(contents, data)
	}

	if sums[0] != sums[1] || !bytes.Equal(contents[0], contents[1]) {
		t.Error("rendering the same scene twice produced different images")
	}
}

func TestSceneGenerator_ContextCancellation(t *testing.T) {
	tmpDir := t.TempDir()
	scenePath := writeScene(t, tmpDir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSceneGenerator(nil, nil).Generate(ctx, SceneConfig{
		ScenePath:  scenePath,
		OutputPath: filepath.Join(tmpDir, "diagram.png"),
		Variables:  map[string]string{"title": "App"},
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestOutputID(t *testing.T) {
	a := outputID("/tmp/a.png")
	if len(a) != 16 {
		t.Errorf("outputID length = %d, want 16", len(a))
	}
	if a != outputID("/tmp/a.png") {
		t.Error("outputID is not stable")
	}
	if a == outputID("/tmp/b.png") {
		t.Error("different paths share an id")
	}
}
