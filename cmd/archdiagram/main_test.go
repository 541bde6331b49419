package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ankek/terraform-provider-archdiagram/internal/blueprint"
	"github.com/ankek/terraform-provider-archdiagram/internal/fonts"
	"github.com/ankek/terraform-provider-archdiagram/internal/icons"
	"github.com/ankek/terraform-provider-archdiagram/internal/interfaces"
	"github.com/ankek/terraform-provider-archdiagram/internal/renderer"
)

type fakeBlueprintRenderer struct {
	doc    *blueprint.Document
	output string
	format string
}

func (f *fakeBlueprintRenderer) Render(ctx context.Context, doc *blueprint.Document, output, format string) (string, error) {
	f.doc, f.output, f.format = doc, output, format
	return output + "." + format, nil
}

func testApp(t *testing.T) (*app, *bytes.Buffer, *bytes.Buffer, *fakeBlueprintRenderer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := newApp(&stdout, &stderr)
	a.sceneRenderer = func(resolver *icons.Resolver, _ []string) interfaces.SceneRenderer {
		return renderer.New(resolver, fonts.Builtin())
	}
	fake := &fakeBlueprintRenderer{}
	a.blueprintRenderer = func(*icons.Resolver) interfaces.BlueprintRenderer { return fake }
	return a, &stdout, &stderr, fake
}

func TestRunDispatch(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{name: "no arguments", args: nil, wantCode: 1},
		{name: "help", args: []string{"help"}, wantCode: 0, wantOut: "Commands:"},
		{name: "dash help", args: []string{"--help"}, wantCode: 0, wantOut: "noderefs"},
		{name: "unknown command", args: []string{"draw"}, wantCode: 1},
		{name: "subcommand help", args: []string{"render", "-h"}, wantCode: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, stdout, _, _ := testApp(t)
			if code := a.run(context.Background(), tt.args); code != tt.wantCode {
				t.Errorf("run() = %d, want %d", code, tt.wantCode)
			}
			if tt.wantOut != "" && !strings.Contains(stdout.String(), tt.wantOut) {
				t.Errorf("stdout missing %q:\n%s", tt.wantOut, stdout.String())
			}
		})
	}
}

func TestRender(t *testing.T) {
	tmpDir := t.TempDir()
	scenePath := filepath.Join(tmpDir, "app.hcl")
	src := `
diagram {
  title  = var.title
  width  = 400
  height = 300
}

service "api" {
  label = "API"
  x     = 200
  y     = 150
}
`
	if err := os.WriteFile(scenePath, []byte(src), 0644); err != nil {
		t.Fatalf("Failed to create scene file: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantFile string
		wantCode int
	}{
		{
			name:     "default output next to scene",
			args:     []string{"render", scenePath, "-var", "title=App", "-icons", tmpDir},
			wantFile: filepath.Join(tmpDir, "app.png"),
		},
		{
			name:     "flags before scene",
			args:     []string{"render", "-o", filepath.Join(tmpDir, "out.svg"), "-var", "title=App", "-grid", scenePath},
			wantFile: filepath.Join(tmpDir, "out.svg"),
		},
		{
			name:     "explicit jpeg",
			args:     []string{"render", scenePath, "-format", "jpg", "-var", "title=App", "-o", filepath.Join(tmpDir, "out.img")},
			wantFile: filepath.Join(tmpDir, "out.img"),
		},
		{
			name:     "missing variable",
			args:     []string{"render", scenePath},
			wantCode: 1,
		},
		{
			name:     "malformed variable",
			args:     []string{"render", scenePath, "-var", "title"},
			wantCode: 1,
		},
		{
			name:     "no scene file",
			args:     []string{"render", "-var", "title=App"},
			wantCode: 1,
		},
		{
			name:     "missing scene file",
			args:     []string{"render", filepath.Join(tmpDir, "missing.hcl")},
			wantCode: 1,
		},
		{
			name:     "bad format",
			args:     []string{"render", scenePath, "-format", "gif", "-var", "title=App"},
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, stderr, _ := testApp(t)
			if code := a.run(context.Background(), tt.args); code != tt.wantCode {
				t.Fatalf("run() = %d, want %d; stderr:\n%s", code, tt.wantCode, stderr.String())
			}
			if tt.wantFile == "" {
				return
			}
			info, err := os.Stat(tt.wantFile)
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			if info.Size() == 0 {
				t.Error("output file is empty")
			}
		})
	}
}

func TestBlueprint(t *testing.T) {
	tmpDir := t.TempDir()
	specPath := filepath.Join(tmpDir, "spec.yaml")
	spec := `
title: Spec
nodes:
  - id: fn
    type: aws.compute.Lambda
  - id: db
    type: aws.database.Dynamodb
edges:
  - from: fn
    to: db
`
	if err := os.WriteFile(specPath, []byte(spec), 0644); err != nil {
		t.Fatalf("Failed to create spec file: %v", err)
	}

	tests := []struct {
		name          string
		args          []string
		wantCode      int
		wantTitle     string
		wantDirection string
		wantFormat    string
	}{
		{
			name:          "default example",
			args:          []string{"blueprint"},
			wantTitle:     "",
			wantDirection: "",
			wantFormat:    "png",
		},
		{
			name:          "example with direction",
			args:          []string{"blueprint", "-example", "aws", "-direction", "TB", "-format", "svg"},
			wantDirection: "TB",
			wantFormat:    "svg",
		},
		{
			name:          "multicloud keeps its own direction",
			args:          []string{"blueprint", "-example", "multicloud"},
			wantTitle:     "Multi-Cloud Active-Active Architecture",
			wantDirection: "TB",
			wantFormat:    "png",
		},
		{
			name:          "multicloud with explicit direction",
			args:          []string{"blueprint", "-example", "multicloud", "-direction", "LR"},
			wantDirection: "LR",
			wantFormat:    "png",
		},
		{
			name:          "spec file keeps flag direction when unset",
			args:          []string{"blueprint", "-json", specPath, "-direction", "BT", "-format", "dot"},
			wantTitle:     "Spec",
			wantDirection: "BT",
			wantFormat:    "dot",
		},
		{
			name:     "both sources",
			args:     []string{"blueprint", "-json", specPath, "-example", "aws"},
			wantCode: 1,
		},
		{
			name:     "unknown example",
			args:     []string{"blueprint", "-example", "oracle"},
			wantCode: 1,
		},
		{
			name:     "missing spec file",
			args:     []string{"blueprint", "-json", filepath.Join(tmpDir, "missing.json")},
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, stdout, stderr, fake := testApp(t)
			if code := a.run(context.Background(), tt.args); code != tt.wantCode {
				t.Fatalf("run() = %d, want %d; stderr:\n%s", code, tt.wantCode, stderr.String())
			}
			if tt.wantCode != 0 {
				return
			}
			if fake.doc == nil {
				t.Fatal("blueprint renderer was not called")
			}
			if tt.wantTitle != "" && fake.doc.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", fake.doc.Title, tt.wantTitle)
			}
			if tt.wantDirection != "" && fake.doc.Direction != tt.wantDirection {
				t.Errorf("direction = %q, want %q", fake.doc.Direction, tt.wantDirection)
			}
			if fake.format != tt.wantFormat {
				t.Errorf("format = %q, want %q", fake.format, tt.wantFormat)
			}
			if fake.output != "cloud_architecture" {
				t.Errorf("output = %q, want cloud_architecture", fake.output)
			}
			if !strings.Contains(stdout.String(), "Diagram saved:") {
				t.Errorf("stdout = %q", stdout.String())
			}
		})
	}
}

func TestNodeRefs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantCode  int
		wantFiles []string
	}{
		{name: "single provider", args: []string{"-provider", "aws"}, wantFiles: []string{"aws-nodes.md"}},
		{name: "default providers", args: []string{"-all"}, wantFiles: []string{"aws-nodes.md", "azure-nodes.md", "gcp-nodes.md", "k8s-nodes.md", "onprem-nodes.md"}},
		{name: "unknown provider", args: []string{"-provider", "nope"}, wantCode: 1},
		{name: "no selection", args: nil, wantCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			a, _, stderr, _ := testApp(t)
			args := append([]string{"noderefs", "-output-dir", dir}, tt.args...)
			if code := a.run(context.Background(), args); code != tt.wantCode {
				t.Fatalf("run() = %d, want %d; stderr:\n%s", code, tt.wantCode, stderr.String())
			}
			for _, f := range tt.wantFiles {
				if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
					t.Errorf("expected %s: %v", f, err)
				}
			}
		})
	}
}

func TestIconsListEmpty(t *testing.T) {
	a, stdout, stderr, _ := testApp(t)
	if code := a.run(context.Background(), []string{"icons", "--list", "--dir", t.TempDir()}); code != 0 {
		t.Fatalf("run() = %d; stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "No icons cached") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestVarFlags(t *testing.T) {
	v := varFlags{}
	for _, s := range []string{"env=prod", "region=west=2", "empty="} {
		if err := v.Set(s); err != nil {
			t.Errorf("Set(%q) error = %v", s, err)
		}
	}
	if v["region"] != "west=2" || v["empty"] != "" {
		t.Errorf("unexpected vars: %v", v)
	}
	if got := v.String(); got != "empty=,env=prod,region=west=2" {
		t.Errorf("String() = %q", got)
	}
	for _, s := range []string{"noequals", "=value"} {
		if err := v.Set(s); err == nil {
			t.Errorf("Set(%q) should fail", s)
		}
	}
}

func TestParseInterspersed(t *testing.T) {
	a, _, _, _ := testApp(t)
	fs := a.flagSet("x", "x")
	out := fs.String("o", "", "")
	grid := fs.Bool("grid", false, "")
	pos, err := parseInterspersed(fs, []string{"a.hcl", "-o", "x.png", "b.hcl", "-grid"})
	if err != nil {
		t.Fatalf("parseInterspersed() error = %v", err)
	}
	if strings.Join(pos, ",") != "a.hcl,b.hcl" || *out != "x.png" || !*grid {
		t.Errorf("got positional %v, o=%q, grid=%v", pos, *out, *grid)
	}
}
