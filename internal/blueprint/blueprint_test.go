package blueprint

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ankek/terraform-provider-archdiagram/internal/icons"
	"github.com/ankek/terraform-provider-archdiagram/internal/nodetype"
)

const sampleYAML = `
title: Checkout
direction: TB
nodes:
  - id: web
    type: azure.compute.AppServices
    label: Web App
clusters:
  - name: Data
    nodes:
      - id: db
        type: azure.database.SQLDatabases
    children:
      - name: Cache
        nodes:
          - id: redis
            type: azure.database.CacheForRedis
edges:
  - from: web
    to: db
    label: SQL
  - from: web
    to: redis
    style: dotted
`

const sampleJSON = `{
  "title": "Checkout",
  "direction": "TB",
  "nodes": [{"id": "web", "type": "azure.compute.AppServices", "label": "Web App"}],
  "clusters": [{
    "name": "Data",
    "nodes": [{"id": "db", "type": "azure.database.SQLDatabases"}],
    "children": [{"name": "Cache", "nodes": [{"id": "redis", "type": "azure.database.CacheForRedis"}]}]
  }],
  "edges": [
    {"from": "web", "to": "db", "label": "SQL"},
    {"from": "web", "to": "redis", "style": "dotted"}
  ]
}`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"bp.yaml": sampleYAML,
		"bp.yml":  sampleYAML,
		"bp.json": sampleJSON,
	}

	var docs []*Document
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		doc, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}
		docs = append(docs, doc)
	}

	for _, doc := range docs {
		if doc.Title != "Checkout" || doc.Direction != "TB" {
			t.Errorf("doc = %q %q", doc.Title, doc.Direction)
		}
		nodes := doc.AllNodes()
		if len(nodes) != 3 || nodes[0].ID != "web" || nodes[2].ID != "redis" {
			t.Errorf("AllNodes() = %+v", nodes)
		}
		if err := doc.Validate(nodetype.Default); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Load() expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("Load() expected error for malformed JSON")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Document {
		return &Document{
			Nodes: []Node{
				{ID: "a", Type: "aws.compute.EC2"},
				{ID: "b", Type: "aws.database.RDS"},
			},
			Edges: []Edge{{From: "a", To: "b"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantMsg string
	}{
		{name: "valid", mutate: func(d *Document) {}},
		{name: "unknown type", mutate: func(d *Document) { d.Nodes[0].Type = "aws.compute.Mainframe" }, wantMsg: "unknown type"},
		{name: "duplicate id", mutate: func(d *Document) { d.Nodes[1].ID = "a" }, wantMsg: "duplicate node id"},
		{name: "missing id", mutate: func(d *Document) { d.Nodes[0].ID = "" }, wantMsg: "has no id"},
		{name: "unknown edge target", mutate: func(d *Document) { d.Edges[0].To = "c" }, wantMsg: "unknown target node \"c\""},
		{name: "unknown edge source", mutate: func(d *Document) { d.Edges[0].From = "z" }, wantMsg: "unknown source node \"z\""},
		{name: "bad direction", mutate: func(d *Document) { d.Direction = "UP" }, wantMsg: "direction"},
		{name: "bad style", mutate: func(d *Document) { d.Edges[0].Style = "wavy" }, wantMsg: "unsupported style"},
		{name: "unnamed cluster", mutate: func(d *Document) { d.Clusters = []Cluster{{}} }, wantMsg: "cluster has no name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(d)
			err := d.Validate(nodetype.Default)
			if tt.wantMsg == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestGenerateDOT(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON), "json")
	if err != nil {
		t.Fatal(err)
	}

	dot, err := GenerateDOT(doc, nodetype.Default, nil)
	if err != nil {
		t.Fatalf("GenerateDOT() error = %v", err)
	}

	for _, want := range []string{
		`digraph "Checkout" {`,
		`fontsize="16";`,
		`bgcolor="white";`,
		`pad="0.5";`,
		`nodesep="0.8";`,
		`ranksep="1.2";`,
		`rankdir=TB;`,
		`subgraph cluster_0 {`,
		`subgraph cluster_1 {`,
		`label="Data";`,
		`"web" [label="Web App", shape=box`,
		`"db" [label="db"`,
		`"web" -> "db" [label="SQL"];`,
		`"web" -> "redis" [style=dotted];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	// The nested cluster must close inside its parent.
	if strings.Index(dot, "cluster_1") < strings.Index(dot, "cluster_0") {
		t.Error("clusters out of order")
	}

	again, _ := GenerateDOT(doc, nodetype.Default, nil)
	if again != dot {
		t.Error("GenerateDOT() is not deterministic")
	}
}

func TestGenerateDOTWithIcons(t *testing.T) {
	dir := t.TempDir()
	icon := filepath.Join(dir, "cosmos-db.png")
	if err := os.WriteFile(icon, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	resolver := icons.NewResolver(icons.Index{"cosmos-db": icon})

	doc := &Document{Nodes: []Node{
		{ID: "cosmos", Type: "azure.database.CosmosDb", Label: "Cosmos DB"},
		{ID: "sql", Type: "azure.database.SQLDatabases"},
	}}
	dot, err := GenerateDOT(doc, nodetype.Default, resolver)
	if err != nil {
		t.Fatalf("GenerateDOT() error = %v", err)
	}
	if !strings.Contains(dot, `image="`+icon+`"`) {
		t.Errorf("icon node missing image attribute\n%s", dot)
	}
	if !strings.Contains(dot, `"sql" [label="sql", shape=box`) {
		t.Errorf("node without cached icon should be a box\n%s", dot)
	}
	if !strings.Contains(dot, `digraph "`+DefaultTitle+`"`) {
		t.Error("default title not applied")
	}
}

func TestGenerateDOTRejectsInvalid(t *testing.T) {
	doc := &Document{
		Nodes: []Node{{ID: "a", Type: "aws.compute.EC2"}},
		Edges: []Edge{{From: "a", To: "ghost"}},
	}
	if _, err := GenerateDOT(doc, nodetype.Default, nil); err == nil {
		t.Error("GenerateDOT() expected error for unknown edge target")
	}
}

func TestEscapeDOT(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`say "hi"`, `say \"hi\"`},
		{"two\nlines", `two\nlines`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeDOT(tt.in); got != tt.want {
			t.Errorf("escapeDOT(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExamples(t *testing.T) {
	names := ExampleNames()
	if strings.Join(names, ",") != "aws,azure,multicloud" {
		t.Fatalf("ExampleNames() = %v", names)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			doc, ok := Example(name)
			if !ok {
				t.Fatal("example not found")
			}
			if err := doc.Validate(nodetype.Default); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
	if _, ok := Example("gcp"); ok {
		t.Error("Example(gcp) should not exist")
	}

	a, _ := Example("azure")
	a.Title = "changed"
	b, _ := Example("azure")
	if b.Title == "changed" {
		t.Error("Example() returned a shared document")
	}
}

func TestRenderDOTFormat(t *testing.T) {
	doc, _ := Example("aws")
	out := filepath.Join(t.TempDir(), "aws")

	path, err := NewRenderer(nil, nil).Render(context.Background(), doc, out, FormatDOT)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if path != out+".dot" {
		t.Errorf("path = %q, want %q", path, out+".dot")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), `digraph "AWS 3-Tier Web Application" {`) {
		t.Errorf("unexpected DOT output:\n%s", data)
	}
}

func TestRenderErrors(t *testing.T) {
	doc, _ := Example("azure")
	out := filepath.Join(t.TempDir(), "azure")

	r := NewRenderer(nil, nil)
	if _, err := r.Render(context.Background(), doc, out, "gif"); err == nil {
		t.Error("Render() expected error for unsupported format")
	}
	if _, err := r.Render(context.Background(), doc, "", FormatDOT); err == nil {
		t.Error("Render() expected error for empty output")
	}

	r.DotPath = filepath.Join(t.TempDir(), "no-such-dot")
	if _, err := r.Render(context.Background(), doc, out, FormatPNG); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Render() error = %v, want graphviz not found", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, doc, out, FormatDOT); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}
