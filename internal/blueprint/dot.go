package blueprint

import (
	"fmt"
	"strings"

	"github.com/ankek/terraform-provider-archdiagram/internal/icons"
	"github.com/ankek/terraform-provider-archdiagram/internal/nodetype"
	"github.com/ankek/terraform-provider-archdiagram/internal/renderer"
)

// graphAttrs are written in this order on every graph.
var graphAttrs = [][2]string{
	{"fontsize", "16"},
	{"bgcolor", "white"},
	{"pad", "0.5"},
	{"nodesep", "0.8"},
	{"ranksep", "1.2"},
}

// GenerateDOT converts a validated document to Graphviz DOT. Nodes whose type
// has a cached icon are drawn with it; the rest become filled boxes in their
// category colour. The output depends only on the inputs.
func GenerateDOT(doc *Document, reg *nodetype.Registry, resolver *icons.Resolver) (string, error) {
	if err := doc.Validate(reg); err != nil {
		return "", err
	}

	title := doc.Title
	if title == "" {
		title = DefaultTitle
	}
	dir := doc.Direction
	if dir == "" {
		dir = "LR"
	}

	g := &dotWriter{reg: reg, icons: resolver}
	g.line(0, "digraph \"%s\" {", escapeDOT(title))
	for _, a := range graphAttrs {
		g.line(1, "%s=%q;", a[0], a[1])
	}
	g.line(1, "rankdir=%s;", dir)
	g.line(1, "labelloc=\"t\";")
	g.line(1, "label=\"%s\";", escapeDOT(title))
	g.line(1, "node [fontname=\"Sans-Serif\", fontsize=13];")
	g.line(1, "edge [fontname=\"Sans-Serif\", fontsize=12, color=\"#7B8894\"];")
	g.blank()

	for _, n := range doc.Nodes {
		g.node(1, n)
	}
	for _, c := range doc.Clusters {
		g.cluster(1, c)
	}
	if len(doc.Edges) > 0 {
		g.blank()
	}
	for _, e := range doc.Edges {
		g.edge(e)
	}

	g.line(0, "}")
	return g.sb.String(), nil
}

type dotWriter struct {
	sb       strings.Builder
	reg      *nodetype.Registry
	icons    *icons.Resolver
	clusters int
}

func (g *dotWriter) line(depth int, format string, args ...interface{}) {
	g.sb.WriteString(strings.Repeat("    ", depth))
	fmt.Fprintf(&g.sb, format, args...)
	g.sb.WriteString("\n")
}

func (g *dotWriter) blank() { g.sb.WriteString("\n") }

func (g *dotWriter) cluster(depth int, c Cluster) {
	g.line(depth, "subgraph cluster_%d {", g.clusters)
	g.clusters++
	g.line(depth+1, "label=\"%s\";", escapeDOT(c.Name))
	g.line(depth+1, "style=\"rounded\";")
	g.line(depth+1, "bgcolor=\"#E5F5FD\";")
	g.line(depth+1, "pencolor=\"#AEB6BE\";")
	for _, n := range c.Nodes {
		g.node(depth+1, n)
	}
	for _, child := range c.Children {
		g.cluster(depth+1, child)
	}
	g.line(depth, "}")
}

func (g *dotWriter) node(depth int, n Node) {
	nt, _ := g.reg.Lookup(n.Type)
	label := escapeDOT(n.DisplayLabel())

	if path, ok := g.icons.Path(nt.Icon); ok {
		g.line(depth, "\"%s\" [label=\"%s\", shape=none, image=\"%s\", imagescale=true, labelloc=b, height=1.6, fixedsize=true];",
			escapeDOT(n.ID), label, escapeDOT(path))
		return
	}
	g.line(depth, "\"%s\" [label=\"%s\", shape=box, style=\"rounded,filled\", fillcolor=\"%s\", fontcolor=\"white\"];",
		escapeDOT(n.ID), label, renderer.CategoryColor(nt.Category))
}

func (g *dotWriter) edge(e Edge) {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=\"%s\"", escapeDOT(e.Label)))
	}
	if e.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=\"%s\"", escapeDOT(e.Color)))
	}
	if e.Style != "" {
		attrs = append(attrs, fmt.Sprintf("style=%s", e.Style))
	}
	if len(attrs) == 0 {
		g.line(1, "\"%s\" -> \"%s\";", escapeDOT(e.From), escapeDOT(e.To))
		return
	}
	g.line(1, "\"%s\" -> \"%s\" [%s];", escapeDOT(e.From), escapeDOT(e.To), strings.Join(attrs, ", "))
}

// escapeDOT escapes s for use inside a double-quoted DOT string. Newlines
// become DOT line breaks.
func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
