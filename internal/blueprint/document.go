// Package blueprint turns a declarative node, cluster and edge document into
// a Graphviz graph and lays it out with the external dot tool.
package blueprint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ankek/terraform-provider-archdiagram/internal/nodetype"
	"gopkg.in/yaml.v3"
)

// DefaultTitle is used when a document has no title.
const DefaultTitle = "Cloud Architecture"

// Directions lists the accepted rank directions.
var Directions = []string{"LR", "TB", "RL", "BT"}

var edgeStyles = map[string]bool{"": true, "solid": true, "dashed": true, "dotted": true, "bold": true}

// Document is a blueprint: nodes grouped into nested clusters plus edges.
type Document struct {
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Direction string    `json:"direction,omitempty" yaml:"direction,omitempty"`
	Clusters  []Cluster `json:"clusters,omitempty" yaml:"clusters,omitempty"`
	Nodes     []Node    `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Edges     []Edge    `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// Cluster is a labelled group that may contain further clusters.
type Cluster struct {
	Name     string    `json:"name" yaml:"name"`
	Nodes    []Node    `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Children []Cluster `json:"children,omitempty" yaml:"children,omitempty"`
}

// Node is one drawable element. Type is a registered provider.module.Name path.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Type  string `json:"type" yaml:"type"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Edge joins two node ids.
type Edge struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Style string `json:"style,omitempty" yaml:"style,omitempty"`
}

// DisplayLabel returns the node label, or its id when unset.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Load reads a blueprint. .yaml and .yml files are YAML, everything else JSON.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Parse(data, "yaml")
	}
	return Parse(data, "json")
}

// Parse decodes a blueprint in the given format ("json" or "yaml").
func Parse(data []byte, format string) (*Document, error) {
	var doc Document
	switch format {
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse blueprint JSON: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse blueprint YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported blueprint format %q", format)
	}
	return &doc, nil
}

// AllNodes returns every node in document order: top-level nodes first,
// then cluster nodes depth first.
func (d *Document) AllNodes() []Node {
	nodes := append([]Node(nil), d.Nodes...)
	var walk func(cs []Cluster)
	walk = func(cs []Cluster) {
		for _, c := range cs {
			nodes = append(nodes, c.Nodes...)
			walk(c.Children)
		}
	}
	walk(d.Clusters)
	return nodes
}

// Validate checks the document against reg. All problems are reported together.
func (d *Document) Validate(reg *nodetype.Registry) error {
	var errs []error

	if d.Direction != "" && !validDirection(d.Direction) {
		errs = append(errs, fmt.Errorf("direction %q must be one of %s", d.Direction, strings.Join(Directions, ", ")))
	}

	ids := make(map[string]bool)
	for _, n := range d.AllNodes() {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("node of type %q has no id", n.Type))
			continue
		}
		if ids[n.ID] {
			errs = append(errs, fmt.Errorf("duplicate node id %q", n.ID))
		}
		ids[n.ID] = true
		if _, ok := reg.Lookup(n.Type); !ok {
			errs = append(errs, fmt.Errorf("node %q: unknown type %q", n.ID, n.Type))
		}
	}

	var checkClusters func(cs []Cluster)
	checkClusters = func(cs []Cluster) {
		for _, c := range cs {
			if c.Name == "" {
				errs = append(errs, errors.New("cluster has no name"))
			}
			checkClusters(c.Children)
		}
	}
	checkClusters(d.Clusters)

	for i, e := range d.Edges {
		if !ids[e.From] {
			errs = append(errs, fmt.Errorf("edge %d: unknown source node %q", i, e.From))
		}
		if !ids[e.To] {
			errs = append(errs, fmt.Errorf("edge %d: unknown target node %q", i, e.To))
		}
		if !edgeStyles[e.Style] {
			errs = append(errs, fmt.Errorf("edge %d: unsupported style %q", i, e.Style))
		}
	}

	return errors.Join(errs...)
}

func validDirection(dir string) bool {
	for _, d := range Directions {
		if d == dir {
			return true
		}
	}
	return false
}
