// Package scenefile loads declarative scene documents and replays them as
// scene builder calls.
//
// A document is native HCL or HCL-JSON:
//
//	diagram {
//	  title  = "Event ingestion"
//	  width  = 2800
//	  height = 1600
//	}
//
//	zone "vnet" {
//	  label = "Virtual Network"
//	  x = 100
//	  y = 120
//	  width = 1200
//	  height = 700
//	  style = "green"
//	}
//
//	service "hub" {
//	  label = "Event Hubs"
//	  icon  = "event-hubs"
//	  x = 300
//	  y = 400
//	}
//
//	connector {
//	  from = "hub"
//	  to   = "fn"
//	  step = 1
//	}
//
// Caller variables are available as var.<name>.
package scenefile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ankek/terraform-provider-archdiagram/internal/scene"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "diagram"},
		{Type: "zone", LabelNames: []string{"id"}},
		{Type: "service", LabelNames: []string{"id"}},
		{Type: "connector"},
		{Type: "section_header"},
		{Type: "actor"},
		{Type: "annotation"},
		{Type: "platform_bar"},
		{Type: "legend"},
	},
}

// replayOrder is the order block types are applied to the builder. Services
// come before connectors so connectors can name any service in the file.
var replayOrder = []string{
	"diagram", "zone", "section_header", "service", "connector",
	"actor", "annotation", "platform_bar", "legend",
}

type diagramBlock struct {
	Title  string `hcl:"title,optional"`
	Width  int    `hcl:"width,optional"`
	Height int    `hcl:"height,optional"`
	DPI    int    `hcl:"dpi,optional"`
}

type zoneBlock struct {
	Label    string `hcl:"label,optional"`
	Sublabel string `hcl:"sublabel,optional"`
	X        int    `hcl:"x"`
	Y        int    `hcl:"y"`
	Width    int    `hcl:"width"`
	Height   int    `hcl:"height"`
	Style    string `hcl:"style,optional"`
}

type serviceBlock struct {
	Label        string `hcl:"label"`
	Detail       string `hcl:"detail,optional"`
	X            int    `hcl:"x"`
	Y            int    `hcl:"y"`
	Icon         string `hcl:"icon,optional"`
	Category     string `hcl:"category,optional"`
	Abbreviation string `hcl:"abbreviation,optional"`
	IconSize     int    `hcl:"icon_size,optional"`
}

type connectorBlock struct {
	From          string `hcl:"from,optional"`
	To            string `hcl:"to,optional"`
	FromSide      string `hcl:"from_side,optional"`
	ToSide        string `hcl:"to_side,optional"`
	Start         []int  `hcl:"start,optional"`
	End           []int  `hcl:"end,optional"`
	Style         string `hcl:"style,optional"`
	Color         string `hcl:"color,optional"`
	Label         string `hcl:"label,optional"`
	Step          int    `hcl:"step,optional"`
	Bidirectional bool   `hcl:"bidirectional,optional"`
}

type headerBlock struct {
	Text string `hcl:"text"`
	X    int    `hcl:"x"`
	Y    int    `hcl:"y"`
}

type actorBlock struct {
	Label  string `hcl:"label"`
	Detail string `hcl:"detail,optional"`
	X      int    `hcl:"x"`
	Y      int    `hcl:"y"`
	Kind   string `hcl:"kind,optional"`
}

type annotationBlock struct {
	Text  string `hcl:"text"`
	X     int    `hcl:"x"`
	Y     int    `hcl:"y"`
	Style string `hcl:"style,optional"`
	Color string `hcl:"color,optional"`
}

type platformBarBlock struct {
	Keys  []string `hcl:"keys"`
	Y     int      `hcl:"y,optional"`
	Label string   `hcl:"label,optional"`
}

type legendBlock struct {
	Items []legendItemBlock `hcl:"item,block"`
}

type legendItemBlock struct {
	Style string `hcl:"style,optional"`
	Color string `hcl:"color,optional"`
	Label string `hcl:"label"`
}

// Load reads a scene file from disk. Files ending in .json are parsed as
// HCL-JSON, everything else as native HCL.
func Load(ctx context.Context, path string, vars map[string]cty.Value) (*scene.Diagram, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return Parse(src, path, vars)
}

// Parse decodes src and builds the diagram it describes. filename selects
// the syntax and appears in error ranges.
func Parse(src []byte, filename string, vars map[string]cty.Value) (*scene.Diagram, error) {
	content, err := parseContent(src, filename)
	if err != nil {
		return nil, err
	}

	b := &builder{evalCtx: evalContext(vars)}
	byType := content.Blocks.ByType()
	for _, typ := range replayOrder {
		for _, block := range byType[typ] {
			if err := b.apply(block); err != nil {
				return nil, fmt.Errorf("%s: %w", block.DefRange, err)
			}
		}
	}
	if b.diagram == nil {
		// A file with no diagram block gets the default canvas.
		if err := b.ensureDiagram(); err != nil {
			return nil, err
		}
	}
	return b.diagram, nil
}

func parseContent(src []byte, filename string) (*hcl.BodyContent, error) {
	parser := hclparse.NewParser()

	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scene file: %w", diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid scene file: %w", diags)
	}
	return content, nil
}

// StringVars converts a string map into scene variables.
func StringVars(m map[string]string) map[string]cty.Value {
	vars := make(map[string]cty.Value, len(m))
	for k, v := range m {
		vars[k] = cty.StringVal(v)
	}
	return vars
}

func evalContext(vars map[string]cty.Value) *hcl.EvalContext {
	obj := cty.EmptyObjectVal
	if len(vars) > 0 {
		obj = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": obj},
	}
}

type builder struct {
	evalCtx *hcl.EvalContext
	diagram *scene.Diagram
}

func (b *builder) ensureDiagram() error {
	if b.diagram != nil {
		return nil
	}
	d, err := scene.New("", scene.DefaultWidth, scene.DefaultHeight)
	if err != nil {
		return err
	}
	b.diagram = d
	return nil
}

func (b *builder) decode(block *hcl.Block, val interface{}) error {
	if diags := gohcl.DecodeBody(block.Body, b.evalCtx, val); diags.HasErrors() {
		return diags
	}
	return nil
}

func (b *builder) apply(block *hcl.Block) error {
	if block.Type == "diagram" {
		return b.applyDiagram(block)
	}
	if err := b.ensureDiagram(); err != nil {
		return err
	}
	d := b.diagram

	switch block.Type {
	case "zone":
		var z zoneBlock
		if err := b.decode(block, &z); err != nil {
			return err
		}
		return d.AddZone(scene.Zone{
			ID: block.Labels[0], Label: z.Label, Sublabel: z.Sublabel,
			X: z.X, Y: z.Y, Width: z.Width, Height: z.Height,
			Style: scene.ZoneStyle(z.Style),
		})

	case "service":
		var s serviceBlock
		if err := b.decode(block, &s); err != nil {
			return err
		}
		return d.AddService(scene.Service{
			ID: block.Labels[0], Label: s.Label, Detail: s.Detail,
			X: s.X, Y: s.Y, Icon: s.Icon,
			Category:     scene.Category(s.Category),
			Abbreviation: s.Abbreviation,
			IconSize:     s.IconSize,
		})

	case "connector":
		var c connectorBlock
		if err := b.decode(block, &c); err != nil {
			return err
		}
		return addConnector(d, c)

	case "section_header":
		var h headerBlock
		if err := b.decode(block, &h); err != nil {
			return err
		}
		return d.AddSectionHeader(scene.SectionHeader{Text: h.Text, X: h.X, Y: h.Y})

	case "actor":
		var a actorBlock
		if err := b.decode(block, &a); err != nil {
			return err
		}
		return d.AddActor(scene.Actor{Label: a.Label, Detail: a.Detail, X: a.X, Y: a.Y, Kind: scene.ActorKind(a.Kind)})

	case "annotation":
		var a annotationBlock
		if err := b.decode(block, &a); err != nil {
			return err
		}
		return d.AddAnnotation(scene.Annotation{
			Text: a.Text, X: a.X, Y: a.Y,
			Style: scene.TextStyle(a.Style), Color: a.Color,
		})

	case "platform_bar":
		var p platformBarBlock
		if err := b.decode(block, &p); err != nil {
			return err
		}
		return d.SetPlatformBar(scene.PlatformBar{Keys: p.Keys, Y: p.Y, Label: p.Label})

	case "legend":
		var l legendBlock
		if err := b.decode(block, &l); err != nil {
			return err
		}
		items := make([]scene.LegendItem, 0, len(l.Items))
		for _, it := range l.Items {
			items = append(items, scene.LegendItem{Style: scene.LineStyle(it.Style), Color: it.Color, Label: it.Label})
		}
		return d.SetLegend(items)
	}
	return fmt.Errorf("unsupported block type %q", block.Type)
}

func (b *builder) applyDiagram(block *hcl.Block) error {
	if b.diagram != nil {
		return fmt.Errorf("duplicate diagram block")
	}
	var db diagramBlock
	if err := b.decode(block, &db); err != nil {
		return err
	}
	if db.Width == 0 {
		db.Width = scene.DefaultWidth
	}
	if db.Height == 0 {
		db.Height = scene.DefaultHeight
	}
	d, err := scene.New(db.Title, db.Width, db.Height)
	if err != nil {
		return err
	}
	if db.DPI < 0 {
		return fmt.Errorf("dpi must be positive, got %d", db.DPI)
	}
	if db.DPI > 0 {
		d.DPI = db.DPI
	}
	b.diagram = d
	return nil
}

func addConnector(d *scene.Diagram, c connectorBlock) error {
	opts := scene.ConnectorOptions{
		FromSide:      scene.Side(c.FromSide),
		ToSide:        scene.Side(c.ToSide),
		Style:         scene.LineStyle(c.Style),
		Color:         c.Color,
		Label:         c.Label,
		Step:          c.Step,
		Bidirectional: c.Bidirectional,
	}

	byID := c.From != "" || c.To != ""
	byPoint := c.Start != nil || c.End != nil
	switch {
	case byID && byPoint:
		return fmt.Errorf("connector takes either from/to or start/end, not both")
	case byID:
		if c.From == "" || c.To == "" {
			return fmt.Errorf("connector needs both from and to")
		}
		return d.AddConnector(c.From, c.To, opts)
	case byPoint:
		start, err := point("start", c.Start)
		if err != nil {
			return err
		}
		end, err := point("end", c.End)
		if err != nil {
			return err
		}
		return d.AddConnectorXY(start, end, opts)
	}
	return fmt.Errorf("connector needs from/to or start/end")
}

func point(name string, v []int) (scene.Point, error) {
	if len(v) != 2 {
		return scene.Point{}, fmt.Errorf("%s must be [x, y], got %d values", name, len(v))
	}
	return scene.Point{X: v[0], Y: v[1]}, nil
}
