package scene

import (
	"errors"
	"testing"
)

func newDiagram(t *testing.T) *Diagram {
	t.Helper()
	d, err := New("test", 800, 600)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{name: "default size", width: DefaultWidth, height: DefaultHeight},
		{name: "zero width", width: 0, height: 100, wantErr: true},
		{name: "negative height", width: 100, height: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New("t", tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && d.DPI != DefaultDPI {
				t.Errorf("DPI = %d, want %d", d.DPI, DefaultDPI)
			}
		})
	}
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Data Factory", "DF"},
		{"Azure Data Lake Storage", "ADL"},
		{"Synapse", "SYN"},
		{"db", "DB"},
		{"event hubs", "EH"},
		{"", ""},
		{"  Power   BI  ", "PB"},
		{"Ünïcode", "ÜNÏ"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := Abbreviate(tt.label); got != tt.want {
				t.Errorf("Abbreviate(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestAddServiceDefaults(t *testing.T) {
	d := newDiagram(t)
	if err := d.AddService(Service{ID: "df", Label: "Data Factory", X: 100, Y: 100}); err != nil {
		t.Fatalf("AddService() error = %v", err)
	}

	s, ok := d.Service("df")
	if !ok {
		t.Fatal("service df not found")
	}
	if s.Abbreviation != "DF" {
		t.Errorf("Abbreviation = %q, want DF", s.Abbreviation)
	}
	if s.IconSize != DefaultIconSize {
		t.Errorf("IconSize = %d, want %d", s.IconSize, DefaultIconSize)
	}
	if s.Category != CategoryDefault {
		t.Errorf("Category = %q, want %q", s.Category, CategoryDefault)
	}
}

func TestAddServiceExplicitAbbreviation(t *testing.T) {
	d := newDiagram(t)
	if err := d.AddService(Service{ID: "x", Label: "Something Long Here", Abbreviation: "SLX"}); err != nil {
		t.Fatalf("AddService() error = %v", err)
	}
	s, _ := d.Service("x")
	if s.Abbreviation != "SLX" {
		t.Errorf("Abbreviation = %q, want SLX", s.Abbreviation)
	}
}

func TestAddServiceRejects(t *testing.T) {
	tests := []struct {
		name    string
		svc     Service
		wantErr error
	}{
		{name: "unknown category", svc: Service{ID: "a", Category: "quantum"}, wantErr: ErrInvalidValue},
		{name: "duplicate id", svc: Service{ID: "dup"}, wantErr: ErrDuplicateService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDiagram(t)
			if err := d.AddService(Service{ID: "dup", Label: "First"}); err != nil {
				t.Fatalf("seed AddService() error = %v", err)
			}
			err := d.AddService(tt.svc)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddService() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	d := newDiagram(t)
	if err := d.AddService(Service{ID: "neg", IconSize: -4}); err == nil {
		t.Error("expected error for negative icon size")
	}
	if err := d.AddService(Service{}); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestServicesKeepInsertionOrder(t *testing.T) {
	d := newDiagram(t)
	ids := []string{"zeta", "alpha", "mid"}
	for _, id := range ids {
		if err := d.AddService(Service{ID: id, Label: id}); err != nil {
			t.Fatalf("AddService(%s) error = %v", id, err)
		}
	}
	got := d.Services()
	for i, id := range ids {
		if got[i].ID != id {
			t.Errorf("Services()[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestAnchor(t *testing.T) {
	d := newDiagram(t)
	if err := d.AddService(Service{ID: "a", X: 200, Y: 300}); err != nil {
		t.Fatal(err)
	}
	if err := d.AddService(Service{ID: "odd", X: 10, Y: 10, IconSize: 37}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		id   string
		side Side
		want Point
	}{
		{"a", SideRight, Point{232, 300}},
		{"a", SideLeft, Point{168, 300}},
		{"a", SideTop, Point{200, 268}},
		{"a", SideBottom, Point{200, 332}},
		{"a", SideCenter, Point{200, 300}},
		{"odd", SideRight, Point{32, 10}},
		{"odd", SideTop, Point{10, -12}},
	}

	for _, tt := range tests {
		t.Run(tt.id+"/"+string(tt.side), func(t *testing.T) {
			got, err := d.Anchor(tt.id, tt.side)
			if err != nil {
				t.Fatalf("Anchor() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Anchor() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := d.Anchor("missing", SideRight); !errors.Is(err, ErrUnknownService) {
		t.Errorf("Anchor(missing) error = %v, want ErrUnknownService", err)
	}
}

func TestAddConnector(t *testing.T) {
	d := newDiagram(t)
	for _, id := range []string{"a", "b"} {
		if err := d.AddService(Service{ID: id, Label: id}); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		from    string
		to      string
		opts    ConnectorOptions
		wantErr bool
	}{
		{name: "defaults", from: "a", to: "b"},
		{name: "dashed blue with step", from: "a", to: "b", opts: ConnectorOptions{Style: LineDashed, Color: "blue", Step: 2}},
		{name: "hex colour", from: "b", to: "a", opts: ConnectorOptions{Color: "#12ab9F"}},
		{name: "unknown source", from: "nope", to: "b", wantErr: true},
		{name: "unknown target", from: "a", to: "nope", wantErr: true},
		{name: "bad side", from: "a", to: "b", opts: ConnectorOptions{FromSide: "diagonal"}, wantErr: true},
		{name: "bad style", from: "a", to: "b", opts: ConnectorOptions{Style: "dotted"}, wantErr: true},
		{name: "bad colour", from: "a", to: "b", opts: ConnectorOptions{Color: "purple"}, wantErr: true},
		{name: "short hex", from: "a", to: "b", opts: ConnectorOptions{Color: "#fff"}, wantErr: true},
		{name: "negative step", from: "a", to: "b", opts: ConnectorOptions{Step: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.AddConnector(tt.from, tt.to, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("AddConnector() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	conns := d.Connectors()
	if len(conns) != 3 {
		t.Fatalf("len(Connectors()) = %d, want 3", len(conns))
	}
	first := conns[0]
	if first.FromSide != SideRight || first.ToSide != SideLeft {
		t.Errorf("default sides = %s/%s, want right/left", first.FromSide, first.ToSide)
	}
	if first.Style != LineSolid || first.Color != ColorBlack {
		t.Errorf("default stroke = %s/%s, want solid/black", first.Style, first.Color)
	}
}

func TestConnectorEndpoints(t *testing.T) {
	d := newDiagram(t)
	_ = d.AddService(Service{ID: "a", X: 100, Y: 100})
	_ = d.AddService(Service{ID: "b", X: 400, Y: 100})
	if err := d.AddConnector("a", "b", ConnectorOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := d.AddConnectorXY(Point{1, 2}, Point{3, 4}, ConnectorOptions{Bidirectional: true, FromSide: SideTop}); err != nil {
		t.Fatal(err)
	}

	conns := d.Connectors()
	s, e, err := d.Endpoints(conns[0])
	if err != nil {
		t.Fatalf("Endpoints() error = %v", err)
	}
	if s != (Point{132, 100}) || e != (Point{368, 100}) {
		t.Errorf("by-id endpoints = %v %v", s, e)
	}

	if conns[1].Mode != AddressByPoint {
		t.Errorf("Mode = %v, want AddressByPoint", conns[1].Mode)
	}
	if conns[1].FromSide != "" {
		t.Errorf("coordinate connector kept side %q", conns[1].FromSide)
	}
	s, e, _ = d.Endpoints(conns[1])
	if s != (Point{1, 2}) || e != (Point{3, 4}) {
		t.Errorf("by-point endpoints = %v %v", s, e)
	}
}

func TestZonesAllowDuplicates(t *testing.T) {
	d := newDiagram(t)
	for i := 0; i < 2; i++ {
		if err := d.AddZone(Zone{ID: "z", Label: "Zone", Width: 10, Height: 10}); err != nil {
			t.Fatalf("AddZone() error = %v", err)
		}
	}
	zones := d.Zones()
	if len(zones) != 2 {
		t.Fatalf("len(Zones()) = %d, want 2", len(zones))
	}
	if zones[0].Style != ZoneGrey {
		t.Errorf("default style = %q, want grey", zones[0].Style)
	}

	if err := d.AddZone(Zone{ID: "bad", Width: 10, Height: 10, Style: "neon"}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("AddZone(neon) error = %v, want ErrInvalidValue", err)
	}
	if err := d.AddZone(Zone{ID: "flat", Width: 10}); err == nil {
		t.Error("expected error for zero height")
	}
}

func TestActorsAndAnnotations(t *testing.T) {
	d := newDiagram(t)

	tests := []struct {
		kind    string
		want    ActorKind
		wantErr bool
	}{
		{"", ActorPerson, false},
		{"user", ActorPerson, false},
		{"database", ActorStore, false},
		{"device", ActorDevice, false},
		{"system", ActorSystem, false},
		{"robot", "", true},
	}
	for _, tt := range tests {
		err := d.AddActor(Actor{Label: "A", Kind: ActorKind(tt.kind)})
		if (err != nil) != tt.wantErr {
			t.Errorf("AddActor(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
		}
	}
	actors := d.Actors()
	if actors[1].Kind != ActorPerson || actors[2].Kind != ActorStore {
		t.Errorf("aliases not normalised: %v", actors)
	}

	if err := d.AddAnnotation(Annotation{Text: "note"}); err != nil {
		t.Fatal(err)
	}
	if got := d.Annotations()[0]; got.Style != TextItalic || got.Color != ColorBlack {
		t.Errorf("annotation defaults = %s/%s", got.Style, got.Color)
	}
	if err := d.AddAnnotation(Annotation{Text: "x", Style: "underline"}); err == nil {
		t.Error("expected error for unknown text style")
	}
	if err := d.AddSectionHeader(SectionHeader{Text: "  "}); err == nil {
		t.Error("expected error for blank section header")
	}
}

func TestPlatformBarOnce(t *testing.T) {
	d := newDiagram(t)
	keys := []string{"entra-id", "key-vault"}
	if err := d.SetPlatformBar(PlatformBar{Keys: keys}); err != nil {
		t.Fatal(err)
	}
	keys[0] = "mutated"

	p, ok := d.PlatformBar()
	if !ok {
		t.Fatal("platform bar missing")
	}
	if p.Label != DefaultPlatformLabel {
		t.Errorf("Label = %q, want %q", p.Label, DefaultPlatformLabel)
	}
	if p.Keys[0] != "entra-id" {
		t.Errorf("platform bar aliases caller slice")
	}
	if err := d.SetPlatformBar(PlatformBar{}); !errors.Is(err, ErrPlatformBarSet) {
		t.Errorf("second SetPlatformBar() error = %v, want ErrPlatformBarSet", err)
	}
}

func TestSetLegendReplaces(t *testing.T) {
	d := newDiagram(t)
	if err := d.SetLegend([]LegendItem{{Label: "a"}, {Label: "b", Style: LineDashed, Color: "green"}}); err != nil {
		t.Fatal(err)
	}
	if err := d.SetLegend([]LegendItem{{Label: "only"}}); err != nil {
		t.Fatal(err)
	}
	if got := d.Legend(); len(got) != 1 || got[0].Label != "only" || got[0].Style != LineSolid {
		t.Errorf("Legend() = %v", got)
	}
	if err := d.SetLegend([]LegendItem{{Color: "mauve"}}); err == nil {
		t.Error("expected error for unknown legend colour")
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}
