// Package scene holds the in-memory model of an architecture diagram: zones,
// services, connectors, actors, annotations, section headers, a platform bar
// and a legend, all placed at caller-supplied pixel coordinates.
//
// A Diagram is filled by Add/Set calls that validate their input and is then
// handed to the renderer. Rendering never mutates it.
package scene

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	DefaultWidth    = 2800
	DefaultHeight   = 1600
	DefaultDPI      = 150
	DefaultIconSize = 56

	// AnchorGap is the distance between an icon edge and a connector endpoint.
	AnchorGap = 4

	DefaultPlatformLabel = "Platform"
)

var (
	// ErrInvalidValue is returned for values outside a closed enumeration.
	ErrInvalidValue = errors.New("invalid value")

	// ErrDuplicateService is returned when a service id is added twice.
	ErrDuplicateService = errors.New("duplicate service id")

	// ErrUnknownService is returned when a connector names a service that does not exist.
	ErrUnknownService = errors.New("unknown service id")

	// ErrPlatformBarSet is returned when a second platform bar is added.
	ErrPlatformBarSet = errors.New("platform bar already set")
)

// Point is a pixel position on the canvas.
type Point struct {
	X, Y int
}

// Zone is a labelled rectangle grouping related services.
type Zone struct {
	ID       string
	Label    string
	Sublabel string
	X, Y     int
	Width    int
	Height   int
	Style    ZoneStyle
}

// Service is a node drawn as an icon, or a fallback glyph, centred on X, Y.
type Service struct {
	ID           string
	Label        string
	Detail       string
	X, Y         int
	Icon         string
	Category     Category
	Abbreviation string
	IconSize     int
}

// AddressMode tells how a connector locates its endpoints.
type AddressMode int

const (
	// AddressByID resolves endpoints from service anchors.
	AddressByID AddressMode = iota
	// AddressByPoint uses explicit coordinates.
	AddressByPoint
)

// ConnectorOptions carries the optional attributes of a connector.
type ConnectorOptions struct {
	FromSide      Side
	ToSide        Side
	Style         LineStyle
	Color         string
	Label         string
	Step          int // numbered marker at the midpoint; 0 means none
	Bidirectional bool
}

// Connector is a line with an arrowhead between two anchors.
type Connector struct {
	Mode AddressMode

	// Set when Mode is AddressByID.
	From, To string

	// Set when Mode is AddressByPoint.
	Start, End Point

	ConnectorOptions
}

// SectionHeader is a large heading such as "Ingest" or "Serve".
type SectionHeader struct {
	Text string
	X, Y int
}

// Actor is a person or external system drawn at the diagram edge.
type Actor struct {
	Label  string
	Detail string
	X, Y   int
	Kind   ActorKind
}

// Annotation is free text at a position.
type Annotation struct {
	Text  string
	X, Y  int
	Style TextStyle
	Color string
}

// PlatformBar is a strip of shared-service icons near the bottom of the canvas.
type PlatformBar struct {
	Keys  []string
	Y     int // 0 places the bar 100px above the bottom edge
	Label string
}

// LegendItem describes one line style used on the diagram.
type LegendItem struct {
	Style LineStyle
	Color string
	Label string
}

// Diagram is the scene graph consumed by the renderer.
type Diagram struct {
	Title  string
	Width  int
	Height int
	DPI    int

	zones       []Zone
	services    map[string]*Service
	order       []string
	connectors  []Connector
	headers     []SectionHeader
	actors      []Actor
	annotations []Annotation
	platform    *PlatformBar
	legend      []LegendItem
}

// New returns an empty diagram with the given canvas size and 150 dpi.
func New(title string, width, height int) (*Diagram, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", width, height)
	}
	return &Diagram{
		Title:    title,
		Width:    width,
		Height:   height,
		DPI:      DefaultDPI,
		services: make(map[string]*Service),
	}, nil
}

// AddZone appends a zone. Zones may share ids.
func (d *Diagram) AddZone(z Zone) error {
	if z.Width <= 0 || z.Height <= 0 {
		return fmt.Errorf("zone %q: size must be positive, got %dx%d", z.ID, z.Width, z.Height)
	}
	style, err := ParseZoneStyle(string(z.Style))
	if err != nil {
		return fmt.Errorf("zone %q: %w", z.ID, err)
	}
	z.Style = style
	d.zones = append(d.zones, z)
	return nil
}

// AddService registers a service under its id. The abbreviation is derived
// from the label when empty and the icon size defaults to 56.
func (d *Diagram) AddService(s Service) error {
	if s.ID == "" {
		return fmt.Errorf("service id cannot be empty")
	}
	if _, exists := d.services[s.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateService, s.ID)
	}
	cat, err := ParseCategory(string(s.Category))
	if err != nil {
		return fmt.Errorf("service %q: %w", s.ID, err)
	}
	s.Category = cat
	if s.IconSize == 0 {
		s.IconSize = DefaultIconSize
	}
	if s.IconSize < 0 {
		return fmt.Errorf("service %q: icon size must be positive, got %d", s.ID, s.IconSize)
	}
	if s.Abbreviation == "" {
		s.Abbreviation = Abbreviate(s.Label)
	}

	d.services[s.ID] = &s
	d.order = append(d.order, s.ID)
	return nil
}

// AddConnector joins two existing services. Sides default to right and left.
func (d *Diagram) AddConnector(from, to string, opts ConnectorOptions) error {
	for _, id := range []string{from, to} {
		if _, ok := d.services[id]; !ok {
			return fmt.Errorf("connector %s -> %s: %w: %q", from, to, ErrUnknownService, id)
		}
	}
	var err error
	if opts.FromSide, err = ParseSide(string(opts.FromSide), SideRight); err != nil {
		return fmt.Errorf("connector %s -> %s: %w", from, to, err)
	}
	if opts.ToSide, err = ParseSide(string(opts.ToSide), SideLeft); err != nil {
		return fmt.Errorf("connector %s -> %s: %w", from, to, err)
	}
	if err := normaliseStroke(&opts); err != nil {
		return fmt.Errorf("connector %s -> %s: %w", from, to, err)
	}
	d.connectors = append(d.connectors, Connector{Mode: AddressByID, From: from, To: to, ConnectorOptions: opts})
	return nil
}

// AddConnectorXY adds a connector between explicit coordinates. Sides are ignored.
func (d *Diagram) AddConnectorXY(start, end Point, opts ConnectorOptions) error {
	if err := normaliseStroke(&opts); err != nil {
		return fmt.Errorf("connector (%d,%d) -> (%d,%d): %w", start.X, start.Y, end.X, end.Y, err)
	}
	opts.FromSide, opts.ToSide = "", ""
	d.connectors = append(d.connectors, Connector{Mode: AddressByPoint, Start: start, End: end, ConnectorOptions: opts})
	return nil
}

func normaliseStroke(opts *ConnectorOptions) error {
	var err error
	if opts.Style, err = ParseLineStyle(string(opts.Style)); err != nil {
		return err
	}
	if opts.Color, err = ParseColor(opts.Color); err != nil {
		return err
	}
	if opts.Step < 0 {
		return fmt.Errorf("%w: step %d", ErrInvalidValue, opts.Step)
	}
	return nil
}

// AddSectionHeader appends a section header.
func (d *Diagram) AddSectionHeader(h SectionHeader) error {
	if strings.TrimSpace(h.Text) == "" {
		return fmt.Errorf("section header text cannot be empty")
	}
	d.headers = append(d.headers, h)
	return nil
}

// AddAnnotation appends free text. Style defaults to italic, colour to black.
func (d *Diagram) AddAnnotation(a Annotation) error {
	var err error
	if a.Style, err = ParseTextStyle(string(a.Style)); err != nil {
		return fmt.Errorf("annotation %q: %w", a.Text, err)
	}
	if a.Color, err = ParseColor(a.Color); err != nil {
		return fmt.Errorf("annotation %q: %w", a.Text, err)
	}
	d.annotations = append(d.annotations, a)
	return nil
}

// AddActor appends an actor. Kind defaults to person.
func (d *Diagram) AddActor(a Actor) error {
	kind, err := ParseActorKind(string(a.Kind))
	if err != nil {
		return fmt.Errorf("actor %q: %w", a.Label, err)
	}
	a.Kind = kind
	d.actors = append(d.actors, a)
	return nil
}

// SetLegend replaces the legend.
func (d *Diagram) SetLegend(items []LegendItem) error {
	legend := make([]LegendItem, 0, len(items))
	for i, it := range items {
		var err error
		if it.Style, err = ParseLineStyle(string(it.Style)); err != nil {
			return fmt.Errorf("legend item %d: %w", i, err)
		}
		if it.Color, err = ParseColor(it.Color); err != nil {
			return fmt.Errorf("legend item %d: %w", i, err)
		}
		legend = append(legend, it)
	}
	d.legend = legend
	return nil
}

// SetPlatformBar adds the platform bar. A diagram has at most one.
func (d *Diagram) SetPlatformBar(p PlatformBar) error {
	if d.platform != nil {
		return ErrPlatformBarSet
	}
	if p.Y < 0 {
		return fmt.Errorf("platform bar y must not be negative, got %d", p.Y)
	}
	if p.Label == "" {
		p.Label = DefaultPlatformLabel
	}
	p.Keys = append([]string(nil), p.Keys...)
	d.platform = &p
	return nil
}

// Abbreviate derives a fallback glyph label: the uppercase initials of up to
// the first three words, or the first three characters of a single word.
func Abbreviate(label string) string {
	words := strings.Fields(label)
	switch len(words) {
	case 0:
		return ""
	case 1:
		w := words[0]
		n := 0
		for i := range w {
			if n == 3 {
				return strings.ToUpper(w[:i])
			}
			n++
		}
		return strings.ToUpper(w)
	}
	if len(words) > 3 {
		words = words[:3]
	}
	var b strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// Anchor returns the point where a connector attaches to a service.
func (d *Diagram) Anchor(serviceID string, side Side) (Point, error) {
	s, ok := d.services[serviceID]
	if !ok {
		return Point{}, fmt.Errorf("%w: %q", ErrUnknownService, serviceID)
	}
	return s.Anchor(side), nil
}

// Anchor returns the service centre offset by half the icon size plus AnchorGap towards side.
func (s Service) Anchor(side Side) Point {
	off := s.IconSize/2 + AnchorGap
	switch side {
	case SideRight:
		return Point{s.X + off, s.Y}
	case SideLeft:
		return Point{s.X - off, s.Y}
	case SideTop:
		return Point{s.X, s.Y - off}
	case SideBottom:
		return Point{s.X, s.Y + off}
	}
	return Point{s.X, s.Y}
}

// Endpoints resolves the start and end of a connector.
func (d *Diagram) Endpoints(c Connector) (Point, Point, error) {
	if c.Mode == AddressByPoint {
		return c.Start, c.End, nil
	}
	start, err := d.Anchor(c.From, c.FromSide)
	if err != nil {
		return Point{}, Point{}, err
	}
	end, err := d.Anchor(c.To, c.ToSide)
	if err != nil {
		return Point{}, Point{}, err
	}
	return start, end, nil
}

// Zones returns the zones in insertion order.
func (d *Diagram) Zones() []Zone { return append([]Zone(nil), d.zones...) }

// Services returns the services in insertion order.
func (d *Diagram) Services() []Service {
	out := make([]Service, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, *d.services[id])
	}
	return out
}

// Service looks up a service by id.
func (d *Diagram) Service(id string) (Service, bool) {
	s, ok := d.services[id]
	if !ok {
		return Service{}, false
	}
	return *s, true
}

func (d *Diagram) Connectors() []Connector         { return append([]Connector(nil), d.connectors...) }
func (d *Diagram) SectionHeaders() []SectionHeader { return append([]SectionHeader(nil), d.headers...) }
func (d *Diagram) Actors() []Actor                 { return append([]Actor(nil), d.actors...) }
func (d *Diagram) Annotations() []Annotation       { return append([]Annotation(nil), d.annotations...) }
func (d *Diagram) Legend() []LegendItem            { return append([]LegendItem(nil), d.legend...) }

// PlatformBar returns the platform bar, if one was set.
func (d *Diagram) PlatformBar() (PlatformBar, bool) {
	if d.platform == nil {
		return PlatformBar{}, false
	}
	p := *d.platform
	p.Keys = append([]string(nil), p.Keys...)
	return p, true
}

// Len reports the number of drawable entities.
func (d *Diagram) Len() int {
	n := len(d.zones) + len(d.services) + len(d.connectors) + len(d.headers) +
		len(d.actors) + len(d.annotations) + len(d.legend)
	if d.platform != nil {
		n++
	}
	return n
}
