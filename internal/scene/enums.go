package scene

import (
	"fmt"
	"regexp"
	"strings"
)

// ZoneStyle selects the fill and border preset of a zone.
type ZoneStyle string

const (
	ZoneGrey        ZoneStyle = "grey"
	ZoneGreen       ZoneStyle = "green"
	ZoneBlue        ZoneStyle = "blue"
	ZoneSubtle      ZoneStyle = "subtle"
	ZoneDashed      ZoneStyle = "dashed"
	ZoneDashedGreen ZoneStyle = "dashed_green"
)

// ZoneStyles lists every accepted zone style.
var ZoneStyles = []ZoneStyle{ZoneGrey, ZoneGreen, ZoneBlue, ZoneSubtle, ZoneDashed, ZoneDashedGreen}

// ParseZoneStyle returns the zone style named by s. An empty string selects grey.
func ParseZoneStyle(s string) (ZoneStyle, error) {
	if s == "" {
		return ZoneGrey, nil
	}
	for _, st := range ZoneStyles {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: zone style %q", ErrInvalidValue, s)
}

// Category drives the fallback glyph colour of a service.
type Category string

const (
	CategoryDefault     Category = "default"
	CategoryCompute     Category = "compute"
	CategoryData        Category = "data"
	CategoryAI          Category = "ai"
	CategoryIdentity    Category = "identity"
	CategorySecurity    Category = "security"
	CategoryDevOps      Category = "devops"
	CategoryMonitor     Category = "monitor"
	CategoryNetwork     Category = "network"
	CategoryStorage     Category = "storage"
	CategoryAnalytics   Category = "analytics"
	CategoryIntegration Category = "integration"
	CategoryIoT         Category = "iot"
	CategoryDatabases   Category = "databases"
	CategoryManagement  Category = "management"
	CategoryNetworking  Category = "networking"
)

// Categories lists every accepted service category.
var Categories = []Category{
	CategoryDefault, CategoryCompute, CategoryData, CategoryAI, CategoryIdentity,
	CategorySecurity, CategoryDevOps, CategoryMonitor, CategoryNetwork, CategoryStorage,
	CategoryAnalytics, CategoryIntegration, CategoryIoT, CategoryDatabases,
	CategoryManagement, CategoryNetworking,
}

// ParseCategory returns the category named by s. An empty string selects the default category.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryDefault, nil
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: category %q", ErrInvalidValue, s)
}

// Side is the edge of a service icon a connector attaches to.
type Side string

const (
	SideRight  Side = "right"
	SideLeft   Side = "left"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideCenter Side = "center"
)

// ParseSide returns the side named by s, or def when s is empty.
func ParseSide(s string, def Side) (Side, error) {
	switch Side(s) {
	case "":
		return def, nil
	case SideRight, SideLeft, SideTop, SideBottom, SideCenter:
		return Side(s), nil
	}
	return "", fmt.Errorf("%w: side %q", ErrInvalidValue, s)
}

// LineStyle is the stroke pattern of a connector or legend sample.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

// ParseLineStyle returns the line style named by s. An empty string selects solid.
func ParseLineStyle(s string) (LineStyle, error) {
	switch LineStyle(s) {
	case "":
		return LineSolid, nil
	case LineSolid, LineDashed:
		return LineStyle(s), nil
	}
	return "", fmt.Errorf("%w: line style %q", ErrInvalidValue, s)
}

// TextStyle is the font variant used by annotations.
type TextStyle string

const (
	TextRegular    TextStyle = "regular"
	TextBold       TextStyle = "bold"
	TextItalic     TextStyle = "italic"
	TextBoldItalic TextStyle = "bolditalic"
)

// ParseTextStyle returns the text style named by s. An empty string selects italic.
func ParseTextStyle(s string) (TextStyle, error) {
	switch TextStyle(s) {
	case "":
		return TextItalic, nil
	case TextRegular, TextBold, TextItalic, TextBoldItalic:
		return TextStyle(s), nil
	}
	return "", fmt.Errorf("%w: text style %q", ErrInvalidValue, s)
}

// ActorKind selects the glyph drawn for an actor.
type ActorKind string

const (
	ActorPerson ActorKind = "person"
	ActorSystem ActorKind = "system"
	ActorStore  ActorKind = "store"
	ActorDevice ActorKind = "device"
)

// ParseActorKind returns the actor kind named by s. "user" and "database" are
// accepted as aliases of person and store. An empty string selects person.
func ParseActorKind(s string) (ActorKind, error) {
	switch s {
	case "", "user":
		return ActorPerson, nil
	case "database":
		return ActorStore, nil
	}
	switch k := ActorKind(s); k {
	case ActorPerson, ActorSystem, ActorStore, ActorDevice:
		return k, nil
	}
	return "", fmt.Errorf("%w: actor kind %q", ErrInvalidValue, s)
}

// Named connector colours.
const (
	ColorBlack = "black"
	ColorBlue  = "blue"
	ColorGreen = "green"
	ColorGrey  = "grey"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ParseColor normalises a connector, legend or annotation colour. Named
// colours are returned lowercased, hex colours as given. Empty selects black.
func ParseColor(s string) (string, error) {
	if s == "" {
		return ColorBlack, nil
	}
	switch lower := strings.ToLower(s); lower {
	case ColorBlack, ColorBlue, ColorGreen, ColorGrey:
		return lower, nil
	}
	if hexColorRe.MatchString(s) {
		return s, nil
	}
	return "", fmt.Errorf("%w: color %q", ErrInvalidValue, s)
}
