package renderer

import (
	"math"
	"testing"
)

func TestDashSegments(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Vec
		wantN   int
		lastLen float64
	}{
		{name: "zero length", a: Vec{5, 5}, b: Vec{5, 5}, wantN: 0},
		{name: "shorter than one dash", a: Vec{0, 0}, b: Vec{5, 0}, wantN: 1, lastLen: 5},
		{name: "exact multiple", a: Vec{0, 0}, b: Vec{28, 0}, wantN: 2, lastLen: 8},
		{name: "truncated last dash", a: Vec{0, 0}, b: Vec{0, 100}, wantN: 8, lastLen: 2},
		{name: "diagonal", a: Vec{0, 0}, b: Vec{30, 40}, wantN: 4, lastLen: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := DashSegments(tt.a, tt.b, connectorDash, connectorGap)
			length := math.Hypot(tt.b.X-tt.a.X, tt.b.Y-tt.a.Y)
			if want := int(math.Ceil(length / (connectorDash + connectorGap))); want != tt.wantN {
				t.Fatalf("test case inconsistent: ceil(L/14) = %d, wantN = %d", want, tt.wantN)
			}
			if len(segs) != tt.wantN {
				t.Fatalf("got %d segments, want %d", len(segs), tt.wantN)
			}
			if tt.wantN == 0 {
				return
			}
			if segs[0].A != tt.a {
				t.Errorf("first dash starts at %v, want %v", segs[0].A, tt.a)
			}
			last := segs[len(segs)-1]
			if got := math.Hypot(last.B.X-last.A.X, last.B.Y-last.A.Y); math.Abs(got-tt.lastLen) > 1e-9 {
				t.Errorf("last dash length = %v, want %v", got, tt.lastLen)
			}
			if tt.lastLen < connectorDash && math.Hypot(last.B.X-tt.b.X, last.B.Y-tt.b.Y) > 1e-9 {
				t.Errorf("truncated dash ends at %v, want %v", last.B, tt.b)
			}
		})
	}
}

func TestArrowheadPoints(t *testing.T) {
	pts := ArrowheadPoints(Vec{0, 0}, Vec{100, 0}, arrowSize)

	if pts[0] != (Vec{100, 0}) {
		t.Errorf("tip = %v, want {100 0}", pts[0])
	}
	for i, p := range pts[1:] {
		if d := math.Hypot(p.X-100, p.Y); math.Abs(d-arrowSize) > 1e-9 {
			t.Errorf("wing %d at distance %v from tip, want %v", i, d, arrowSize)
		}
		if p.X >= 100 {
			t.Errorf("wing %d at %v is not behind the tip", i, p)
		}
	}
	// Wings are mirrored across the shaft.
	if math.Abs(pts[1].Y+pts[2].Y) > 1e-9 || math.Abs(pts[1].X-pts[2].X) > 1e-9 {
		t.Errorf("wings %v and %v are not symmetric", pts[1], pts[2])
	}
}

func TestMidpoint(t *testing.T) {
	if got := Midpoint(Vec{0, 10}, Vec{20, 30}); got != (Vec{10, 20}) {
		t.Errorf("Midpoint() = %v, want {10 20}", got)
	}
}

func TestLightenColor(t *testing.T) {
	tests := []struct {
		in      string
		percent int
		want    string
	}{
		{"#000000", 50, "#7F7F7F"},
		{"#BFBFBF", 0, "#BFBFBF"},
		{"#0070C0", 100, "#FFFFFF"},
		{"bad", 20, "#FFFFFF"},
	}
	for _, tt := range tests {
		if got := lightenColor(tt.in, tt.percent); got != tt.want {
			t.Errorf("lightenColor(%q, %d) = %q, want %q", tt.in, tt.percent, got, tt.want)
		}
	}
}

func TestStrokeColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", colorArrowBlack},
		{"blue", colorArrowBlue},
		{"green", colorArrowGreen},
		{"grey", colorArrowGrey},
		{"#123456", "#123456"},
	}
	for _, tt := range tests {
		if got := strokeColor(tt.in); got != tt.want {
			t.Errorf("strokeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
