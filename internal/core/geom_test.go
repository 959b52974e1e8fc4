package core

import "testing"

func TestVecString(t *testing.T) {
	if got := V(1, 2).String(); got != "(1.0,2.0)" {
		t.Errorf("String() = %q", got)
	}
	if got := V(0.25, -0.5); got.X != 0.25 || got.Y != -0.5 {
		t.Errorf("V() = %+v", got)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{1.2, 0.0, 1.0, 1.0},
		{-0.1, 0.0, 1.0, 0.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestParseColorRoundTrip(t *testing.T) {
	for c := ColorDefault; c < ColorCount; c++ {
		parsed, ok := ParseColor(c.String())
		if !ok {
			t.Errorf("ParseColor(%q) not recognized", c.String())
			continue
		}
		if parsed != c {
			t.Errorf("ParseColor(%q) = %v, expected %v", c.String(), parsed, c)
		}
	}

	if _, ok := ParseColor("chartreuse"); ok {
		t.Error("ParseColor should reject unknown names")
	}
	if c, ok := ParseColor(" Grey "); !ok || c != ColorGray {
		t.Errorf("ParseColor alias failed: %v %v", c, ok)
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionBuy)
	f.Type(3)
	f.Type(-1)

	if !f.Has(ActionBuy) {
		t.Error("expected ActionBuy")
	}
	if f.Has(ActionNext) {
		t.Error("did not expect ActionNext")
	}
	if f.Typed != 3 {
		t.Errorf("Typed = %d, expected 3", f.Typed)
	}

	f.Clear()
	if f.Has(ActionBuy) || f.Typed != 0 {
		t.Error("Clear should reset actions and typed count")
	}
}

func TestTickSeconds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickRate = 60
	if got := cfg.TickSeconds(); got != 1.0/60.0 {
		t.Errorf("TickSeconds() = %f", got)
	}
	cfg.TickRate = 0
	if got := cfg.TickSeconds(); got != 1.0/30.0 {
		t.Errorf("TickSeconds() fallback = %f", got)
	}
}
