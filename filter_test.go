package editor

import "testing"

func TestFilterStringRoundTrip(t *testing.T) {
	for _, f := range Filters() {
		got, ok := ParseFilter(f.String())
		if !ok || got != f {
			t.Errorf("ParseFilter(%q) = %v, %v; want %v, true", f.String(), got, ok, f)
		}
	}
}

func TestParseFilterLenient(t *testing.T) {
	tests := []struct {
		in   string
		want FilterType
		ok   bool
	}{
		{"Sepia", FilterSepia, true},
		{"high contrast", FilterHighContrast, true},
		{"HIGH-CONTRAST", FilterHighContrast, true},
		{" warm ", FilterWarm, true},
		{"polaroid", FilterNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseFilter(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFilter(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFilterDisplayName(t *testing.T) {
	tests := []struct {
		f    FilterType
		want string
	}{
		{FilterGrayscale, "Grayscale"},
		{FilterHighContrast, "High Contrast"},
		{FilterType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.f.DisplayName(); got != tt.want {
			t.Errorf("%v.DisplayName() = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestToolParse(t *testing.T) {
	for _, tool := range []Tool{ToolSelect, ToolCrop, ToolFilter, ToolAdjust, ToolDraw, ToolFaceCut, ToolEraser} {
		got, ok := ParseTool(tool.String())
		if !ok || got != tool {
			t.Errorf("ParseTool(%q) = %v, %v; want %v", tool.String(), got, ok, tool)
		}
	}
	if got := ToolFaceCut.DisplayName(); got != "Face Cut" {
		t.Errorf("ToolFaceCut.DisplayName() = %q, want %q", got, "Face Cut")
	}
	if _, ok := ParseTool("lasso"); ok {
		t.Error("ParseTool(lasso) ok = true, want false")
	}
}

func TestFilterNoneIsIdentity(t *testing.T) {
	if !FilterNone.Matrix().IsIdentity() {
		t.Error("FilterNone.Matrix() is not the identity")
	}
	if !FilterType(42).Matrix().IsIdentity() {
		t.Error("unknown filter should map to the identity")
	}
}

func TestGrayscaleRemovesColor(t *testing.T) {
	m := FilterGrayscale.Matrix()
	r, g, b, a := m.Transform(255, 0, 0, 255)
	if absf32(r-g) > 1e-3 || absf32(g-b) > 1e-3 {
		t.Errorf("grayscale(red) = (%v, %v, %v), want equal channels", r, g, b)
	}
	if a != 255 {
		t.Errorf("grayscale alpha = %v, want 255", a)
	}
}
