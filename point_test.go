package editor

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", R(0, 0, 10, 10), R(5, 5, 10, 10), R(5, 5, 5, 5)},
		{"contained", R(0, 0, 100, 100), R(10, 20, 30, 40), R(10, 20, 30, 40)},
		{"disjoint", R(0, 0, 10, 10), R(20, 20, 5, 5), Rect{}},
		{"touching", R(0, 0, 10, 10), R(10, 0, 5, 5), Rect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := R(10, 10, 20, 20)
	if !r.Contains(Pt(10, 10)) {
		t.Error("Contains(top-left) = false, want true")
	}
	if r.Contains(Pt(30, 30)) {
		t.Error("Contains(bottom-right) = true, want false")
	}
	if !R(0, 0, 0, 5).Empty() {
		t.Error("zero-width rect should be empty")
	}
}

func TestPointDistance(t *testing.T) {
	if got := Pt(0, 0).Distance(Pt(3, 4)); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}
