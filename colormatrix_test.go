package editor

import "testing"

// absf32 returns the absolute value of a float32.
func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func testMatrices() []ColorMatrix {
	ms := []ColorMatrix{
		IdentityMatrix(),
		{
			0.5, 0.1, 0.2, 0, 12,
			0.3, 0.9, 0.4, 0, -7,
			0.2, 0.2, 1.1, 0, 3,
			0, 0, 0, 0.8, 1,
		},
		BuildColorMatrix(0.3, -0.4, 0.7, nil),
	}
	for _, f := range Filters() {
		ms = append(ms, f.Matrix())
	}
	return ms
}

func TestIdentityMatrix(t *testing.T) {
	m := IdentityMatrix()

	expected := [20]float32{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}

	for i, v := range expected {
		if m[i] != v {
			t.Errorf("Identity[%d] = %v, want %v", i, m[i], v)
		}
	}
}

func TestBuildColorMatrixNeutralIsIdentity(t *testing.T) {
	got := BuildColorMatrix(0, 0, 0, nil)
	if !got.ApproxEqual(IdentityMatrix(), 1e-5) {
		t.Errorf("BuildColorMatrix(0, 0, 0, nil) = %v, want identity", got)
	}
}

func TestMultiplyIdentity(t *testing.T) {
	id := BuildColorMatrix(0, 0, 0, nil)
	for i, m := range testMatrices() {
		if got := m.Multiply(id); !got.ApproxEqual(m, 1e-5) {
			t.Errorf("matrix %d: M*I = %v, want %v", i, got, m)
		}
		if got := id.Multiply(m); !got.ApproxEqual(m, 1e-5) {
			t.Errorf("matrix %d: I*M = %v, want %v", i, got, m)
		}
	}
}

func TestMultiplyContract(t *testing.T) {
	ms := testMatrices()
	a, b := ms[1], ms[2]
	got := a.Multiply(b)

	for r := 0; r < 4; r++ {
		for c := 0; c < 5; c++ {
			var want float32
			for k := 0; k < 4; k++ {
				want += a[r*5+k] * b[k*5+c]
			}
			if c == 4 {
				want += a[r*5+4]
			}
			if absf32(got[r*5+c]-want) > 1e-4 {
				t.Errorf("out[%d,%d] = %v, want %v", r, c, got[r*5+c], want)
			}
		}
	}
}

func TestMultiplyOffsetsAddOnce(t *testing.T) {
	shift := func(v float32) ColorMatrix {
		m := IdentityMatrix()
		m[4], m[9], m[14] = v, v, v
		return m
	}

	got := shift(10).Multiply(shift(20))
	for _, i := range []int{4, 9, 14} {
		if got[i] != 30 {
			t.Errorf("offset[%d] = %v, want 30", i, got[i])
		}
	}
	if got[19] != 0 {
		t.Errorf("alpha offset = %v, want 0", got[19])
	}
}

func TestMultiplyMatchesSequentialTransform(t *testing.T) {
	a := FilterWarm.Matrix()
	b := FilterSepia.Matrix()
	ab := a.Multiply(b)

	colors := [][4]float32{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{200, 100, 50, 128},
		{12, 240, 77, 255},
	}
	for _, c := range colors {
		r1, g1, b1, a1 := b.Transform(c[0], c[1], c[2], c[3])
		wr, wg, wb, wa := a.Transform(r1, g1, b1, a1)
		gr, gg, gb, ga := ab.Transform(c[0], c[1], c[2], c[3])
		if absf32(gr-wr) > 1e-2 || absf32(gg-wg) > 1e-2 || absf32(gb-wb) > 1e-2 || absf32(ga-wa) > 1e-2 {
			t.Errorf("composed(%v) = (%v, %v, %v, %v), want (%v, %v, %v, %v)",
				c, gr, gg, gb, ga, wr, wg, wb, wa)
		}
	}
}

func TestBuildColorMatrixBrightness(t *testing.T) {
	m := BuildColorMatrix(0.5, 0, 0, nil)
	for _, i := range []int{4, 9, 14} {
		if absf32(m[i]-127.5) > 1e-4 {
			t.Errorf("offset[%d] = %v, want 127.5", i, m[i])
		}
	}
	if m[19] != 0 || m[18] != 1 {
		t.Errorf("alpha row = %v, want identity row", m[15:20])
	}
}

func TestBuildColorMatrixContrast(t *testing.T) {
	m := BuildColorMatrix(0, 1, 0, nil)
	// C = 2, T = (1 - 2) * 128 = -128
	if absf32(m[0]-2) > 1e-5 || absf32(m[6]-2) > 1e-5 || absf32(m[12]-2) > 1e-5 {
		t.Errorf("diagonal = (%v, %v, %v), want 2", m[0], m[6], m[12])
	}
	if absf32(m[4]+128) > 1e-4 {
		t.Errorf("offset = %v, want -128", m[4])
	}

	// Mid gray stays put under any contrast.
	r, g, b, _ := m.Transform(128, 128, 128, 255)
	if absf32(r-128) > 1e-3 || absf32(g-128) > 1e-3 || absf32(b-128) > 1e-3 {
		t.Errorf("contrast(128) = (%v, %v, %v), want 128", r, g, b)
	}
}

func TestBuildColorMatrixSaturation(t *testing.T) {
	m := BuildColorMatrix(0, 0, -1, nil)
	if !m.ApproxEqual(FilterGrayscale.Matrix(), 1e-5) {
		t.Errorf("saturation -1 = %v, want grayscale %v", m, FilterGrayscale.Matrix())
	}
}

func TestBuildColorMatrixFilterOrder(t *testing.T) {
	base := BuildColorMatrix(0.1, 0.2, 0.3, nil)
	filters := []FilterType{FilterSepia, FilterWarm}

	got := BuildColorMatrix(0.1, 0.2, 0.3, filters)
	want := base.Multiply(FilterSepia.Matrix()).Multiply(FilterWarm.Matrix())
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("BuildColorMatrix(filters) = %v, want %v", got, want)
	}

	reversed := BuildColorMatrix(0.1, 0.2, 0.3, []FilterType{FilterWarm, FilterSepia})
	if reversed.ApproxEqual(got, 1e-4) {
		t.Error("filter order should change the composed matrix")
	}
}

func TestBuildColorMatrixSingleFilter(t *testing.T) {
	for _, f := range Filters() {
		got := BuildColorMatrix(0, 0, 0, []FilterType{f})
		if !got.ApproxEqual(f.Matrix(), 1e-5) {
			t.Errorf("BuildColorMatrix([%v]) = %v, want %v", f, got, f.Matrix())
		}
	}
}

func BenchmarkBuildColorMatrix(b *testing.B) {
	filters := []FilterType{FilterSepia, FilterVintage, FilterHighContrast}
	for i := 0; i < b.N; i++ {
		_ = BuildColorMatrix(0.2, 0.1, -0.3, filters)
	}
}
