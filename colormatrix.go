package editor

// ColorMatrix is a 4x5 affine color transformation in row-major order.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column holds offsets. Color values are in [0, 255] during the
// transformation and are expected in straight (non-premultiplied) alpha.
// [0-4] = row 0 (R), [5-9] = row 1 (G), [10-14] = row 2 (B), [15-19] = row 3 (A)
type ColorMatrix [20]float32

// Luminance weights used for saturation and grayscale.
const (
	lumR = 0.3086
	lumG = 0.6094
	lumB = 0.0820
)

// IdentityMatrix returns a color matrix that passes colors through unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0, // R
		0, 1, 0, 0, 0, // G
		0, 0, 1, 0, 0, // B
		0, 0, 0, 1, 0, // A
	}
}

// SaturationMatrix returns a matrix scaling saturation by factor:
// 0 is grayscale, 1 is unchanged.
func SaturationMatrix(factor float32) ColorMatrix {
	inv := 1 - factor
	sr, sg, sb := inv*lumR, inv*lumG, inv*lumB
	return ColorMatrix{
		sr + factor, sg, sb, 0, 0,
		sr, sg + factor, sb, 0, 0,
		sr, sg, sb + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Multiply composes two matrices. The result is equivalent to transforming
// a color by other first and then by m. Offsets of m are added once and are
// not scaled by other's offset column.
func (m ColorMatrix) Multiply(other ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 5; col++ {
			sum := m[row*5+0]*other[col] +
				m[row*5+1]*other[col+5] +
				m[row*5+2]*other[col+10] +
				m[row*5+3]*other[col+15]
			if col == 4 {
				sum += m[row*5+4]
			}
			out[row*5+col] = sum
		}
	}
	return out
}

// Transform applies the matrix to a straight-alpha color with components
// in [0, 255]. The result is not clamped.
func (m ColorMatrix) Transform(r, g, b, a float32) (float32, float32, float32, float32) {
	return m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4],
		m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9],
		m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14],
		m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m ColorMatrix) IsIdentity() bool {
	return m == IdentityMatrix()
}

// ApproxEqual reports whether every element of m is within eps of other.
func (m ColorMatrix) ApproxEqual(other ColorMatrix, eps float32) bool {
	for i := range m {
		d := m[i] - other[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}

// BuildColorMatrix derives the single transform for the given adjustments
// and filter chain. brightness, contrast and saturation are in [-1, 1] with
// 0 meaning unchanged. Filters are composed in list order.
func BuildColorMatrix(brightness, contrast, saturation float64, filters []FilterType) ColorMatrix {
	b := float32(brightness) * 255
	c := float32(contrast) + 1
	t := (1 - c) * 128
	s := float32(saturation) + 1

	sr := (1 - s) * lumR
	sg := (1 - s) * lumG
	sb := (1 - s) * lumB

	result := ColorMatrix{
		c * (sr + s), c * sg, c * sb, 0, b + t,
		c * sr, c * (sg + s), c * sb, 0, b + t,
		c * sr, c * sg, c * (sb + s), 0, b + t,
		0, 0, 0, 1, 0,
	}

	for _, f := range filters {
		result = result.Multiply(f.Matrix())
	}
	return result
}

// ColorMatrix derives the render transform for the state's adjustments and
// applied filters.
func (s EditState) ColorMatrix() ColorMatrix {
	return BuildColorMatrix(s.Brightness, s.Contrast, s.Saturation, s.Filters)
}
