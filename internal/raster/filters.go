package raster

// Sepia applies the standard warm sepia tone remap to every pixel.
//
// Each output channel is an independent weighted sum of the input channels:
//
//	newR = 0.393r + 0.769g + 0.189b
//	newG = 0.349r + 0.686g + 0.168b
//	newB = 0.272r + 0.534g + 0.131b
//
// Results are truncated to ints and clamped to 0-255, so bright inputs
// saturate rather than wrap. Output dimensions equal input dimensions.
func Sepia(img Image) Image {
	out := New(img.Width, img.Height)
	for i, p := range img.Pix {
		r := float64(p.R)
		g := float64(p.G)
		b := float64(p.B)
		out.Pix[i] = Pixel{
			R: clampChannel(int(0.393*r + 0.769*g + 0.189*b)),
			G: clampChannel(int(0.349*r + 0.686*g + 0.168*b)),
			B: clampChannel(int(0.272*r + 0.534*g + 0.131*b)),
		}
	}
	return out
}

// IncreaseIntensity scales a single color channel of every pixel by the
// given factor, leaving the other two channels at unit scale.
//
// The channel selector is one of 'r', 'g', or 'b'. Any other selector is a
// documented no-op: the image still passes through the scale/clamp pipeline
// with unit factors (so channel values already outside 0-255 get clamped),
// but no intensity change is applied. Output dimensions equal input
// dimensions.
func IncreaseIntensity(img Image, factor float64, channel byte) Image {
	rf, gf, bf := 1.0, 1.0, 1.0
	switch channel {
	case 'r':
		rf = factor
	case 'g':
		gf = factor
	case 'b':
		bf = factor
	}

	out := New(img.Width, img.Height)
	for i, p := range img.Pix {
		out.Pix[i] = scale(p, rf, gf, bf)
	}
	return out
}
