package postprocess

import "math"

// maxKernel matches MAX_KERNEL in blur.frag.
const maxKernel = 32

// smoothWidth is the soft knee above the bright-pass threshold.
const smoothWidth = 0.01

// kernelRadius maps the bloom radius setting to a blur tap count, including
// the center tap.
func kernelRadius(radius float32) int {
	k := 3 + int(math.Round(float64(radius)*10))
	return max(1, min(k, maxKernel))
}

// gaussianWeights returns one-sided weights for a separable blur of n taps.
// The center tap is counted once and every other tap twice, so the full
// kernel sums to one.
func gaussianWeights(n int) []float32 {
	if n <= 1 {
		return []float32{1}
	}
	sigma := float64(n) / 2
	w := make([]float64, n)
	total := 0.0
	for i := range w {
		w[i] = math.Exp(-0.5 * float64(i*i) / (sigma * sigma))
		if i == 0 {
			total += w[i]
		} else {
			total += 2 * w[i]
		}
	}
	out := make([]float32, n)
	for i := range w {
		out[i] = float32(w[i] / total)
	}
	return out
}

// blurPasses is the number of horizontal+vertical blur rounds. Larger radii
// spread further by repeating the kernel.
func blurPasses(radius float32) int {
	return 1 + int(math.Round(float64(max(radius, 0))*2))
}

// bloomSize is the bloom target size: half the scene, at least one pixel.
func bloomSize(width, height int) (int32, int32) {
	return int32(max(width/2, 1)), int32(max(height/2, 1))
}
