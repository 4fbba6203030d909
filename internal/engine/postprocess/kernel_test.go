package postprocess

import (
	"math"
	"testing"
)

func TestKernelRadius(t *testing.T) {
	tests := []struct {
		radius float32
		want   int
	}{
		{0, 3},
		{0.6, 9},
		{1, 13},
		{100, maxKernel},
		{-5, 1},
	}
	for _, tt := range tests {
		if got := kernelRadius(tt.radius); got != tt.want {
			t.Errorf("kernelRadius(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}

func TestGaussianWeightsNormalized(t *testing.T) {
	for _, n := range []int{1, 3, 9, maxKernel} {
		w := gaussianWeights(n)
		if len(w) != n {
			t.Fatalf("len = %d, want %d", len(w), n)
		}
		sum := float64(w[0])
		for _, v := range w[1:] {
			sum += 2 * float64(v)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("n=%d: kernel sums to %v, want 1", n, sum)
		}
		for i := 1; i < n; i++ {
			if w[i] > w[i-1] {
				t.Errorf("n=%d: weight %d (%v) exceeds weight %d (%v)", n, i, w[i], i-1, w[i-1])
			}
		}
	}
}

func TestBlurPasses(t *testing.T) {
	tests := []struct {
		radius float32
		want   int
	}{
		{0, 1},
		{0.6, 2},
		{1, 3},
		{-1, 1},
	}
	for _, tt := range tests {
		if got := blurPasses(tt.radius); got != tt.want {
			t.Errorf("blurPasses(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}

func TestBloomSize(t *testing.T) {
	if w, h := bloomSize(1280, 720); w != 640 || h != 360 {
		t.Errorf("bloomSize = %dx%d, want 640x360", w, h)
	}
	if w, h := bloomSize(1, 1); w != 1 || h != 1 {
		t.Errorf("bloomSize(1,1) = %dx%d, want 1x1", w, h)
	}
}
