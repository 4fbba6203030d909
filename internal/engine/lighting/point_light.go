package lighting

import "math"

// MaxPointLights is the size of the point light arrays in the lit shader.
const MaxPointLights = 4

// PointLight is an omnidirectional light with a finite range.
type PointLight struct {
	Position  [3]float32
	Color     [3]float32 // linear RGB
	Range     float32    // zero means unlimited
	Intensity float32
}

// Attenuation returns the falloff factor at distance d: inverse-square,
// windowed smoothly to zero at Range.
func (l PointLight) Attenuation(d float32) float32 {
	dd := math.Max(float64(d), 0.1)
	falloff := 1 / (dd * dd)
	if l.Range > 0 {
		ratio := float64(d) / float64(l.Range)
		window := math.Max(0, 1-ratio*ratio*ratio*ratio)
		falloff *= window * window
	}
	return float32(falloff)
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer, truncating to MaxPointLights.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	b.Clear()
	count := min(len(lights), MaxPointLights)
	b.Lights = append(b.Lights, lights[:count]...)
	b.Count = count
}

// Positions returns positions as [x0, y0, z0, x1, ...], padded to
// MaxPointLights.
func (b *PointLightBuffer) Positions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Position[:])
	}
	return result
}

// Colors returns colors premultiplied by intensity as [r0, g0, b0, r1, ...],
// padded to MaxPointLights.
func (b *PointLightBuffer) Colors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		for c := 0; c < 3; c++ {
			result[i*3+c] = light.Color[c] * light.Intensity
		}
	}
	return result
}

// Ranges returns ranges padded to MaxPointLights.
func (b *PointLightBuffer) Ranges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}
