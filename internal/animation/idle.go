package animation

import "math"

// Idle motion constants: a slow vertical bob and a gentle yaw sway.
const (
	IdleBobAmplitude  = 0.03
	IdleBobFrequency  = 1.5
	IdleSwayAmplitude = 0.2
	IdleSwayFrequency = 0.5
)

// IdleMotion is the procedural motion used when an asset has no clips. Its
// outputs are pure functions of Elapsed.
type IdleMotion struct {
	BaseHeight float64
	Elapsed    float64
}

// Advance moves the motion forward by dt seconds.
func (m *IdleMotion) Advance(dt float64) {
	m.Elapsed += dt
}

// Height returns the model's vertical position.
func (m IdleMotion) Height() float64 {
	return m.BaseHeight + IdleBobAmplitude*math.Sin(m.Elapsed*IdleBobFrequency)
}

// Yaw returns the model's rotation about the vertical axis, in radians.
func (m IdleMotion) Yaw() float64 {
	return IdleSwayAmplitude * math.Sin(m.Elapsed*IdleSwayFrequency)
}
