// Package animation drives the character model: embedded clip playback when
// the asset carries clips, a procedural idle motion otherwise.
package animation

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glowstage/internal/scene"
)

// Path is the node property a channel animates.
type Path int

const (
	PathTranslation Path = iota
	PathRotation
	PathScale
)

// Interpolation selects how a channel blends between keyframes.
type Interpolation int

const (
	InterpolationLinear Interpolation = iota
	InterpolationStep
	// InterpolationCubicSpline keyframes store in-tangent, value and
	// out-tangent per key; only the value is sampled.
	InterpolationCubicSpline
)

// Channel animates one property of one node.
type Channel struct {
	Node          int
	Path          Path
	Interpolation Interpolation
	Times         []float32
	// Values holds one element per key (three for cubic spline). Rotation
	// channels use all four components (x, y, z, w); the others use three.
	Values []mgl32.Vec4
}

// Clip is a named, timed set of channels.
type Clip struct {
	Name     string
	Duration float32
	Channels []Channel
}

// NewClip builds a clip whose duration is the last keyframe time across all
// channels.
func NewClip(name string, channels []Channel) *Clip {
	c := &Clip{Name: name, Channels: channels}
	for _, ch := range channels {
		if n := len(ch.Times); n > 0 && ch.Times[n-1] > c.Duration {
			c.Duration = ch.Times[n-1]
		}
	}
	return c
}

// Apply poses nodes at time t. Channels targeting indices outside nodes are
// skipped.
func (c *Clip) Apply(t float32, nodes []*scene.Node) {
	for i := range c.Channels {
		ch := &c.Channels[i]
		if ch.Node < 0 || ch.Node >= len(nodes) || len(ch.Times) == 0 {
			continue
		}
		v := ch.Sample(t)
		n := nodes[ch.Node]
		switch ch.Path {
		case PathTranslation:
			n.Position = v.Vec3()
		case PathRotation:
			n.Rotation = mgl32.Quat{W: v.W(), V: v.Vec3()}.Normalize()
		case PathScale:
			n.Scale = v.Vec3()
		}
	}
}

// Sample returns the channel value at time t, clamped to the key range.
func (ch *Channel) Sample(t float32) mgl32.Vec4 {
	last := len(ch.Times) - 1
	if t <= ch.Times[0] {
		return ch.value(0)
	}
	if t >= ch.Times[last] {
		return ch.value(last)
	}

	// first key strictly after t
	next := sort.Search(len(ch.Times), func(i int) bool { return ch.Times[i] > t })
	prev := next - 1

	if ch.Interpolation == InterpolationStep {
		return ch.value(prev)
	}

	t0, t1 := ch.Times[prev], ch.Times[next]
	f := float32(0)
	if t1 > t0 {
		f = (t - t0) / (t1 - t0)
	}

	a, b := ch.value(prev), ch.value(next)
	if ch.Path == PathRotation {
		qa := mgl32.Quat{W: a.W(), V: a.Vec3()}
		qb := mgl32.Quat{W: b.W(), V: b.Vec3()}
		q := mgl32.QuatSlerp(qa, qb, f)
		return mgl32.Vec4{q.V.X(), q.V.Y(), q.V.Z(), q.W}
	}
	return a.Add(b.Sub(a).Mul(f))
}

func (ch *Channel) value(key int) mgl32.Vec4 {
	if ch.Interpolation == InterpolationCubicSpline {
		return ch.Values[key*3+1]
	}
	return ch.Values[key]
}
