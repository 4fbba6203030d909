package animation

import (
	"math"

	"github.com/Faultbox/glowstage/internal/scene"
)

// Player plays a single clip against a set of target nodes. It loops by
// default.
type Player struct {
	clip    *Clip
	targets []*scene.Node
	time    float32
	playing bool
	Loop    bool
}

// NewPlayer creates a stopped, looping player for clip.
func NewPlayer(clip *Clip, targets []*scene.Node) *Player {
	return &Player{
		clip:    clip,
		targets: targets,
		Loop:    true,
	}
}

// Play starts playback from the current playhead.
func (p *Player) Play() {
	p.playing = true
}

// Stop pauses playback, keeping the playhead.
func (p *Player) Stop() {
	p.playing = false
}

// Playing reports whether Update advances the playhead.
func (p *Player) Playing() bool {
	return p.playing
}

// Clip returns the clip being played.
func (p *Player) Clip() *Clip {
	return p.clip
}

// Time returns the playhead in seconds, always within [0, duration].
func (p *Player) Time() float32 {
	return p.time
}

// Update advances the playhead by dt seconds and poses the targets.
func (p *Player) Update(dt float32) {
	if !p.playing {
		return
	}

	p.time += dt
	d := p.clip.Duration
	switch {
	case d <= 0:
		p.time = 0
	case p.Loop:
		p.time = float32(math.Mod(float64(p.time), float64(d)))
		if p.time < 0 {
			p.time += d
		}
	case p.time > d:
		p.time = d
		p.playing = false
	}

	p.clip.Apply(p.time, p.targets)
}
