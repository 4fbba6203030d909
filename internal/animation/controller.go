package animation

import (
	"go.uber.org/zap"

	"github.com/Faultbox/glowstage/internal/logger"
	"github.com/Faultbox/glowstage/internal/scene"
)

// Source is a loaded asset as the controller sees it: the model root, the
// nodes clip channels index into, and the embedded clips in file order.
type Source interface {
	Model() *scene.Node
	Nodes() []*scene.Node
	Clips() []*Clip
}

// Mode is the controller's state. It is one of Initial, ClipDriven or
// ProceduralIdle.
type Mode interface {
	String() string
	mode()
}

// Initial means no asset has loaded yet; the model is not in the scene.
type Initial struct{}

// ClipDriven means the model's pose comes entirely from Player.
type ClipDriven struct {
	Player *Player
}

// ProceduralIdle means the model bobs and sways under Idle.
type ProceduralIdle struct {
	Idle *IdleMotion
}

func (Initial) mode()        {}
func (ClipDriven) mode()     {}
func (ProceduralIdle) mode() {}

func (Initial) String() string { return "initial" }

func (m ClipDriven) String() string { return "clip:" + m.Player.Clip().Name }

func (ProceduralIdle) String() string { return "idle" }

// Controller owns the model handle and its motion. The mode is chosen once,
// when the asset finishes loading, and never changes afterwards.
type Controller struct {
	restingHeight float32
	mode          Mode
	model         *scene.Node
}

// NewController creates a controller in the Initial mode. restingHeight is
// the base vertical position for procedural idle motion.
func NewController(restingHeight float32) *Controller {
	return &Controller{
		restingHeight: restingHeight,
		mode:          Initial{},
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Model returns the model being driven, or nil in Initial.
func (c *Controller) Model() *scene.Node {
	return c.model
}

// OnLoad selects the mode for a freshly loaded asset: the first embedded clip
// if there is one, procedural idle otherwise. It returns false and changes
// nothing if a mode has already been selected.
func (c *Controller) OnLoad(src Source) bool {
	if _, ok := c.mode.(Initial); !ok {
		logger.Warn("ignoring second asset load", zap.Stringer("mode", c.mode))
		return false
	}

	c.model = src.Model()

	clips := src.Clips()
	if len(clips) > 0 {
		if len(clips) > 1 {
			logger.Debug("asset has several clips, playing the first",
				zap.Int("clips", len(clips)),
				zap.String("clip", clips[0].Name),
			)
		}
		player := NewPlayer(clips[0], src.Nodes())
		player.Play()
		c.mode = ClipDriven{Player: player}
	} else {
		c.mode = ProceduralIdle{Idle: &IdleMotion{BaseHeight: float64(c.restingHeight)}}
	}

	logger.Info("animation mode selected", zap.Stringer("mode", c.mode))
	return true
}

// OnLoadFailed records a failed load. The controller stays in Initial and
// the scene keeps rendering without a model.
func (c *Controller) OnLoadFailed(err error) {
	logger.Error("model failed to load, continuing without it", zap.Error(err))
}

// Update advances the active motion by dt seconds.
func (c *Controller) Update(dt float64) {
	switch m := c.mode.(type) {
	case ClipDriven:
		m.Player.Update(float32(dt))
	case ProceduralIdle:
		m.Idle.Advance(dt)
		c.model.Position[1] = float32(m.Idle.Height())
		c.model.SetYaw(float32(m.Idle.Yaw()))
	}
}
