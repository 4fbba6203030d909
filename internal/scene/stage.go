package scene

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// StageConfig holds the resolved (already parsed) stage settings.
type StageConfig struct {
	Background mgl32.Vec3

	Grid        image.Image
	GridTint    mgl32.Vec3
	GridOpacity float32
	GridRepeat  float32

	GroundColor mgl32.Vec3

	ModelScale    float32
	RestingHeight float32
}

// Backdrop and ground dimensions in world units.
const (
	BackdropWidth  = 20
	BackdropHeight = 12
	BackdropDepth  = -3
	GroundSize     = 50
)

// Stage is the fixed set dressing around the character: a grid backdrop
// behind it and a ground plane at its feet. The model is attached once it
// has loaded.
type Stage struct {
	Root       *Node
	Backdrop   *Node
	Ground     *Node
	Background mgl32.Vec3

	cfg   StageConfig
	model *Node
}

// NewStage builds the backdrop and ground nodes.
func NewStage(cfg StageConfig) *Stage {
	s := &Stage{
		Root:       NewNode("stage"),
		Background: cfg.Background,
		cfg:        cfg,
	}

	hud := NewMaterial("backdrop")
	hud.BaseColor = cfg.GridTint
	hud.Opacity = cfg.GridOpacity
	hud.Transparent = true
	hud.Unlit = true
	hud.Map = cfg.Grid
	hud.MapRepeat = mgl32.Vec2{cfg.GridRepeat, cfg.GridRepeat}

	s.Backdrop = NewNode("backdrop")
	s.Backdrop.Position = mgl32.Vec3{0, 0, BackdropDepth}
	s.Backdrop.Meshes = []*Mesh{NewPlane("backdrop", BackdropWidth, BackdropHeight, hud)}
	s.Root.Add(s.Backdrop)

	floor := NewMaterial("ground")
	floor.BaseColor = cfg.GroundColor

	groundMesh := NewPlane("ground", GroundSize, GroundSize, floor)
	groundMesh.ReceiveShadow = true

	s.Ground = NewNode("ground")
	s.Ground.Rotation = mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0})
	s.Ground.Position = mgl32.Vec3{0, cfg.RestingHeight, 0}
	s.Ground.Meshes = []*Mesh{groundMesh}
	s.Root.Add(s.Ground)

	return s
}

// AttachModel places model at the resting height with the configured scale
// and adds it to the stage. Only the first model is attached; later calls
// return false.
func (s *Stage) AttachModel(model *Node) bool {
	if s.model != nil || model == nil {
		return false
	}
	model.SetUniformScale(s.cfg.ModelScale)
	model.Position = mgl32.Vec3{0, s.cfg.RestingHeight, 0}
	s.Root.Add(model)
	s.model = model
	return true
}

// Model returns the attached model, or nil before load completes.
func (s *Stage) Model() *Node {
	return s.model
}

// RestingHeight returns the model's base vertical position.
func (s *Stage) RestingHeight() float32 {
	return s.cfg.RestingHeight
}

// ShadowBounds returns the region the key light's shadow map covers: the
// area around the model, from the ground up to head height.
func (s *Stage) ShadowBounds() (lo, hi mgl32.Vec3) {
	y := s.cfg.RestingHeight
	return mgl32.Vec3{-3, y - 0.1, -3}, mgl32.Vec3{3, y + 3.5*s.cfg.ModelScale, 3}
}
