package asset

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/glowstage/internal/animation"
	"github.com/Faultbox/glowstage/internal/logger"
)

func (d *decoder) clip(ga *gltf.Animation, index int) (*animation.Clip, error) {
	name := ga.Name
	if name == "" {
		name = fmt.Sprintf("clip_%d", index)
	}

	var channels []animation.Channel
	for ci, gc := range ga.Channels {
		if gc.Target.Node == nil {
			continue
		}
		path, ok := channelPath(gc.Target.Path)
		if !ok {
			// Morph target weights have no scene representation.
			logger.Debug("skipping animation channel",
				zap.String("clip", name),
				zap.Int("channel", ci),
				zap.Int("path", int(gc.Target.Path)),
			)
			continue
		}
		if gc.Sampler < 0 || gc.Sampler >= len(ga.Samplers) {
			return nil, fmt.Errorf("channel %d: sampler %d out of range", ci, gc.Sampler)
		}
		ch, err := d.channel(ga.Samplers[gc.Sampler], *gc.Target.Node, path)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ci, err)
		}
		channels = append(channels, ch)
	}
	return animation.NewClip(name, channels), nil
}

func channelPath(p gltf.TRSProperty) (animation.Path, bool) {
	switch p {
	case gltf.TRSTranslation:
		return animation.PathTranslation, true
	case gltf.TRSRotation:
		return animation.PathRotation, true
	case gltf.TRSScale:
		return animation.PathScale, true
	}
	return 0, false
}

func channelInterpolation(i gltf.Interpolation) animation.Interpolation {
	switch i {
	case gltf.InterpolationStep:
		return animation.InterpolationStep
	case gltf.InterpolationCubicSpline:
		return animation.InterpolationCubicSpline
	}
	return animation.InterpolationLinear
}

func (d *decoder) channel(s *gltf.AnimationSampler, node int, path animation.Path) (animation.Channel, error) {
	ch := animation.Channel{
		Node:          node,
		Path:          path,
		Interpolation: channelInterpolation(s.Interpolation),
	}

	in, err := d.accessor(s.Input)
	if err != nil {
		return ch, err
	}
	rawTimes, err := modeler.ReadAccessor(d.doc, in, nil)
	if err != nil {
		return ch, fmt.Errorf("reading key times: %w", err)
	}
	times, ok := rawTimes.([]float32)
	if !ok {
		return ch, fmt.Errorf("key times have type %T", rawTimes)
	}
	ch.Times = times

	out, err := d.accessor(s.Output)
	if err != nil {
		return ch, err
	}
	raw, err := modeler.ReadAccessor(d.doc, out, nil)
	if err != nil {
		return ch, fmt.Errorf("reading key values: %w", err)
	}
	switch v := raw.(type) {
	case [][3]float32:
		ch.Values = make([]mgl32.Vec4, len(v))
		for i, e := range v {
			ch.Values[i] = mgl32.Vec4{e[0], e[1], e[2], 0}
		}
	case [][4]float32:
		ch.Values = make([]mgl32.Vec4, len(v))
		for i, e := range v {
			ch.Values[i] = mgl32.Vec4(e)
		}
	default:
		return ch, fmt.Errorf("key values have type %T", raw)
	}

	perKey := 1
	if ch.Interpolation == animation.InterpolationCubicSpline {
		perKey = 3
	}
	if len(ch.Values) < len(ch.Times)*perKey {
		return ch, fmt.Errorf("%d keys but %d values", len(ch.Times), len(ch.Values))
	}
	return ch, nil
}
