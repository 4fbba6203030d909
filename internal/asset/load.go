package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // glTF base color textures
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/glowstage/internal/logger"
	"github.com/Faultbox/glowstage/internal/scene"
)

// Load opens a .gltf or .glb file and converts it. Glow parts are styled
// with glow.
func Load(path string, glow GlowStyle) (*Asset, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, path, err)
	}

	a, err := fromDocument(doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, path, err)
	}
	a.Path = path

	styled := applyGlow(a, glow)

	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("nodes", len(a.nodes)),
		zap.Int("meshes", len(a.meshes)),
		zap.Int("clips", len(a.clips)),
		zap.Int("glow_meshes", styled),
	)
	return a, nil
}

// decoder converts one glTF document. Materials and textures are cached so
// primitives sharing a material index share the decoded image.
type decoder struct {
	doc     *gltf.Document
	baseDir string
	images  map[int]image.Image
}

func fromDocument(doc *gltf.Document, baseDir string) (*Asset, error) {
	d := &decoder{doc: doc, baseDir: baseDir, images: make(map[int]image.Image)}
	a := &Asset{root: scene.NewNode("model")}

	a.nodes = make([]*scene.Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		a.nodes[i] = d.node(gn, i)
	}

	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < 0 || c >= len(a.nodes) {
				return nil, fmt.Errorf("node %d: child index %d out of range", i, c)
			}
			a.nodes[i].Add(a.nodes[c])
		}
	}

	for _, r := range d.roots() {
		if r < 0 || r >= len(a.nodes) {
			return nil, fmt.Errorf("scene root %d out of range", r)
		}
		a.root.Add(a.nodes[r])
	}

	for i, gn := range doc.Nodes {
		if gn.Mesh != nil {
			meshes, err := d.mesh(*gn.Mesh)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			a.nodes[i].Meshes = meshes
			a.meshes = append(a.meshes, meshes...)
		}
		if gn.Skin != nil {
			skin, err := d.skin(*gn.Skin, a.nodes)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			a.nodes[i].Skin = skin
		}
	}

	for i, ga := range doc.Animations {
		clip, err := d.clip(ga, i)
		if err != nil {
			return nil, fmt.Errorf("animation %d: %w", i, err)
		}
		a.clips = append(a.clips, clip)
	}

	return a, nil
}

// roots returns the node indices of the default scene, or every parentless
// node when the file has no scenes.
func (d *decoder) roots() []int {
	if len(d.doc.Scenes) > 0 {
		idx := 0
		if d.doc.Scene != nil && *d.doc.Scene < len(d.doc.Scenes) {
			idx = *d.doc.Scene
		}
		return d.doc.Scenes[idx].Nodes
	}

	hasParent := make([]bool, len(d.doc.Nodes))
	for _, n := range d.doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i, p := range hasParent {
		if !p {
			roots = append(roots, i)
		}
	}
	return roots
}

func (d *decoder) node(gn *gltf.Node, index int) *scene.Node {
	name := gn.Name
	if name == "" {
		name = fmt.Sprintf("node_%d", index)
	}
	n := scene.NewNode(name)

	if m := gn.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var mat mgl32.Mat4
		for i := range m {
			mat[i] = float32(m[i])
		}
		n.Position, n.Rotation, n.Scale = decompose(mat)
		return n
	}

	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault()
	s := gn.ScaleOrDefault()
	n.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
	n.Rotation = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	n.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
	return n
}

// decompose splits an affine TRS matrix. Shear is discarded.
func decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	t := m.Col(3).Vec3()
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	if m.Mat3().Det() < 0 {
		sx = -sx
	}

	var rot mgl32.Mat4
	if sx != 0 && sy != 0 && sz != 0 {
		rot = mgl32.Mat4FromCols(
			m.Col(0).Mul(1/sx),
			m.Col(1).Mul(1/sy),
			m.Col(2).Mul(1/sz),
			mgl32.Vec4{0, 0, 0, 1},
		)
	} else {
		rot = mgl32.Ident4()
	}
	return t, mgl32.Mat4ToQuat(rot).Normalize(), mgl32.Vec3{sx, sy, sz}
}

func (d *decoder) mesh(index int) ([]*scene.Mesh, error) {
	if index < 0 || index >= len(d.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", index)
	}
	gm := d.doc.Meshes[index]

	var out []*scene.Mesh
	for pi, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			logger.Warn("skipping non-triangle primitive",
				zap.String("mesh", gm.Name),
				zap.Int("primitive", pi),
			)
			continue
		}
		m, err := d.primitive(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", gm.Name, pi, err)
		}
		m.Name = gm.Name
		out = append(out, m)
	}
	return out, nil
}

func (d *decoder) accessor(index int) (*gltf.Accessor, error) {
	if index < 0 || index >= len(d.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", index)
	}
	return d.doc.Accessors[index], nil
}

func (d *decoder) primitive(prim *gltf.Primitive) (*scene.Mesh, error) {
	m := &scene.Mesh{CastShadow: true, ReceiveShadow: true}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	acr, err := d.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	if m.Positions, err = modeler.ReadPosition(d.doc, acr, nil); err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acr, err := d.accessor(idx); err == nil {
			m.Normals, err = modeler.ReadNormal(d.doc, acr, nil)
			if err != nil {
				return nil, fmt.Errorf("reading normals: %w", err)
			}
		}
	}

	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err := d.accessor(idx); err == nil {
			m.UVs, err = modeler.ReadTextureCoord(d.doc, acr, nil)
			if err != nil {
				return nil, fmt.Errorf("reading texcoords: %w", err)
			}
		}
	}

	jIdx, hasJoints := prim.Attributes[gltf.JOINTS_0]
	wIdx, hasWeights := prim.Attributes[gltf.WEIGHTS_0]
	if hasJoints && hasWeights {
		jAcr, err := d.accessor(jIdx)
		if err != nil {
			return nil, err
		}
		wAcr, err := d.accessor(wIdx)
		if err != nil {
			return nil, err
		}
		if m.Joints, err = modeler.ReadJoints(d.doc, jAcr, nil); err != nil {
			return nil, fmt.Errorf("reading joints: %w", err)
		}
		if m.Weights, err = modeler.ReadWeights(d.doc, wAcr, nil); err != nil {
			return nil, fmt.Errorf("reading weights: %w", err)
		}
	}

	if prim.Indices != nil {
		acr, err := d.accessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		if m.Indices, err = modeler.ReadIndices(d.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	}

	if len(m.Normals) != len(m.Positions) {
		m.ComputeNormals()
	}

	m.Material = d.material(prim.Material)
	return m, nil
}

func (d *decoder) material(index *int) *scene.Material {
	if index == nil || *index < 0 || *index >= len(d.doc.Materials) {
		return scene.NewMaterial("default")
	}
	gm := d.doc.Materials[*index]
	mat := scene.NewMaterial(gm.Name)

	e := gm.EmissiveFactor
	mat.Emissive = mgl32.Vec3{float32(e[0]), float32(e[1]), float32(e[2])}
	if mat.Emissive.Len() > 0 {
		mat.EmissiveIntensity = 1
	}

	pbr := gm.PBRMetallicRoughness
	if pbr == nil {
		return mat
	}
	c := pbr.BaseColorFactorOrDefault()
	mat.BaseColor = mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
	mat.Opacity = float32(c[3])
	mat.Transparent = gm.AlphaMode == gltf.AlphaBlend

	if pbr.BaseColorTexture != nil {
		img, err := d.texture(pbr.BaseColorTexture.Index)
		if err != nil {
			logger.Warn("base color texture unavailable",
				zap.String("material", gm.Name),
				zap.Error(err),
			)
		} else {
			mat.Map = img
		}
	}
	return mat
}

func (d *decoder) texture(index int) (image.Image, error) {
	if index < 0 || index >= len(d.doc.Textures) || d.doc.Textures[index].Source == nil {
		return nil, fmt.Errorf("texture %d has no image source", index)
	}
	src := *d.doc.Textures[index].Source
	if img, ok := d.images[src]; ok {
		return img, nil
	}
	if src < 0 || src >= len(d.doc.Images) {
		return nil, fmt.Errorf("image index %d out of range", src)
	}

	gi := d.doc.Images[src]
	var data []byte
	var err error
	switch {
	case gi.BufferView != nil:
		if *gi.BufferView < 0 || *gi.BufferView >= len(d.doc.BufferViews) {
			return nil, fmt.Errorf("image %d: buffer view out of range", src)
		}
		data, err = modeler.ReadBufferView(d.doc, d.doc.BufferViews[*gi.BufferView])
	case gi.URI != "" && !strings.HasPrefix(gi.URI, "data:"):
		data, err = os.ReadFile(filepath.Join(d.baseDir, filepath.FromSlash(gi.URI)))
	default:
		return nil, fmt.Errorf("image %d: unsupported source", src)
	}
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", src, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image %d: decoding: %w", src, err)
	}
	d.images[src] = img
	return img, nil
}

func (d *decoder) skin(index int, nodes []*scene.Node) (*scene.Skin, error) {
	if index < 0 || index >= len(d.doc.Skins) {
		return nil, fmt.Errorf("skin index %d out of range", index)
	}
	gs := d.doc.Skins[index]

	skin := &scene.Skin{Joints: make([]*scene.Node, len(gs.Joints))}
	for i, j := range gs.Joints {
		if j < 0 || j >= len(nodes) {
			return nil, fmt.Errorf("skin %d: joint %d out of range", index, j)
		}
		skin.Joints[i] = nodes[j]
	}

	skin.InverseBind = make([]mgl32.Mat4, len(gs.Joints))
	for i := range skin.InverseBind {
		skin.InverseBind[i] = mgl32.Ident4()
	}
	if gs.InverseBindMatrices != nil {
		acr, err := d.accessor(*gs.InverseBindMatrices)
		if err != nil {
			return nil, err
		}
		mats, err := modeler.ReadInverseBindMatrices(d.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("skin %d: reading inverse bind matrices: %w", index, err)
		}
		for i := 0; i < len(mats) && i < len(skin.InverseBind); i++ {
			skin.InverseBind[i] = columnMajor(mats[i])
		}
	}
	return skin, nil
}

// columnMajor flattens a glTF MAT4 element, stored column by column.
func columnMajor(cols [4][4]float32) mgl32.Mat4 {
	var m mgl32.Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			m[c*4+r] = cols[c][r]
		}
	}
	return m
}
