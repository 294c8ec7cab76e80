// Package model combines meshes, an optional texture and a transform into one drawable.
package model

import (
	"github.com/gekko3d/glrender/core"
	"github.com/gekko3d/glrender/gfx"
	"github.com/gekko3d/glrender/loader"
)

// ModelUniform is the program uniform that receives the model matrix.
const ModelUniform = "model"

// TextureUniform is the sampler uniform bound to texture unit 0 when a model is textured.
const TextureUniform = "tex"

type Options struct {
	Texture gfx.TextureOptions
}

// Model owns its meshes and texture; Destroy releases both.
type Model struct {
	Transform core.Transform

	meshes  []*gfx.Mesh
	texture *gfx.Texture
}

// New wraps already built meshes and an optional texture.
func New(meshes []*gfx.Mesh, texture *gfx.Texture) *Model {
	return &Model{
		Transform: core.NewTransform(),
		meshes:    meshes,
		texture:   texture,
	}
}

// Load builds one mesh per object of the OBJ file at meshPath, and a texture from
// texturePath unless it is empty. On failure every resource created so far is released.
func Load(ctx *gfx.Context, meshPath, texturePath string, opts Options) (*Model, error) {
	subMeshes, err := loader.LoadOBJ(meshPath)
	if err != nil {
		return nil, err
	}

	var texture *gfx.Texture
	if texturePath != "" {
		texture, err = gfx.LoadTexture(ctx, texturePath, opts.Texture)
		if err != nil {
			return nil, err
		}
	}

	meshes := make([]*gfx.Mesh, 0, len(subMeshes))
	for _, sm := range subMeshes {
		meshes = append(meshes, gfx.NewMesh(ctx, sm.Vertices, sm.Indices, gfx.LayoutPositionNormalUV))
		ctx.Logger().Debugf("model %q: object %q with %d vertices, %d indices", meshPath, sm.Name, len(sm.Vertices), len(sm.Indices))
	}

	return New(meshes, texture), nil
}

func (m *Model) Meshes() []*gfx.Mesh   { return m.meshes }
func (m *Model) Texture() *gfx.Texture { return m.texture }

// Render uploads the model matrix, binds the texture if any, then draws every mesh.
// The program must already be in use with its frame uniforms (view, projection,
// light) set by the caller.
func (m *Model) Render(p *gfx.Program) {
	p.SetMatrix(ModelUniform, m.Transform.Matrix())
	if m.texture != nil {
		m.texture.Bind()
	}
	for _, mesh := range m.meshes {
		mesh.Render()
	}
}

// Destroy releases the meshes and texture.
func (m *Model) Destroy() {
	for _, mesh := range m.meshes {
		mesh.Destroy()
	}
	m.meshes = nil
	if m.texture != nil {
		m.texture.Destroy()
		m.texture = nil
	}
}
