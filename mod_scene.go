package glrender

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/glrender/config"
	"github.com/gekko3d/glrender/core"
	"github.com/gekko3d/glrender/gfx"
	"github.com/gekko3d/glrender/model"
	"github.com/gekko3d/glrender/shaders"
)

// Frame uniforms set once per frame before any model draws. TexturedUniform is
// set per model.
const (
	ProjectionUniform = "proj"
	ViewUniform       = "view"
	LightUniform      = "light"
	TexturedUniform   = "textured"
)

// triangle is the simple scene's mesh: position then color per vertex.
var triangle = []float32{
	-0.5, -0.5, -1.0, 1.0, 0.7, 0.0,
	0.5, -0.5, -1.0, 0.0, 1.0, 0.7,
	0.0, 0.5, -1.0, 0.7, 0.0, 1.0,
}

// Scene is the resource the render systems draw each frame.
type Scene struct {
	Key  string
	Name string
	Kind config.SceneKind

	Program *gfx.Program
	Models  []*model.Model
	Light   mgl32.Vec3
}

// SceneModule builds the configured scene and schedules its uniform and draw
// systems. It needs the window and asset server modules installed first.
type SceneModule struct {
	Scene    config.SceneConfig
	Renderer config.RendererConfig
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	ws, ok := Resource[WindowState](app)
	if !ok {
		cmd.Fail(fmt.Errorf("scene %q needs a window; install PlatformWindowModule first", m.Scene.Key))
		return
	}
	assets, ok := Resource[AssetServer](app)
	if !ok {
		cmd.Fail(fmt.Errorf("scene %q needs an asset server; install AssetServerModule first", m.Scene.Key))
		return
	}

	ctx := assets.Context()
	ctx.Setup(ws.WindowWidth, ws.WindowHeight, m.Renderer.ClearColor, m.Renderer.DepthTest)

	scene, err := BuildScene(assets, m.Scene, m.Renderer)
	if err != nil {
		cmd.Fail(fmt.Errorf("scene %q: %w", m.Scene.Key, err))
		return
	}
	app.addResources(scene)
	if _, ok := Resource[core.Camera](app); !ok {
		app.addResources(core.NewCamera(ws.WindowWidth, ws.WindowHeight))
	}
	app.Logger().Infof("Scene %s: %s", scene.Key, scene.Name)

	app.UseSystem(
		System(sceneUniformSystem).
			InStage(PreRender),
	)
	app.UseSystem(
		System(sceneRenderSystem).
			InStage(Render),
	)
}

// BuildScene creates the program and models of one scene through assets, so a
// partial failure still leaves everything owned by the server.
func BuildScene(assets *AssetServer, sc config.SceneConfig, rc config.RendererConfig) (*Scene, error) {
	src := shaders.Overlay{Dir: sc.ShaderDir}
	_, prog, err := assets.LoadProgram(src, sc.VertexShader, sc.FragmentShader)
	if err != nil {
		return nil, err
	}

	scene := &Scene{
		Key:     sc.Key,
		Name:    sc.Name,
		Kind:    sc.Kind,
		Program: prog,
		Light:   mgl32.Vec3(rc.Light),
	}

	var mdl *model.Model
	switch sc.Kind {
	case config.SceneSimple:
		vertices, err := gfx.VerticesFromFloats(triangle, gfx.LayoutPositionColor)
		if err != nil {
			return nil, err
		}
		mesh := gfx.NewMesh(assets.Context(), vertices, []uint32{0, 1, 2}, gfx.LayoutPositionColor)
		mdl = model.New([]*gfx.Mesh{mesh}, nil)
		assets.AddModel(mdl)
	case config.SceneModel:
		_, mdl, err = assets.LoadModel(sc.Mesh, sc.Texture, model.Options{Texture: rc.TextureOptions()})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown scene kind %q", sc.Kind)
	}

	mdl.Transform.Position = mgl32.Vec3(sc.Position)
	if sc.Scale > 0 {
		mdl.Transform.Scale = mgl32.Vec3{sc.Scale, sc.Scale, sc.Scale}
	}
	scene.Models = append(scene.Models, mdl)
	return scene, nil
}

func sceneUniformSystem(scene *Scene, cam *core.Camera) {
	p := scene.Program
	p.Use()
	p.SetMatrix(ProjectionUniform, cam.Projection())
	p.SetMatrix(ViewUniform, cam.View())

	if scene.Kind == config.SceneModel {
		p.SetVec3(LightUniform, scene.Light)
		p.SetInt(model.TextureUniform, 0)
	}
}

func sceneRenderSystem(ctx *gfx.Context, scene *Scene) {
	ctx.Clear()
	for _, m := range scene.Models {
		// The sampler keeps whatever texture the previous model bound.
		if scene.Kind == config.SceneModel {
			var textured int32
			if m.Texture() != nil {
				textured = 1
			}
			scene.Program.SetInt(TexturedUniform, textured)
		}
		m.Render(scene.Program)
	}
}
