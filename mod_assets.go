package glrender

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gekko3d/glrender/gfx"
	"github.com/gekko3d/glrender/model"
)

type AssetId string

type AssetKind string

const (
	AssetProgram AssetKind = "program"
	AssetModel   AssetKind = "model"
	AssetTexture AssetKind = "texture"
)

// AssetServer owns every GPU resource the scenes create and releases them
// together before the window and its context go away.
type AssetServer struct {
	ctx *gfx.Context

	programs map[AssetId]*gfx.Program
	models   map[AssetId]*model.Model
	textures map[AssetId]*gfx.Texture
	order    []AssetId
}

type AssetServerModule struct{}

func NewAssetServer(ctx *gfx.Context) *AssetServer {
	return &AssetServer{
		ctx:      ctx,
		programs: make(map[AssetId]*gfx.Program),
		models:   make(map[AssetId]*model.Model),
		textures: make(map[AssetId]*gfx.Texture),
	}
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	ctx, ok := Resource[gfx.Context](app)
	if !ok {
		cmd.Fail(fmt.Errorf("asset server needs a render context; install PlatformWindowModule first"))
		return
	}
	server := NewAssetServer(ctx)
	app.addResources(server)
	cmd.OnShutdown(func() {
		n := server.Len()
		server.ReleaseAll()
		app.Logger().Debugf("released %d assets", n)
	})
}

func (server *AssetServer) Context() *gfx.Context { return server.ctx }

// LoadProgram compiles and links a program from two sources read through src.
func (server *AssetServer) LoadProgram(src gfx.SourceReader, vertexPath, fragmentPath string) (AssetId, *gfx.Program, error) {
	p, err := gfx.LoadProgram(server.ctx, src, vertexPath, fragmentPath)
	if err != nil {
		return "", nil, err
	}
	return server.AddProgram(p), p, nil
}

func (server *AssetServer) AddProgram(p *gfx.Program) AssetId {
	id := server.track()
	server.programs[id] = p
	return id
}

// LoadModel builds a model from an OBJ file and an optional texture.
func (server *AssetServer) LoadModel(meshPath, texturePath string, opts model.Options) (AssetId, *model.Model, error) {
	m, err := model.Load(server.ctx, meshPath, texturePath, opts)
	if err != nil {
		return "", nil, err
	}
	return server.AddModel(m), m, nil
}

func (server *AssetServer) AddModel(m *model.Model) AssetId {
	id := server.track()
	server.models[id] = m
	return id
}

func (server *AssetServer) LoadTexture(path string, opts gfx.TextureOptions) (AssetId, *gfx.Texture, error) {
	t, err := gfx.LoadTexture(server.ctx, path, opts)
	if err != nil {
		return "", nil, err
	}
	id := server.track()
	server.textures[id] = t
	return id, t, nil
}

func (server *AssetServer) Program(id AssetId) (*gfx.Program, bool) {
	p, ok := server.programs[id]
	return p, ok
}

func (server *AssetServer) Model(id AssetId) (*model.Model, bool) {
	m, ok := server.models[id]
	return m, ok
}

func (server *AssetServer) Texture(id AssetId) (*gfx.Texture, bool) {
	t, ok := server.textures[id]
	return t, ok
}

func (server *AssetServer) Kind(id AssetId) (AssetKind, bool) {
	switch {
	case server.programs[id] != nil:
		return AssetProgram, true
	case server.models[id] != nil:
		return AssetModel, true
	case server.textures[id] != nil:
		return AssetTexture, true
	}
	return "", false
}

func (server *AssetServer) Len() int { return len(server.order) }

// Release destroys one asset. Unknown ids are ignored.
func (server *AssetServer) Release(id AssetId) {
	if p, ok := server.programs[id]; ok {
		p.Destroy()
		delete(server.programs, id)
	} else if m, ok := server.models[id]; ok {
		m.Destroy()
		delete(server.models, id)
	} else if t, ok := server.textures[id]; ok {
		t.Destroy()
		delete(server.textures, id)
	} else {
		return
	}
	for i, o := range server.order {
		if o == id {
			server.order = append(server.order[:i], server.order[i+1:]...)
			break
		}
	}
}

// ReleaseAll destroys every asset, newest first.
func (server *AssetServer) ReleaseAll() {
	for len(server.order) > 0 {
		server.Release(server.order[len(server.order)-1])
	}
}

func (server *AssetServer) track() AssetId {
	id := makeAssetId()
	server.order = append(server.order, id)
	return id
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
