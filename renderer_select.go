package glrender

import (
	"fmt"
	"time"

	"github.com/gekko3d/glrender/config"
)

// UseScene installs the scene renderer for sc, enforcing exclusivity via
// ensureSingleRenderer. Installing the same scene twice is a no-op.
// Usage:
//
//	app.UseScene(sceneCfg, cfg.Renderer)
func (app *App) UseScene(sc config.SceneConfig, rc config.RendererConfig) *App {
	if _, ok := Resource[RendererTag](app); ok {
		ensureSingleRenderer(app, sc.Key)
		return app
	}
	ensureSingleRenderer(app, sc.Key)
	app.Logger().Infof("Renderer selected: scene %s", sc.Key)
	return app.UseModules(SceneModule{Scene: sc, Renderer: rc})
}

// BaseModules returns the modules every scene runs on, in install order.
// The window module may be replaced, for example with an injected Window and Device.
func BaseModules(cfg config.Config, window PlatformWindowModule) []Module {
	return []Module{
		LoggingModule{Prefix: "glrender", Debug: cfg.Debug},
		TimeModule{ReportEvery: 5 * time.Second},
		window,
		InputModule{},
		CameraModule{Config: cfg.Camera},
		FlyingCameraModule{},
		AssetServerModule{},
	}
}

// WindowModule returns the GLFW window module for cfg.
func WindowModule(cfg config.Config) PlatformWindowModule {
	return PlatformWindowModule{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
	}
}

// NewSceneApp builds an app running the scene selected by key.
func NewSceneApp(cfg config.Config, key string, window PlatformWindowModule) (*App, error) {
	sc, ok := cfg.Scene(key)
	if !ok {
		return nil, fmt.Errorf("no scene with key %q", key)
	}
	app := NewAppBuilder().UseModule(BaseModules(cfg, window)...).Build()
	if err := app.Err(); err != nil {
		app.Shutdown()
		return nil, err
	}
	app.UseScene(sc, cfg.Renderer)
	if err := app.Err(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}
