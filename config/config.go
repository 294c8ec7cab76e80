// Package config holds the runtime settings of the renderer and its example scenes.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gekko3d/glrender/gfx"
)

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Renderer RendererConfig `yaml:"renderer"`
	Scenes   []SceneConfig  `yaml:"scenes"`
	Debug    bool           `yaml:"debug"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type CameraConfig struct {
	FOVDegrees float32    `yaml:"fov_degrees"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	MoveSpeed  float32    `yaml:"move_speed"`
	LookSpeed  float32    `yaml:"look_speed"`
	Position   [3]float32 `yaml:"position"`
}

type RendererConfig struct {
	ClearColor [4]float32 `yaml:"clear_color"`
	DepthTest  bool       `yaml:"depth_test"`
	MinFilter  Filter     `yaml:"min_filter"`
	MagFilter  Filter     `yaml:"mag_filter"`
	Light      [3]float32 `yaml:"light"`
}

type SceneKind string

const (
	SceneSimple SceneKind = "simple"
	SceneModel  SceneKind = "model"
)

// SceneConfig describes one selectable scene. Shader paths are resolved against
// ShaderDir first and the embedded shaders second.
type SceneConfig struct {
	Key            string     `yaml:"key"`
	Name           string     `yaml:"name"`
	Kind           SceneKind  `yaml:"kind"`
	Mesh           string     `yaml:"mesh"`
	Texture        string     `yaml:"texture"`
	ShaderDir      string     `yaml:"shader_dir"`
	VertexShader   string     `yaml:"vertex_shader"`
	FragmentShader string     `yaml:"fragment_shader"`
	Position       [3]float32 `yaml:"position"`
	Scale          float32    `yaml:"scale"`
}

// Filter is a texture filter written by name in config files.
type Filter gfx.TextureFilter

var filterNames = map[string]gfx.TextureFilter{
	"nearest":                gfx.FilterNearest,
	"linear":                 gfx.FilterLinear,
	"linear_mipmap_linear":   gfx.FilterLinearMipmapLinear,
	"nearest_mipmap_nearest": gfx.FilterNearestMipmapNearest,
}

func (f *Filter) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, ok := filterNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return fmt.Errorf("line %d: unknown texture filter %q", value.Line, s)
	}
	*f = Filter(v)
	return nil
}

func (f Filter) MarshalYAML() (any, error) {
	for name, v := range filterNames {
		if v == gfx.TextureFilter(f) {
			return name, nil
		}
	}
	return nil, fmt.Errorf("unknown texture filter %d", f)
}

// TextureOptions returns the sampling options for textured scenes.
func (r RendererConfig) TextureOptions() gfx.TextureOptions {
	return gfx.TextureOptions{
		MinFilter: gfx.TextureFilter(r.MinFilter),
		MagFilter: gfx.TextureFilter(r.MagFilter),
	}
}

// Default returns the settings of the stock example program.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1600,
			Height: 1200,
			Title:  "GL Examples",
			VSync:  true,
		},
		Camera: CameraConfig{
			FOVDegrees: 90,
			Near:       0.1,
			Far:        500,
			MoveSpeed:  0.05,
			LookSpeed:  0.1,
		},
		Renderer: RendererConfig{
			ClearColor: [4]float32{15.0 / 255.0, 25.0 / 255.0, 40.0 / 255.0, 1.0},
			DepthTest:  true,
			MinFilter:  Filter(gfx.FilterNearest),
			MagFilter:  Filter(gfx.FilterNearest),
			Light:      [3]float32{-0.3, -1.0, -0.5},
		},
		Scenes: []SceneConfig{
			{
				Key:            "1",
				Name:           "simple scene",
				Kind:           SceneSimple,
				VertexShader:   "simple_vert.glsl",
				FragmentShader: "simple_frag.glsl",
			},
			{
				Key:            "2",
				Name:           "textured model scene",
				Kind:           SceneModel,
				Mesh:           "assets/cube.obj",
				Texture:        "assets/checker.png",
				VertexShader:   "model_vert.glsl",
				FragmentShader: "model_frag.glsl",
				Position:       [3]float32{0, 0, -3},
				Scale:          1,
			},
		},
	}
}

// Load reads a YAML file over the defaults. Lists such as scenes replace the
// default list when present.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v must be within (0, 180)", c.Camera.FOVDegrees))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera planes near=%v far=%v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far))
	}

	keys := make(map[string]bool)
	for i, s := range c.Scenes {
		if s.Key == "" {
			errs = append(errs, fmt.Errorf("scene %d has no key", i))
		} else if keys[s.Key] {
			errs = append(errs, fmt.Errorf("scene key %q used twice", s.Key))
		}
		keys[s.Key] = true

		switch s.Kind {
		case SceneSimple:
		case SceneModel:
			if s.Mesh == "" {
				errs = append(errs, fmt.Errorf("model scene %q has no mesh", s.Key))
			}
		default:
			errs = append(errs, fmt.Errorf("scene %q has unknown kind %q", s.Key, s.Kind))
		}
		if s.VertexShader == "" || s.FragmentShader == "" {
			errs = append(errs, fmt.Errorf("scene %q needs both shaders", s.Key))
		}
	}
	return errors.Join(errs...)
}

// Scene returns the scene selected by key.
func (c Config) Scene(key string) (SceneConfig, bool) {
	key = strings.TrimSpace(key)
	for _, s := range c.Scenes {
		if s.Key == key {
			return s, true
		}
	}
	return SceneConfig{}, false
}
