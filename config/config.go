// The config package holds the settings of the demo program, read from an optional yaml file
// on top of the defaults (which are the values used by the lighting tutorial sections)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bloeys/learngl/camera"
	"github.com/bloeys/learngl/logging"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFilename = "learngl.yaml"

type Window struct {
	Title  string `yaml:"title"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

type Camera struct {
	Pos   [3]float32 `yaml:"pos"`
	Fov   float32    `yaml:"fov"`
	Yaw   float32    `yaml:"yaw"`
	Pitch float32    `yaml:"pitch"`

	// MoveSpeed is in units per second
	MoveSpeed float32 `yaml:"move_speed"`
	// MouseSensitivity is degrees per pixel of mouse motion
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	// ZoomStep is degrees of fov per wheel notch
	ZoomStep float32 `yaml:"zoom_step"`
}

type Paths struct {
	ShaderDir       string `yaml:"shader_dir"`
	DiffuseTexture  string `yaml:"diffuse_texture"`
	SpecularTexture string `yaml:"specular_texture"`
	// Model is optional. When set it is drawn instead of the built in cube
	Model string `yaml:"model"`
}

type Config struct {
	Window Window `yaml:"window"`
	Camera Camera `yaml:"camera"`
	Paths  Paths  `yaml:"paths"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "Lighting",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Camera: Camera{
			Pos:              [3]float32{0, 1, 3},
			Fov:              60,
			Yaw:              -90,
			Pitch:            -10,
			MoveSpeed:        5,
			MouseSensitivity: 0.2,
			ZoomStep:         2,
		},
		Paths: Paths{
			ShaderDir:       "./res/shaders",
			DiffuseTexture:  "./res/textures/container2.png",
			SpecularTexture: "./res/textures/container2_specular.png",
		},
	}
}

// Load reads the yaml file at path over the defaults, so the file only needs the fields it changes.
// A missing file is not an error and returns the defaults
func Load(path string) (Config, error) {

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {

		if errors.Is(err, fs.ErrNotExist) {
			logging.InfoLog.Printf("No config file at '%s', using defaults\n", path)
			return cfg, nil
		}

		return Config{}, fmt.Errorf("failed to read config '%s'. Err: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config '%s'. Err: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config '%s'. Err: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {

	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}

	if c.Camera.Fov < camera.MinFov || c.Camera.Fov > camera.MaxFov {
		errs = append(errs, fmt.Errorf("camera fov must be in [%v, %v], got %v", camera.MinFov, camera.MaxFov, c.Camera.Fov))
	}

	if c.Camera.Pitch < camera.MinPitch || c.Camera.Pitch > camera.MaxPitch {
		errs = append(errs, fmt.Errorf("camera pitch must be in [%v, %v], got %v", camera.MinPitch, camera.MaxPitch, c.Camera.Pitch))
	}

	if c.Camera.MoveSpeed < 0 || c.Camera.MouseSensitivity < 0 || c.Camera.ZoomStep < 0 {
		errs = append(errs, errors.New("camera speeds can't be negative"))
	}

	if c.Paths.ShaderDir == "" {
		errs = append(errs, errors.New("shader_dir can't be empty"))
	}

	return errors.Join(errs...)
}
