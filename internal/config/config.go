// Package config handles cliffside configuration loading and management.
package config

import (
	"math"
	"time"

	"github.com/phanxgames/cliffside"
	"go.uber.org/zap"
)

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	World   WorldConfig   `yaml:"world"`
	Pools   PoolsConfig   `yaml:"pools"`
	Shadow  ShadowConfig  `yaml:"shadow"`
	Actors  ActorsConfig  `yaml:"actors"`
	Camera  CameraConfig  `yaml:"camera"`
	Assets  AssetsConfig  `yaml:"assets"`
	Session SessionConfig `yaml:"session"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	TPS        int    `yaml:"tps"`
}

// WorldConfig holds world data and rebuild settings.
type WorldConfig struct {
	Path          string  `yaml:"path"`
	TileSize      int     `yaml:"tile_size"`
	CullBuffer    int     `yaml:"cull_buffer"`
	DecorativeCap int     `yaml:"decorative_cap"`
	SwayDegrees   float64 `yaml:"sway_degrees"`
}

// PoolsConfig sizes the sprite pools.
type PoolsConfig struct {
	Ground  int `yaml:"ground"`
	Trunk   int `yaml:"trunk"`
	Foliage int `yaml:"foliage"`
	Actor   int `yaml:"actor"`
}

// ShadowConfig holds self-shadow settings.
type ShadowConfig struct {
	Enabled   bool    `yaml:"enabled"`
	ClockRate float64 `yaml:"clock_rate"`
	Opacity   float64 `yaml:"opacity"`
}

// ActorsConfig holds actor placement settings.
type ActorsConfig struct {
	Count    int     `yaml:"count"`
	Attempts int     `yaml:"attempts"`
	Frames   int     `yaml:"frames"`
	Seed     uint64  `yaml:"seed"`
	Margin   float64 `yaml:"margin"`
}

// CameraConfig holds scrolling settings.
type CameraConfig struct {
	Step     float64       `yaml:"step"`
	Recenter time.Duration `yaml:"recenter"`
}

// AssetsConfig holds atlas image paths.
type AssetsConfig struct {
	Ground string `yaml:"ground"`
	Trees  string `yaml:"trees"`
	Actors string `yaml:"actors"`
}

// SessionConfig holds the session channel settings.
type SessionConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Listen  string `yaml:"listen"`
}

// DebugConfig holds diagnostics settings.
type DebugConfig struct {
	Enabled       bool   `yaml:"enabled"`
	ShowStats     bool   `yaml:"show_stats"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Cliffside",
			Width:  1280,
			Height: 720,
			TPS:    120,
		},
		World: WorldConfig{
			Path:          "assets/world.json",
			TileSize:      cliffside.DefaultTileSize,
			CullBuffer:    cliffside.DefaultCullBuffer,
			DecorativeCap: 500,
			SwayDegrees:   3,
		},
		Pools: PoolsConfig{
			Ground:  5000,
			Trunk:   500,
			Foliage: 500,
			Actor:   500,
		},
		Shadow: ShadowConfig{
			Enabled:   true,
			ClockRate: cliffside.ShadowClockRate,
			Opacity:   0.3,
		},
		Actors: ActorsConfig{
			Count:    500,
			Attempts: 100,
			Frames:   36,
			Seed:     1,
			Margin:   cliffside.ActorCellSize,
		},
		Camera: CameraConfig{
			Step:     cliffside.DefaultCameraStep,
			Recenter: 750 * time.Millisecond,
		},
		Assets: AssetsConfig{
			Ground: "assets/ground.png",
			Trees:  "assets/trees.png",
			Actors: "assets/actors.png",
		},
		Session: SessionConfig{
			Enabled: false,
			URL:     "ws://127.0.0.1:3000/ws",
			Listen:  ":3000",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// WorldOptions converts the config into renderer options.
func (c *Config) WorldOptions(log *zap.Logger) cliffside.Options {
	opts := cliffside.DefaultOptions()
	opts.TileSize = c.World.TileSize
	opts.CullBuffer = c.World.CullBuffer
	opts.ViewW = float64(c.Window.Width)
	opts.ViewH = float64(c.Window.Height)
	opts.Pools = cliffside.PoolCapacities{
		Ground:  c.Pools.Ground,
		Trunk:   c.Pools.Trunk,
		Foliage: c.Pools.Foliage,
		Actor:   c.Pools.Actor,
	}
	opts.DecorativeCap = c.World.DecorativeCap
	opts.ActorMargin = c.Actors.Margin
	opts.SwayAmplitude = c.World.SwayDegrees * math.Pi / 180
	opts.ShadowClockRate = c.Shadow.ClockRate
	opts.ShadowColor.A = c.Shadow.Opacity
	opts.DisableShadows = !c.Shadow.Enabled
	opts.CameraStep = c.Camera.Step
	opts.RecenterDuration = float32(c.Camera.Recenter.Seconds())
	opts.ScreenshotDir = c.Debug.ScreenshotDir
	opts.ShowStats = c.Debug.ShowStats
	opts.Debug = c.Debug.Enabled
	opts.Logger = log
	return opts
}

// ActorConfig converts the actor settings.
func (c *Config) ActorConfig() cliffside.ActorConfig {
	return cliffside.ActorConfig{
		Count:    c.Actors.Count,
		Attempts: c.Actors.Attempts,
		Frames:   c.Actors.Frames,
	}
}

// AtlasPaths converts the asset settings.
func (c *Config) AtlasPaths() cliffside.AtlasPaths {
	return cliffside.AtlasPaths{
		Ground: c.Assets.Ground,
		Trees:  c.Assets.Trees,
		Actors: c.Assets.Actors,
	}
}
