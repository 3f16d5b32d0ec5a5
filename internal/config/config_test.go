package config

import (
	"flag"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/phanxgames/cliffside"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("window = %dx%d, want 1280x720", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.World.TileSize != cliffside.DefaultTileSize || cfg.World.CullBuffer != cliffside.DefaultCullBuffer {
		t.Errorf("world = %+v", cfg.World)
	}
	if cfg.Pools.Ground != 5000 || cfg.Pools.Actor != 500 {
		t.Errorf("pools = %+v", cfg.Pools)
	}
	if !cfg.Shadow.Enabled || cfg.Session.Enabled {
		t.Errorf("shadow enabled %v session enabled %v", cfg.Shadow.Enabled, cfg.Session.Enabled)
	}
	if cfg.Camera.Recenter != 750*time.Millisecond {
		t.Errorf("recenter = %v", cfg.Camera.Recenter)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliffside.yaml")
	data := `
world:
  path: maps/island.json
  decorative_cap: 50
pools:
  ground: 8000
camera:
  recenter: 2s
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.World.Path != "maps/island.json" || cfg.World.DecorativeCap != 50 {
		t.Errorf("world = %+v", cfg.World)
	}
	if cfg.World.TileSize != cliffside.DefaultTileSize {
		t.Errorf("tile size = %d, want default kept", cfg.World.TileSize)
	}
	if cfg.Pools.Ground != 8000 || cfg.Pools.Trunk != 500 {
		t.Errorf("pools = %+v", cfg.Pools)
	}
	if cfg.Camera.Recenter != 2*time.Second {
		t.Errorf("recenter = %v, want 2s", cfg.Camera.Recenter)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file loaded")
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("pools: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("malformed yaml loaded")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Window.Title = "test"
	cfg.Actors.Seed = 99
	cfg.Shadow.Enabled = false

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestWorldOptions(t *testing.T) {
	cfg := Default()
	cfg.Window.Width, cfg.Window.Height = 800, 600
	cfg.World.SwayDegrees = 90
	cfg.Shadow.Opacity = 0.5
	cfg.Camera.Recenter = 1500 * time.Millisecond
	cfg.Debug.Enabled = true

	opts := cfg.WorldOptions(nil)
	if opts.ViewW != 800 || opts.ViewH != 600 {
		t.Errorf("view = %vx%v", opts.ViewW, opts.ViewH)
	}
	if math.Abs(opts.SwayAmplitude-math.Pi/2) > 1e-12 {
		t.Errorf("sway = %v, want pi/2", opts.SwayAmplitude)
	}
	if opts.ShadowColor.A != 0.5 || opts.ShadowColor.B != cliffside.DefaultShadowColor.B {
		t.Errorf("shadow color = %+v", opts.ShadowColor)
	}
	if opts.RecenterDuration != 1.5 {
		t.Errorf("recenter = %v, want 1.5", opts.RecenterDuration)
	}
	if !opts.Debug || opts.Pools.Ground != cfg.Pools.Ground {
		t.Errorf("opts = %+v", opts)
	}

	if a := cfg.ActorConfig(); a.Count != 500 || a.Frames != 36 {
		t.Errorf("actor config = %+v", a)
	}
	if p := cfg.AtlasPaths(); p.Trees != cfg.Assets.Trees {
		t.Errorf("atlas paths = %+v", p)
	}
}

func TestOverridesApply(t *testing.T) {
	o := &Overrides{
		Debug:     true,
		World:     "other.json",
		Width:     1920,
		NoShadows: true,
		Session:   "ws://example.invalid/ws",
		Listen:    ":9000",
	}

	cfg := Default()
	o.apply(cfg)
	if !cfg.Debug.Enabled || !cfg.Debug.ShowStats || cfg.Logging.Level != "debug" {
		t.Errorf("debug flag not applied: %+v %+v", cfg.Debug, cfg.Logging)
	}
	if cfg.World.Path != "other.json" || cfg.Window.Width != 1920 || cfg.Window.Height != 720 {
		t.Errorf("world %q window %dx%d", cfg.World.Path, cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Shadow.Enabled {
		t.Error("no-shadows flag not applied")
	}
	if !cfg.Session.Enabled || cfg.Session.URL != "ws://example.invalid/ws" || cfg.Session.Listen != ":9000" {
		t.Errorf("session = %+v", cfg.Session)
	}
}

func TestBindFlagsPerBinary(t *testing.T) {
	tests := []struct {
		name    string
		bind    func(*flag.FlagSet) *Overrides
		want    []string
		notWant []string
	}{
		{
			name:    "game",
			bind:    BindGameFlags,
			want:    []string{"config", "debug", "world", "width", "height", "no-shadows", "session", "write-config"},
			notWant: []string{"listen"},
		},
		{
			name:    "server",
			bind:    BindServerFlags,
			want:    []string{"config", "debug", "listen"},
			notWant: []string{"world", "width", "height", "no-shadows", "session", "write-config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet(tt.name, flag.ContinueOnError)
			tt.bind(fs)
			for _, name := range tt.want {
				if fs.Lookup(name) == nil {
					t.Errorf("missing flag -%s", name)
				}
			}
			for _, name := range tt.notWant {
				if fs.Lookup(name) != nil {
					t.Errorf("unexpected flag -%s", name)
				}
			}
		})
	}
}

func TestServerFlagsParse(t *testing.T) {
	fs := flag.NewFlagSet("sessiond", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	o := BindServerFlags(fs)
	if err := fs.Parse([]string{"-listen", ":9100", "-debug"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := fs.Parse([]string{"-world", "x.json"}); err == nil {
		t.Error("server accepted -world")
	}

	cfg := Default()
	o.apply(cfg)
	if cfg.Session.Listen != ":9100" || cfg.Logging.Level != "debug" {
		t.Errorf("session %+v logging %+v", cfg.Session, cfg.Logging)
	}
}

func TestLoadOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliffside.yaml")
	if err := os.WriteFile(path, []byte("window:\n  width: 640\nworld:\n  path: file.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(&Overrides{Config: path, World: "flag.json"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 640 {
		t.Errorf("width = %d, want file value 640", cfg.Window.Width)
	}
	if cfg.World.Path != "flag.json" {
		t.Errorf("world = %q, want flag value", cfg.World.Path)
	}

	if _, err := Load(&Overrides{Config: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Error("Load with missing explicit file succeeded")
	}
}

func TestSaveToUserDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir is not under XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Window.Width = 800
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadFile(filepath.Join(ConfigDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Window.Width != 800 {
		t.Errorf("width = %d, want 800", loaded.Window.Width)
	}
}
