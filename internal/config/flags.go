package config

import "flag"

// Overrides holds command-line values that take priority over the config
// file. Zero values leave the file's settings alone.
type Overrides struct {
	Config      string
	Debug       bool
	World       string
	Width       int
	Height      int
	NoShadows   bool
	Session     string
	Listen      string
	WriteConfig string
}

// bindCommon registers the flags every binary shares.
func bindCommon(fs *flag.FlagSet, o *Overrides) {
	fs.StringVar(&o.Config, "config", "", "Path to config file")
	fs.BoolVar(&o.Debug, "debug", false, "Enable debug logging")
}

// BindGameFlags registers the flags of the game binary on fs.
func BindGameFlags(fs *flag.FlagSet) *Overrides {
	o := &Overrides{}
	bindCommon(fs, o)
	fs.StringVar(&o.World, "world", "", "Path to world file")
	fs.IntVar(&o.Width, "width", 0, "Window width")
	fs.IntVar(&o.Height, "height", 0, "Window height")
	fs.BoolVar(&o.NoShadows, "no-shadows", false, "Disable self-shadows")
	fs.StringVar(&o.Session, "session", "", "Session server URL (enables the session client)")
	fs.StringVar(&o.WriteConfig, "write-config", "", "Write the effective config to this path (\"user\" for the config directory) and exit")
	return o
}

// BindServerFlags registers the flags of the session server on fs.
func BindServerFlags(fs *flag.FlagSet) *Overrides {
	o := &Overrides{}
	bindCommon(fs, o)
	fs.StringVar(&o.Listen, "listen", "", "Session server listen address")
	return o
}

// apply writes the overrides into cfg.
func (o *Overrides) apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
		cfg.Debug.Enabled = true
		cfg.Debug.ShowStats = true
	}
	if o.World != "" {
		cfg.World.Path = o.World
	}
	if o.Width > 0 {
		cfg.Window.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Window.Height = o.Height
	}
	if o.NoShadows {
		cfg.Shadow.Enabled = false
	}
	if o.Session != "" {
		cfg.Session.Enabled = true
		cfg.Session.URL = o.Session
	}
	if o.Listen != "" {
		cfg.Session.Listen = o.Listen
	}
}
