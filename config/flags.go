package config

import (
	"flag"
	"io"
	"log/slog"
)

// Flags holds the command-line switches every demo accepts. Set flags
// override the loaded file; unset ones leave it alone.
type Flags struct {
	Path       string
	ContentDir string
	Debug      bool
	Watch      bool
	LogLevel   string

	fs *flag.FlagSet
}

// BindFlags registers the shared demo flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Path, "config", "", "YAML config file; defaults are embedded")
	fs.StringVar(&f.ContentDir, "content", "", "directory searched for textures before the embedded ones")
	fs.BoolVar(&f.Debug, "debug", false, "show the ECS debug UI")
	fs.BoolVar(&f.Watch, "watch", false, "reload -config when it changes")
	fs.StringVar(&f.LogLevel, "log-level", "", "debug, info, warn or error")
	return f
}

func (f *Flags) isSet(name string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// Resolve loads the config file, applies the overrides and builds the
// logger writing to w.
func (f *Flags) Resolve(w io.Writer) (*Config, *slog.Logger, error) {
	cfg, err := Load(f.Path)
	if err != nil {
		return nil, nil, err
	}
	if f.isSet("content") {
		cfg.ContentDir = f.ContentDir
	}
	if f.isSet("debug") {
		cfg.Debug = f.Debug
	}
	if f.isSet("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := NewLogger(w, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
