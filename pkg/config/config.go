package config

import (
	"path/filepath"

	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/gather"
	"github.com/arthur-debert/resgather/pkg/output"
	"github.com/arthur-debert/resgather/pkg/patterns"
	"github.com/arthur-debert/resgather/pkg/types"
	"github.com/arthur-debert/resgather/pkg/walker"
	"github.com/pelletier/go-toml/v2"
)

// Config is the effective resgather configuration
type Config struct {
	AppIcon                 string   `koanf:"app_icon" toml:"app_icon"`
	AppThinning             bool     `koanf:"app_thinning" toml:"app_thinning"`
	IgnoreDirs              string   `koanf:"ignore_dirs" toml:"ignore_dirs"`
	IgnoreFiles             string   `koanf:"ignore_files" toml:"ignore_files"`
	FanOut                  int      `koanf:"fan_out" toml:"fan_out"`
	ReclassifyMarkupScripts bool     `koanf:"reclassify_markup_scripts" toml:"reclassify_markup_scripts"`
	Output                  Output   `koanf:"output" toml:"output"`
	Sources                 []Source `koanf:"sources" toml:"sources,omitempty"`

	// Dir anchors relative source paths. The loader sets it to the
	// directory of the last configuration file it read.
	Dir string `koanf:"-" toml:"-"`
}

// Output configures result rendering
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// Source is one [[sources]] entry of the overlay pipeline
type Source struct {
	Path   string `koanf:"path" toml:"path"`
	Dest   string `koanf:"dest" toml:"dest,omitempty"`
	Ignore string `koanf:"ignore" toml:"ignore,omitempty"`
	Prefix string `koanf:"prefix" toml:"prefix,omitempty"`
}

// Default returns the configuration described by the embedded defaults
func Default() *Config {
	return &Config{
		AppIcon:                 patterns.DefaultAppIcon,
		IgnoreDirs:              patterns.DefaultIgnoreDirs,
		IgnoreFiles:             patterns.DefaultIgnoreFiles,
		ReclassifyMarkupScripts: true,
		Output:                  Output{Format: output.FormatText},
	}
}

// Validate checks values that would otherwise fail later, mid-walk
func (c *Config) Validate() error {
	if c.AppIcon == "" {
		return invalid("app_icon must not be empty", "app_icon")
	}
	if _, err := patterns.Compile(c.IgnoreDirs); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid ignore_dirs pattern").
			WithDetail("key", "ignore_dirs")
	}
	if _, err := patterns.Compile(c.IgnoreFiles); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid ignore_files pattern").
			WithDetail("key", "ignore_files")
	}
	if !output.ValidFormat(c.Output.Format) {
		return errors.Newf(errors.ErrConfigValid, "unknown output format %q", c.Output.Format).
			WithDetail("key", "output.format").
			WithDetail("valid", output.Formats)
	}
	for i, src := range c.Sources {
		if src.Path == "" {
			return errors.Newf(errors.ErrConfigValid, "sources[%d] has no path", i).
				WithDetail("key", "sources")
		}
		if _, err := patterns.Compile(src.Ignore); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid ignore pattern in sources[%d]", i).
				WithDetail("key", "sources")
		}
	}
	return nil
}

func invalid(msg, key string) error {
	return errors.New(errors.ErrConfigValid, msg).WithDetail("key", key)
}

// WalkerOptions compiles the configuration into walker options over fsys.
// A nil fsys uses the OS filesystem.
func (c *Config) WalkerOptions(fsys types.FS) (walker.Options, error) {
	ignoreDirs, err := patterns.Compile(c.IgnoreDirs)
	if err != nil {
		return walker.Options{}, errors.Wrap(err, errors.ErrConfigValid, "invalid ignore_dirs pattern")
	}
	ignoreFiles, err := patterns.Compile(c.IgnoreFiles)
	if err != nil {
		return walker.Options{}, errors.Wrap(err, errors.ErrConfigValid, "invalid ignore_files pattern")
	}

	return walker.Options{
		AppIcon:     c.AppIcon,
		AppThinning: c.AppThinning,
		IgnoreDirs:  ignoreDirs,
		IgnoreFiles: ignoreFiles,
		FanOut:      c.FanOut,
		FS:          fsys,
	}, nil
}

// GatherSources resolves [[sources]] against Dir and compiles their
// ignore patterns
func (c *Config) GatherSources() ([]gather.Source, error) {
	sources := make([]gather.Source, 0, len(c.Sources))
	for i, src := range c.Sources {
		ignore, err := patterns.Compile(src.Ignore)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid ignore pattern in sources[%d]", i)
		}
		sources = append(sources, gather.Source{
			Path:   c.resolve(src.Path),
			Dest:   c.resolve(src.Dest),
			Ignore: ignore,
			Prefix: src.Prefix,
		})
	}
	return sources, nil
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// TOML renders the configuration as a TOML document
func (c *Config) TOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return data, nil
}
