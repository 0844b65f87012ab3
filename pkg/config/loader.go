package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/resgather/pkg/errors"
	"github.com/arthur-debert/resgather/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates nesting levels: RESGATHER_OUTPUT__FORMAT sets output.format.
const EnvPrefix = "RESGATHER_"

// ProjectFiles are looked up in the project directory, first match wins
var ProjectFiles = []string{"resgather.toml", ".resgather.toml"}

// LoadOptions select the layers Load reads
type LoadOptions struct {
	// ProjectDir is searched for ProjectFiles. Empty means the working
	// directory.
	ProjectDir string

	// ConfigFile is an explicit file loaded after the project file. It
	// must exist.
	ConfigFile string

	// Overrides are applied last, keyed by dotted path ("output.format")
	Overrides map[string]interface{}
}

// Load builds the effective configuration. Later layers override earlier
// ones: embedded defaults, project file, explicit file, environment,
// overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to resolve project directory").
			WithDetail("path", projectDir)
	}

	// 2. Project file
	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to stat project config").
				WithDetail("path", path)
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", path).Msg("Loaded project config")
		break
	}

	// 3. Explicit file
	if opts.ConfigFile != "" {
		path, err := filepath.Abs(opts.ConfigFile)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to resolve config file").
				WithDetail("path", opts.ConfigFile)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "config file not readable").
				WithDetail("path", path)
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		dir = filepath.Dir(path)
		logger.Debug().Str("path", path).Msg("Loaded explicit config")
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "failed to parse config file").
			WithDetail("path", path)
	}
	return nil
}

// envKey maps RESGATHER_OUTPUT__FORMAT to output.format
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
