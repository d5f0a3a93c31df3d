package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	sharedcfg "github.com/leapstack-labs/unitremix/internal/config"
	"github.com/leapstack-labs/unitremix/internal/units"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
// This key is shared with root.go via both using the same type.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// envPrefix prefixes every environment variable read by the loader.
const envPrefix = "UNITREMIX_"

// flagKeys maps scalar flag names to config keys. Flags missing here are
// either command options outside configuration or the repeatable flags
// applied by applyArrayFlags.
var flagKeys = map[string]string{
	"nuts":              "nuts",
	"gadm":              "gadm",
	"output":            "output",
	"layer":             "layer",
	"driver":            "driver",
	"reject-collisions": "reject_layer_collisions",
	"log-level":         "log_level",
	"log-format":        "log_format",
	"format":            "format",
	"verbose":           "verbose",
}

// pathFlags are resolved against the working directory when passed as
// flags, and against the project root otherwise.
var pathFlags = []string{"nuts", "gadm", "output"}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
)

// inferProjectRoot determines the project root.
// Priority:
//  1. Directory of an explicit --config file
//  2. Search upward from CWD for unitremix.yaml
//  3. Current working directory
func inferProjectRoot(cfgFile string) string {
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
		return filepath.Dir(cfgFile)
	}

	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root := sharedcfg.FindProjectRoot(cwd, maxUpwardSearchLevels); root != "" {
		return root
	}
	return cwd
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")
	configFileUsed = ""

	projectRoot := inferProjectRoot(cfgFile)

	// Paths given as flags are relative to CWD, not to the project root.
	flagPaths := make(map[string]string)
	if flags != nil {
		for _, name := range pathFlags {
			f := flags.Lookup(name)
			if f == nil || !f.Changed || f.Value.String() == "" {
				continue
			}
			if abs, err := filepath.Abs(f.Value.String()); err == nil {
				flagPaths[name] = abs
			}
		}
	}

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"nuts":                    DefaultNUTSPath,
		"gadm":                    DefaultGADMPath,
		"layer":                   DefaultLayer,
		"driver":                  string(DefaultDriver),
		"reject_layer_collisions": false,
		"log_level":               DefaultLogLevel,
		"log_format":              DefaultLogFormat,
		"format":                  DefaultFormat,
		"verbose":                 false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		}
		configFileUsed = cfgFile
	} else {
		configFileUsed = sharedcfg.FindConfigFile(projectRoot)
	}
	project := &sharedcfg.ProjectFile{Layers: Layers{}, CountryAliases: map[string]string{}}
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
		var err error
		if project, err = sharedcfg.LoadProjectFile(configFileUsed); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (UNITREMIX_ prefix)
	// Transform: UNITREMIX_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct. Env values arrive as strings, so
	// comma lists and the driver name go through decode hooks.
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	applyArrayFlags(&cfg, flags)

	// 6. Set project root and resolve relative paths
	cfg.ProjectRoot = projectRoot
	cfg.Layers = project.Layers
	cfg.CountryAliases = project.CountryAliases
	cfg.Countries = trimAll(cfg.Countries)

	if cfg.Output == "" {
		cfg.Output = sharedcfg.DefaultOutputPath(cfg.Layer, cfg.Driver)
	}
	for name, target := range map[string]*string{"nuts": &cfg.NUTS, "gadm": &cfg.GADM, "output": &cfg.Output} {
		if abs, ok := flagPaths[name]; ok {
			*target = abs
		} else {
			*target = resolvePathRelativeTo(*target, projectRoot)
		}
	}

	// 7. Apply --assign overrides to the selected layer
	if len(cfg.Assign) > 0 {
		layers := make(Layers, len(cfg.Layers)+1)
		for name, lc := range cfg.Layers {
			layers[name] = lc
		}
		lc := layers[cfg.Layer]
		for _, s := range cfg.Assign {
			a, err := units.ParseAssignment(s)
			if err != nil {
				return nil, err
			}
			lc = lc.With(a.Country, a.Source)
		}
		layers[cfg.Layer] = lc
		cfg.Layers = layers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyArrayFlags copies the repeatable --country and --assign flags. They
// bypass posflag so that values containing commas stay whole.
func applyArrayFlags(cfg *Config, flags *pflag.FlagSet) {
	if flags == nil {
		return
	}
	if f := flags.Lookup("country"); f != nil && f.Changed {
		if v, err := flags.GetStringArray("country"); err == nil {
			cfg.Countries = v
		}
	}
	if f := flags.Lookup("assign"); f != nil && f.Changed {
		if v, err := flags.GetStringArray("assign"); err == nil {
			cfg.Assign = v
		}
	}
}

func trimAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// ConfigKey returns the context key used for storing the loaded config.
func ConfigKey() interface{} {
	return configKey{}
}

// GetConfig retrieves the config from the command context, or nil when
// none was loaded.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return nil
}
