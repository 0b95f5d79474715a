// Package config собирает настройки dotlib из умолчаний, файла dotlib.toml,
// переменных окружения DOTLIB_* и флагов командной строки, в этом порядке
// возрастания приоритета.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"liberty/internal/parser"
)

// FileName is the project file looked up from the working directory upwards.
const FileName = "dotlib.toml"

// EnvPrefix prefixes every environment override, e.g. DOTLIB_MAX_DEPTH.
const EnvPrefix = "DOTLIB"

// Keys shared by the project file, the environment and the flags.
const (
	KeyAllowNoSemi    = "allow_no_semi"
	KeyDebug          = "debug"
	KeyMaxDepth       = "max_depth"
	KeyMaxDiagnostics = "max_diagnostics"
	KeyJobs           = "jobs"
	KeyCache          = "cache"
	KeyFormat         = "format"
	KeyColor          = "color"
)

// Config is the effective configuration of one CLI run.
type Config struct {
	AllowNoSemi    bool
	Debug          bool
	MaxDepth       int
	MaxDiagnostics int
	Jobs           int // 0 — GOMAXPROCS
	Cache          bool
	Format         string // формат diag: pretty, json, short
	Color          string // auto, on, off

	Path string // файл, из которого загружено; пусто, если файла не было
}

// Default returns the built-in settings.
func Default() Config {
	popts := parser.DefaultOptions()
	return Config{
		AllowNoSemi:    popts.AllowNoSemi,
		MaxDepth:       popts.MaxDepth,
		MaxDiagnostics: 100,
		Cache:          true,
		Format:         "pretty",
		Color:          "auto",
	}
}

// ParserOptions converts the configuration into parser options. Reporter
// and Tracer are left for the caller.
func (c Config) ParserOptions() parser.Options {
	opts := parser.DefaultOptions()
	opts.AllowNoSemi = c.AllowNoSemi
	opts.Debug = c.Debug
	if c.MaxDepth > 0 {
		opts.MaxDepth = c.MaxDepth
	}
	return opts
}

// Validate rejects values no command can work with.
func (c Config) Validate() error {
	var errs []error
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", KeyMaxDepth, c.MaxDepth))
	}
	if c.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", KeyMaxDiagnostics, c.MaxDiagnostics))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", KeyJobs, c.Jobs))
	}
	switch c.Format {
	case "pretty", "json", "short":
	default:
		errs = append(errs, fmt.Errorf("unknown %s %q (want pretty, json or short)", KeyFormat, c.Format))
	}
	switch c.Color {
	case "auto", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("unknown %s %q (want auto, on or off)", KeyColor, c.Color))
	}
	return errors.Join(errs...)
}

type fileConfig struct {
	Parser parserTable `toml:"parser"`
	Output outputTable `toml:"output"`
}

type parserTable struct {
	AllowNoSemi *bool `toml:"allow_no_semi"`
	Debug       *bool `toml:"debug"`
	MaxDepth    *int  `toml:"max_depth"`
}

type outputTable struct {
	MaxDiagnostics *int    `toml:"max_diagnostics"`
	Jobs           *int    `toml:"jobs"`
	Cache          *bool   `toml:"cache"`
	Format         *string `toml:"format"`
	Color          *string `toml:"color"`
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path on top of Default. Keys the file sets override the
// defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	fc.apply(&cfg)
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (fc fileConfig) apply(cfg *Config) {
	setIf(&cfg.AllowNoSemi, fc.Parser.AllowNoSemi)
	setIf(&cfg.Debug, fc.Parser.Debug)
	setIf(&cfg.MaxDepth, fc.Parser.MaxDepth)
	setIf(&cfg.MaxDiagnostics, fc.Output.MaxDiagnostics)
	setIf(&cfg.Jobs, fc.Output.Jobs)
	setIf(&cfg.Cache, fc.Output.Cache)
	setIf(&cfg.Format, fc.Output.Format)
	setIf(&cfg.Color, fc.Output.Color)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Layer wires base as viper defaults under the DOTLIB_ environment and the
// given flags. Flag names use dashes (max-depth) and map to the
// underscore keys. Flags that do not exist in flags are skipped.
func Layer(v *viper.Viper, base Config, flags *pflag.FlagSet) error {
	v.SetDefault(KeyAllowNoSemi, base.AllowNoSemi)
	v.SetDefault(KeyDebug, base.Debug)
	v.SetDefault(KeyMaxDepth, base.MaxDepth)
	v.SetDefault(KeyMaxDiagnostics, base.MaxDiagnostics)
	v.SetDefault(KeyJobs, base.Jobs)
	v.SetDefault(KeyCache, base.Cache)
	v.SetDefault(KeyFormat, base.Format)
	v.SetDefault(KeyColor, base.Color)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flags == nil {
		return nil
	}
	for _, key := range []string{KeyAllowNoSemi, KeyDebug, KeyMaxDepth, KeyMaxDiagnostics, KeyJobs, KeyCache, KeyFormat, KeyColor} {
		flag := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// FromViper reads the effective configuration back from v.
func FromViper(v *viper.Viper, path string) (Config, error) {
	cfg := Config{
		AllowNoSemi:    v.GetBool(KeyAllowNoSemi),
		Debug:          v.GetBool(KeyDebug),
		MaxDepth:       v.GetInt(KeyMaxDepth),
		MaxDiagnostics: v.GetInt(KeyMaxDiagnostics),
		Jobs:           v.GetInt(KeyJobs),
		Cache:          v.GetBool(KeyCache),
		Format:         v.GetString(KeyFormat),
		Color:          v.GetString(KeyColor),
		Path:           path,
	}
	return cfg, cfg.Validate()
}

// Resolve builds the effective configuration: explicit is the --config
// value; when empty, FileName is searched from startDir upwards.
func Resolve(v *viper.Viper, explicit, startDir string, flags *pflag.FlagSet) (Config, error) {
	base := Default()
	path := explicit
	if path == "" {
		found, ok, err := Find(startDir)
		if err != nil {
			return Config{}, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		base = loaded
	}
	if err := Layer(v, base, flags); err != nil {
		return Config{}, err
	}
	return FromViper(v, path)
}
