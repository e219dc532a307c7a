// Package config loads tasknote settings from JSONC files, the environment
// and command-line overrides.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// DirEnv overrides the storage directory from the environment.
const DirEnv = "TASKNOTE_DIR"

// DefaultDirectory is used when no config source sets one.
const DefaultDirectory = "~/Documents/TaskNote"

// Error variables for config loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDirectoryEmpty     = errors.New("directory cannot be empty")
)

// Source names reported for the storage directory.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceFile    = "config"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Directory string `json:"directory"`
	Editor    string `json:"editor,omitempty"`
	LogFile   string `json:"log_file,omitempty"`

	// Resolved values (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	DirectoryAbs string `json:"-"` // Absolute storage directory
	LogFileAbs   string `json:"-"` // Absolute log file path, empty if logging is off

	// Sources tracks where values came from (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded and who set the directory.
type Sources struct {
	Global    string // Path to global config if loaded, empty otherwise
	File      string // Path to explicit config if loaded, empty otherwise
	Directory string // One of the Source* constants
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Directory: DefaultDirectory,
		Sources:   Sources{Directory: SourceDefault},
	}
}

// GlobalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/tasknote/config.json if set, otherwise
// ~/.config/tasknote/config.json. Returns empty string if home directory
// cannot be determined.
func GlobalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "tasknote", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "tasknote", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride   string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath        string            // -c/--config flag value
	DirectoryOverride string            // --dir flag value; empty means no override
	Env               map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config
// 3. Explicit config file via ConfigPath (if non-empty)
// 4. $TASKNOTE_DIR
// 5. CLI overrides.
//
// Paths in the returned Config are resolved to absolute paths, with a
// leading ~/ expanded from $HOME.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalPath := GlobalPath(input.Env)
	if globalPath != "" {
		globalCfg, loaded, err := loadFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = merge(cfg, globalCfg, SourceGlobal)
		}
	}

	if input.ConfigPath != "" {
		path := input.ConfigPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		_, statErr := os.Stat(path)
		if statErr != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, input.ConfigPath)
		}

		fileCfg, _, err := loadFile(path, true)
		if err != nil {
			return Config{}, err
		}

		cfg.Sources.File = path
		cfg = merge(cfg, fileCfg, SourceFile)
	}

	if dir := input.Env[DirEnv]; dir != "" {
		cfg.Directory = dir
		cfg.Sources.Directory = SourceEnv
	}

	if input.DirectoryOverride != "" {
		cfg.Directory = input.DirectoryOverride
		cfg.Sources.Directory = SourceFlag
	}

	if strings.TrimSpace(cfg.Directory) == "" {
		return Config{}, ErrDirectoryEmpty
	}

	cfg.EffectiveCwd = workDir
	cfg.DirectoryAbs = resolvePath(workDir, input.Env["HOME"], cfg.Directory)

	if cfg.LogFile != "" {
		cfg.LogFileAbs = resolvePath(workDir, input.Env["HOME"], cfg.LogFile)
	}

	return cfg, nil
}

// ResolvePath resolves p the way Load resolves the directory setting.
func ResolvePath(workDir string, env map[string]string, p string) string {
	return resolvePath(workDir, env["HOME"], p)
}

func resolvePath(workDir, home, p string) string {
	if home != "" {
		if p == "~" {
			return home
		}

		if rest, ok := strings.CutPrefix(p, "~/"); ok {
			return filepath.Join(home, rest)
		}
	}

	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}

	return filepath.Join(workDir, p)
}

// loadFile loads a config file. If mustExist is false, a missing file
// returns a zero config and loaded=false.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	cfg, explicitEmpty, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	if explicitEmpty {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrDirectoryEmpty)
	}

	return cfg, true, nil
}

// parse decodes JSONC and reports whether "directory" was explicitly set
// to an empty string.
func parse(data []byte) (Config, bool, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, false, fmt.Errorf("invalid JSON: %w", err)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := false

	if val, exists := raw["directory"]; exists {
		if str, ok := val.(string); ok && strings.TrimSpace(str) == "" {
			explicitEmpty = true
		}
	}

	return cfg, explicitEmpty, nil
}

func merge(base, overlay Config, source string) Config {
	if overlay.Directory != "" {
		base.Directory = overlay.Directory
		base.Sources.Directory = source
	}

	if overlay.Editor != "" {
		base.Editor = overlay.Editor
	}

	if overlay.LogFile != "" {
		base.LogFile = overlay.LogFile
	}

	return base
}

// Save writes the serialized fields of cfg into the config file at path,
// creating it (and its directory) if needed. Comments and unrelated keys in
// an existing file are preserved. Empty optional fields are left as they are.
func Save(path string, cfg Config) error {
	if strings.TrimSpace(cfg.Directory) == "" {
		return ErrDirectoryEmpty
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		data = []byte("{}")
	}

	doc, err := hujson.Parse(data)
	if err != nil {
		return fmt.Errorf("%w %s: invalid JSONC: %w", ErrConfigInvalid, path, err)
	}

	fields := []struct {
		key   string
		value string
	}{
		{"directory", cfg.Directory},
		{"editor", cfg.Editor},
		{"log_file", cfg.LogFile},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}

		err = setField(&doc, f.key, f.value)
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
		}
	}

	doc.Format()

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	err = atomic.WriteFile(path, bytes.NewReader(doc.Pack()))
	if err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}

	return nil
}

func setField(doc *hujson.Value, key, value string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}

	patch := fmt.Sprintf(`[{"op":"add","path":"/%s","value":%s}]`, key, encoded)

	return doc.Patch([]byte(patch))
}
