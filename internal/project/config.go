// Package project drives the compilation of LSC programs: it loads the
// compiler configuration, resolves using statements to source files and
// runs the front end and the C++ backend over each compilation unit.
package project

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"

	"github.com/you-not-fish/lsc/internal/log"
)

// DefaultConfigFile is the configuration file looked up next to the
// sources when no file is given.
const DefaultConfigFile = "lsc.toml"

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Config is the compiler configuration.
type Config struct {
	// SearchPaths are the package directories searched for imported files
	// after the directory of the importing file.
	SearchPaths []string

	// FileExtension is the extension of LSC source files, without the dot.
	FileExtension string

	// NativeExtension is the extension of files imported with
	// using native, without the dot.
	NativeExtension string

	// Runtime loads the built-in declarations of the runtime classes
	// before any source file.
	Runtime bool

	// Prelude lists source files parsed into every unit before its main file.
	Prelude []string `toml:",omitempty"`

	Log LogConfig
}

// LogConfig selects the logger settings.
type LogConfig struct {
	Level  string // debug, info, warn or error
	Format string // text or json
}

// DefaultConfig returns the configuration used when no file is loaded.
func DefaultConfig() Config {
	return Config{
		FileExtension:   "ls",
		NativeExtension: "hpp",
		Runtime:         true,
		Log: LogConfig{
			Level:  log.LevelWarn.String(),
			Format: "text",
		},
	}
}

// LoadConfig decodes the TOML file into cfg. Fields missing from the file
// keep their current values; unknown keys are an error.
func LoadConfig(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.FileExtension == "" {
		return errors.New("FileExtension must not be empty")
	}
	if c.NativeExtension == "" {
		return errors.New("NativeExtension must not be empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// LoggerConfig returns the logger configuration selected by c.
func (c *Config) LoggerConfig() log.Config {
	cfg := log.DefaultConfig()
	if level, err := log.ParseLevel(c.Log.Level); err == nil {
		cfg.Level = level
	}
	if c.Log.Format != "" {
		cfg.Format = c.Log.Format
	}
	return cfg
}

// Dump returns the TOML encoding of c.
func Dump(c *Config) ([]byte, error) {
	return tomlSettings.Marshal(c)
}
