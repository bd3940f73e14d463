// Package config holds the svgflat command's settings, read from TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up in the user config dir.
const FileName = "svgflat.toml"

// Config is the TOML document read by the svgflat command. Numbers that feed
// the decimal engine are kept as strings so no precision is lost.
type Config struct {
	Precision       uint32 `toml:"precision"`
	Epsilon         string `toml:"epsilon"`
	Tolerance       string `toml:"tolerance"`
	OutputPrecision int    `toml:"output_precision"`
	DPI             string `toml:"dpi"`
	FontSize        string `toml:"font_size"`

	// Passed through from the flatten command line; the transform engine
	// does not interpret them.
	ClipSegments bool `toml:"clip_segments"`
	BezierArcs   bool `toml:"bezier_arcs"`

	Workers        int  `toml:"workers"`
	RelativeOutput bool `toml:"relative_output"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Precision:       28,
		Epsilon:         "1e-10",
		Tolerance:       "1e-8",
		OutputPrecision: 3,
		DPI:             "96",
		FontSize:        "16",
	}
}

// Dir returns the svgflat configuration directory, honouring
// XDG_CONFIG_HOME.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "svgflat")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "svgflat")
}

// Load decodes path over Default. A missing file is not an error when
// optional is set.
func Load(path string, optional bool) (Config, error) {
	conf := Default()
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return conf, nil
		}
		return conf, fmt.Errorf("config: read %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return conf, fmt.Errorf("config: %s: unknown keys %v", path, undecoded)
	}
	return conf, conf.Validate()
}

// Validate rejects settings the engine cannot use.
func (c Config) Validate() error {
	var errs []error
	if c.Precision == 0 {
		errs = append(errs, errors.New("precision must be positive"))
	}
	if c.OutputPrecision < 0 {
		errs = append(errs, errors.New("output_precision must not be negative"))
	}
	if c.Workers < 0 {
		errs = append(errs, errors.New("workers must not be negative"))
	}
	for name, v := range map[string]string{
		"epsilon":   c.Epsilon,
		"tolerance": c.Tolerance,
		"dpi":       c.DPI,
		"font_size": c.FontSize,
	} {
		if v == "" {
			errs = append(errs, fmt.Errorf("%s must be set", name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Write encodes the configuration as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
