package xwindow

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"xmono/xcontainer/ringbuffer"
)

var ErrInvalidConfig = errors.New("xwindow: invalid config")

// DefaultCapacity is the initial wedge size when Config.Capacity is unset.
const DefaultCapacity = 64

// Config sizes a Tracker. Window is a span of positions: a sample at pos p is
// kept while p > now-Window. Capacity is only the initial number of wedge
// slots; wedges grow as needed, so it never limits the window.
type Config struct {
	Window   int64 `toml:"window" yaml:"window"`
	Capacity int   `toml:"capacity" yaml:"capacity"`
}

func (c Config) Validate() error {
	if c.Window <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "window %d must be positive", c.Window)
	}
	if c.Capacity < 0 || c.Capacity > ringbuffer.MaxCapacity {
		return errors.Wrapf(ErrInvalidConfig, "capacity %d out of range", c.Capacity)
	}
	return nil
}

// initialCapacity never exceeds Window: a wedge holds at most Window samples.
func (c Config) initialCapacity() int {
	n := c.Capacity
	if n == 0 {
		n = DefaultCapacity
	}
	if int64(n) > c.Window {
		n = int(c.Window)
	}
	return n
}

func LoadTOML(path string) (Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, errors.Wrapf(err, "decode %s", path)
	}
	return c, c.Validate()
}

func LoadYAML(path string) (Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read %s", path)
	}
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, errors.Wrapf(err, "decode %s", path)
	}
	return c, c.Validate()
}

// LoadConfig picks the decoder from the file extension.
func LoadConfig(path string) (Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	}
	return Config{}, errors.Wrapf(ErrInvalidConfig, "unsupported config file %s", path)
}
