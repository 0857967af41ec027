// Package config loads the static rig description: output universes, the
// channels patched into them, and runtime settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Universe describes one output destination.
type Universe struct {
	Name     string `yaml:"name"`
	Protocol string `yaml:"protocol"` // sacn | artnet | spi | screen | sim
	Address  string `yaml:"address"`  // UDP host[:port] or spidev path; empty = sACN multicast
	Universe uint16 `yaml:"universe"` // wire universe number for sacn/artnet
	Channels int    `yaml:"channels"`
}

// Channel describes one patched output: a 3-byte window into a universe.
type Channel struct {
	Universe string    `yaml:"universe"` // universe name, resolved at wiring
	Channel  int       `yaml:"channel"`  // byte offset into the universe buffer
	Type     string    `yaml:"type"`     // hsv | rgb
	Hue      string    `yaml:"hue"`      // color specification string
	Effect   string    `yaml:"effect,omitempty"`
	Level    []float64 `yaml:"level,omitempty,flow"` // effect params: [base, amplitude]
}

type Config struct {
	FPS         int    `yaml:"fps"`
	LogLevel    string `yaml:"log_level"`
	ControlAddr string `yaml:"control_addr"` // websocket control listener; empty disables
	SourceName  string `yaml:"source_name"`  // sACN source name
	Priority    uint8  `yaml:"priority"`     // sACN priority

	Universes []Universe `yaml:"universes"`
	Channels  []Channel  `yaml:"channels"`
}

// Load reads and decodes a config file, filling defaults for omitted runtime
// settings. Structural validation happens at wiring time.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	c.fillDefaults()
	return &c, nil
}

func (c *Config) fillDefaults() {
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.SourceName == "" {
		c.SourceName = "glimmer"
	}
	if c.Priority == 0 {
		c.Priority = 100
	}
	for i := range c.Universes {
		if c.Universes[i].Protocol == "" {
			c.Universes[i].Protocol = "sacn"
		}
	}
}
