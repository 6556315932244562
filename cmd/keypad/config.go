package main

import (
	"errors"
	"fmt"
	"github.com/callebjorkell/keypad/internal/button"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

const (
	defaultConfigFile     = "keypad.yaml"
	defaultBackend        = backendCdev
	defaultChip           = "gpiochip0"
	defaultDebounceMs     = 350
	defaultPollIntervalMs = 20
	defaultTopic          = "keypad"
	defaultClientID       = "keypad"
	defaultColor          = 0xffffff

	backendCdev   = "gpiocdev"
	backendPeriph = "periph"
	backendRPIO   = "rpio"
	backendSim    = "sim"
)

var defaultColors = map[button.ID]uint32{
	1: 0x00ff00,
	2: 0x0000ff,
	3: 0xffff00,
	4: 0xff0000,
}

type ButtonConfig struct {
	ID    int    `yaml:"id"`
	Pin   int    `yaml:"pin"`
	Name  string `yaml:"name"`
	Color uint32 `yaml:"color"`
}

type Config struct {
	Backend           string         `yaml:"backend"`
	Chip              string         `yaml:"chip"`
	Mode              string         `yaml:"mode"`
	DebounceMs        int            `yaml:"debounceMs"`
	PerButtonDebounce bool           `yaml:"perButtonDebounce"`
	PollIntervalMs    int            `yaml:"pollIntervalMs"`
	Buttons           []ButtonConfig `yaml:"buttons"`
	LCD               bool           `yaml:"lcd"`
	LEDs              bool           `yaml:"leds"`
	MQTT              struct {
		Broker   string `yaml:"broker"`
		Topic    string `yaml:"topic"`
		ClientID string `yaml:"clientId"`
	} `yaml:"mqtt"`
}

func (c Config) Descriptors() []button.Descriptor {
	descs := make([]button.Descriptor, 0, len(c.Buttons))
	for _, b := range c.Buttons {
		descs = append(descs, button.Descriptor{
			ID:   button.ID(b.ID),
			Pin:  uint8(b.Pin),
			Name: b.Name,
		})
	}
	return descs
}

func (c Config) ColorMap() map[button.ID]uint32 {
	colors := make(map[button.ID]uint32)
	for _, b := range c.Buttons {
		colors[button.ID(b.ID)] = b.Color
	}
	return colors
}

func (c Config) ButtonMode() button.Mode {
	// validated by parseConfig
	m, _ := button.ParseMode(c.Mode)
	return m
}

func (c Config) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	switch c.Backend {
	case "":
		c.Backend = defaultBackend
	case backendCdev, backendPeriph, backendRPIO, backendSim:
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Chip == "" {
		c.Chip = defaultChip
	}
	if _, err := button.ParseMode(c.Mode); err != nil {
		return nil, err
	}

	if c.DebounceMs < 0 {
		return nil, fmt.Errorf("debounce must not be negative")
	}
	if c.DebounceMs == 0 {
		c.DebounceMs = defaultDebounceMs
	}
	if c.PollIntervalMs <= 0 {
		c.PollIntervalMs = defaultPollIntervalMs
	}

	if len(c.Buttons) == 0 {
		for _, d := range button.DefaultDescriptors() {
			c.Buttons = append(c.Buttons, ButtonConfig{
				ID:    int(d.ID),
				Pin:   int(d.Pin),
				Name:  d.Name,
				Color: defaultColors[d.ID],
			})
		}
	}
	for i, b := range c.Buttons {
		if b.ID <= 0 {
			return nil, fmt.Errorf("id of button must be positive for entry %d", i)
		}
		if b.Pin < 0 || b.Pin > 31 {
			return nil, fmt.Errorf("pin of button must be between 0 and 31 for entry %d", i)
		}
		if len(b.Name) < 1 {
			c.Buttons[i].Name = fmt.Sprintf("SW%d", b.ID)
		}
		if b.Color == 0 {
			c.Buttons[i].Color = defaultColor
		}
	}
	if _, err := button.NewTable(c.Descriptors()); err != nil {
		return nil, err
	}

	if c.MQTT.Broker != "" {
		if c.MQTT.Topic == "" {
			c.MQTT.Topic = defaultTopic
		}
		if c.MQTT.ClientID == "" {
			c.MQTT.ClientID = defaultClientID
		}
	}

	return c, nil
}

// readConfig falls back to the defaults when the file does not exist.
func readConfig(file string) (*Config, error) {
	content, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		log.Infof("No configuration at %s, using defaults.", file)
		return parseConfig(nil)
	}
	if err != nil {
		return nil, err
	}
	return parseConfig(content)
}
