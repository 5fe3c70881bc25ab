package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"whist/internal/bot"
	"whist/internal/variant"
)

// Format selects the decoder for a config document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type GameConfig struct {
	DefaultVariant   string                   `json:"default_variant" yaml:"default_variant"`
	TicketSecret     string                   `json:"ticket_secret" yaml:"ticket_secret"`
	TicketIssuer     string                   `json:"ticket_issuer" yaml:"ticket_issuer"`
	TicketTTLSeconds int                      `json:"ticket_ttl_seconds" yaml:"ticket_ttl_seconds"`
	BotLevel         bot.Level                `json:"bot_level" yaml:"bot_level"`
	Variants         map[string]variant.House `json:"variants" yaml:"variants"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path. Files
// ending in .yaml or .yml are read as YAML, anything else as JSON.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		c, err := Parse(data, FormatFor(path))
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, nil before a
// successful load.
func GetGameConfig() *GameConfig {
	return cfg
}

// FormatFor picks the format from a file name.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes and validates a config document.
func Parse(data []byte, format Format) (*GameConfig, error) {
	var c GameConfig
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &c)
	case FormatJSON, "":
		err = json.Unmarshal(data, &c)
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects unknown variant tokens and impossible house rules.
func (c *GameConfig) Validate() error {
	if c.DefaultVariant != "" {
		if _, err := variant.Parse(c.DefaultVariant); err != nil {
			return fmt.Errorf("default_variant: %w", err)
		}
	}
	for token, house := range c.Variants {
		if _, err := variant.Parse(token); err != nil {
			return fmt.Errorf("variants: %w", err)
		}
		if err := house.Validate(); err != nil {
			return fmt.Errorf("variants.%s: %w", token, err)
		}
	}
	if c.TicketTTLSeconds < 0 {
		return fmt.Errorf("ticket_ttl_seconds must not be negative")
	}
	if _, err := bot.NewBrain(c.BotLevel, nil); err != nil {
		return fmt.Errorf("bot_level: %w", err)
	}
	return nil
}

// Variant returns the configured default, falling back to Minnesota Whist.
func (c *GameConfig) Variant() variant.ID {
	if c == nil || c.DefaultVariant == "" {
		return variant.MinnesotaWhist
	}
	return variant.ID(c.DefaultVariant)
}

// House returns the house rules configured for id.
func (c *GameConfig) House(id variant.ID) variant.House {
	if c == nil {
		return variant.House{}
	}
	return c.Variants[string(id)]
}

// Options turns the house rules of id into lookup options.
func (c *GameConfig) Options(id variant.ID) []variant.Option {
	return c.House(id).Options()
}

// TicketTTL is the configured ticket lifetime, zero for the default.
func (c *GameConfig) TicketTTL() time.Duration {
	if c == nil {
		return 0
	}
	return time.Duration(c.TicketTTLSeconds) * time.Second
}
