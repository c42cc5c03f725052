package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete trainer server configuration
type Config struct {
	Server Settings       `hcl:"server,block"`
	Drill  *DrillSettings `hcl:"drill,block"`
}

// Settings contains server-level configuration
type Settings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// DrillSettings tunes the push/fold drill sessions
type DrillSettings struct {
	PresetFile           string `hcl:"preset_file,optional"`
	PayoutPreset         string `hcl:"payout_preset,optional"`
	BlindLevel           string `hcl:"blind_level,optional"`
	AnswerTimeoutSeconds int    `hcl:"answer_timeout_seconds,optional"`
	EquityTrials         int    `hcl:"equity_trials,optional"`
	MaxFieldSize         int    `hcl:"max_field_size,optional"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Drill: &DrillSettings{
			PayoutPreset:         "sng-9max",
			BlindLevel:           "late",
			AnswerTimeoutSeconds: 30,
			EquityTrials:         10000,
			MaxFieldSize:         9,
		},
	}
}

// LoadConfig loads the configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}

	if config.Drill == nil {
		config.Drill = defaults.Drill
	} else {
		if config.Drill.PayoutPreset == "" {
			config.Drill.PayoutPreset = defaults.Drill.PayoutPreset
		}
		if config.Drill.BlindLevel == "" {
			config.Drill.BlindLevel = defaults.Drill.BlindLevel
		}
		if config.Drill.AnswerTimeoutSeconds == 0 {
			config.Drill.AnswerTimeoutSeconds = defaults.Drill.AnswerTimeoutSeconds
		}
		if config.Drill.EquityTrials == 0 {
			config.Drill.EquityTrials = defaults.Drill.EquityTrials
		}
		if config.Drill.MaxFieldSize == 0 {
			config.Drill.MaxFieldSize = defaults.Drill.MaxFieldSize
		}
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Drill == nil {
		return fmt.Errorf("drill settings missing")
	}
	if c.Drill.AnswerTimeoutSeconds < 0 {
		return fmt.Errorf("answer timeout must not be negative")
	}
	if c.Drill.EquityTrials <= 0 {
		return fmt.Errorf("equity trials must be positive")
	}
	if c.Drill.MaxFieldSize < 2 || c.Drill.MaxFieldSize > 12 {
		return fmt.Errorf("max field size must be between 2 and 12")
	}
	return nil
}

// ListenAddress returns the full listen address
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
