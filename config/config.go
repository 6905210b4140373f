// Package config loads the YAML configuration a client process uses
// to reach an agent and set up its session.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/velopayments/vcblockchain/suite"
)

// Config is the complete client configuration.
type Config struct {
	Agent   AgentConfig   `yaml:"agent"`
	Session SessionConfig `yaml:"session"`
	Logging LoggingConfig `yaml:"logging"`
}

// AgentConfig describes how to reach the remote agent.
type AgentConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	DialTimeout    time.Duration `yaml:"dial_timeout"`
	AddressFamily  string        `yaml:"address_family"` // "ip4" or "ip6"
}

// SessionConfig controls the handshake and crypto suite selection.
type SessionConfig struct {
	SuiteID         uint32        `yaml:"suite_id"`
	ProtocolVersion uint32        `yaml:"protocol_version"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	OutputFile string `yaml:"output_file"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Agent.Port == 0 {
		c.Agent.Port = 4931
	}
	if c.Agent.DialTimeout == 0 {
		c.Agent.DialTimeout = 10 * time.Second
	}
	if c.Agent.AddressFamily == "" {
		c.Agent.AddressFamily = "ip4"
	}
	if c.Session.SuiteID == 0 {
		c.Session.SuiteID = uint32(suite.Suite1)
	}
	if c.Session.ProtocolVersion == 0 {
		c.Session.ProtocolVersion = 0x00000001
	}
	if c.Session.HandshakeTimeout == 0 {
		c.Session.HandshakeTimeout = 30 * time.Second
	}
	if c.Session.RequestTimeout == 0 {
		c.Session.RequestTimeout = 30 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Agent.Host == "" {
		return fmt.Errorf("agent host is required")
	}
	if c.Agent.Port < 1 || c.Agent.Port > 65535 {
		return fmt.Errorf("invalid agent port: %d", c.Agent.Port)
	}
	if c.Agent.AddressFamily != "ip4" && c.Agent.AddressFamily != "ip6" {
		return fmt.Errorf("invalid address family: %q", c.Agent.AddressFamily)
	}
	if _, err := suite.Lookup(suite.ID(c.Session.SuiteID)); err != nil {
		return fmt.Errorf("invalid suite id: %w", err)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	return nil
}
