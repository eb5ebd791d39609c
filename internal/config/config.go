package config

import (
	"fmt"
	"strings"
)

// Config is the top-level YAML structure.
type Config struct {
	Version   string        `yaml:"version"`
	Platform  PlatformConf  `yaml:"platform"`
	Transport TransportConf `yaml:"transport"`
	Engine    EngineConf    `yaml:"engine"`
}

// PlatformConf identifies the emitting deployment. ID seeds identifier
// derivation and must stay stable across restarts.
type PlatformConf struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	App  string `yaml:"app"`
}

// TransportConf configures the two delivery endpoints. Either may be
// omitted, but not both.
type TransportConf struct {
	LRS       LRSConf     `yaml:"lrs"`
	Caliper   CaliperConf `yaml:"caliper"`
	TimeoutMs int         `yaml:"timeout_ms"`
}

// LRSConf is the flat-format (xAPI) store endpoint.
type LRSConf struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// CaliperConf is the structured-format event store endpoint.
type CaliperConf struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// EngineConf holds tunable concurrency settings.
type EngineConf struct {
	Workers       int `yaml:"workers"`
	QueueDepth    int `yaml:"queue_depth"`
	EmitTimeoutMs int `yaml:"emit_timeout_ms"`
}

// Validate checks required fields and reports every problem at once.
func Validate(cfg *Config) error {
	var errs []string
	if cfg.Version == "" {
		errs = append(errs, "version is required")
	}
	if cfg.Platform.ID == "" {
		errs = append(errs, "platform.id is required")
	}
	if cfg.Transport.LRS.URL == "" && cfg.Transport.Caliper.URL == "" {
		errs = append(errs, "at least one of transport.lrs.url or transport.caliper.url is required")
	}
	if cfg.Transport.LRS.URL != "" && cfg.Transport.LRS.Username == "" {
		errs = append(errs, "transport.lrs.username is required when transport.lrs.url is set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
