package domain

import "fmt"

// ProjectConfig holds project-level configuration loaded from .ncp.yaml.
type ProjectConfig struct {
	StrictProtocol bool            `yaml:"strict_protocol" json:"strict_protocol,omitempty"`
	OriginCheck    *bool           `yaml:"origin_check"    json:"origin_check,omitempty"`
	RequireOrigin  bool            `yaml:"require_origin"  json:"require_origin,omitempty"`
	Domain         string          `yaml:"domain"          json:"domain,omitempty"`
	MinLevel       ComplianceLevel `yaml:"min_level"       json:"min_level,omitempty"`
	MinScore       int             `yaml:"min_score"       json:"min_score,omitempty"`
	History        *bool           `yaml:"history"         json:"history,omitempty"`
	UserAgent      string          `yaml:"user_agent"      json:"user_agent,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// OriginCheckEnabled reports whether identity.url is compared against the crawled domain.
// Defaults to true when unset.
func (c ProjectConfig) OriginCheckEnabled() bool {
	return c.OriginCheck == nil || *c.OriginCheck
}

// HistoryEnabled reports whether validation runs are recorded. Defaults to true.
func (c ProjectConfig) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.MinLevel != "" && c.MinLevel.Rank() < 0 {
		return fmt.Errorf("unknown min_level %q (valid: NONE, CORE, PLUS, VERIFIED-L1)", c.MinLevel)
	}

	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("min_score = %d (must be between 0 and 100)", c.MinScore)
	}

	if c.RequireOrigin && !c.OriginCheckEnabled() {
		return fmt.Errorf("require_origin needs origin_check enabled")
	}

	return nil
}
