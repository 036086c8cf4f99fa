package domain

import "time"

// ProtocolVersion is the NCP revision this checker reports against.
const ProtocolVersion = "1.0"

// Severity classifies a finding.
type Severity string

const (
	SeverityBlocking       Severity = "BLOCKING"
	SeverityWarning        Severity = "WARNING"
	SeverityRecommendation Severity = "RECOMMENDATION"
)

// Status is the overall verdict of a validation run.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusWarning Status = "WARNING"
	StatusFail    Status = "FAIL"
)

// ComplianceLevel is the conformance tier a payload achieves.
type ComplianceLevel string

const (
	LevelNone       ComplianceLevel = "NONE"
	LevelCore       ComplianceLevel = "CORE"
	LevelPlus       ComplianceLevel = "PLUS"
	LevelVerifiedL1 ComplianceLevel = "VERIFIED-L1"
)

// ValidLevels lists compliance levels from lowest to highest.
var ValidLevels = []ComplianceLevel{LevelNone, LevelCore, LevelPlus, LevelVerifiedL1}

// Rank returns the position of l in ValidLevels, or -1 if l is unknown.
func (l ComplianceLevel) Rank() int {
	for i, v := range ValidLevels {
		if v == l {
			return i
		}
	}
	return -1
}

// AtLeast reports whether l is the same tier as other or higher.
func (l ComplianceLevel) AtLeast(other ComplianceLevel) bool {
	return l.Rank() >= other.Rank() && other.Rank() >= 0
}

// Finding is a single validation issue located inside the payload.
type Finding struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Path     string   `json:"path"`
}

// ValidationResult is the fixed-shape report produced by one validation call.
type ValidationResult struct {
	NCPVersion      string          `json:"ncp_version"`
	Status          Status          `json:"status"`
	ComplianceLevel ComplianceLevel `json:"compliance_level"`
	Score           int             `json:"score"`
	BlockingErrors  []Finding       `json:"blocking_errors"`
	Warnings        []Finding       `json:"warnings"`
	Recommendations []Finding       `json:"recommendations"`
}

// HasCode reports whether any finding in the result carries code.
func (r *ValidationResult) HasCode(code string) bool {
	for _, list := range [][]Finding{r.BlockingErrors, r.Warnings, r.Recommendations} {
		for _, f := range list {
			if f.Code == code {
				return true
			}
		}
	}
	return false
}

// Report wraps a ValidationResult with where the payload came from.
type Report struct {
	Target        string            `json:"target"`
	PayloadURL    string            `json:"payload_url,omitempty"`
	CrawledDomain string            `json:"crawled_domain,omitempty"`
	CommitHash    string            `json:"commit_hash,omitempty"`
	CheckedAt     time.Time         `json:"checked_at"`
	Result        *ValidationResult `json:"result"`
}

// BadgeColor maps a compliance level to a shields.io color.
func BadgeColor(level ComplianceLevel) string {
	switch level {
	case LevelVerifiedL1:
		return "brightgreen"
	case LevelPlus:
		return "green"
	case LevelCore:
		return "yellow"
	default:
		return "critical"
	}
}

// HistoryEntry is one recorded validation run.
type HistoryEntry struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Target     string          `json:"target"`
	CommitHash string          `json:"commit_hash,omitempty"`
	Status     Status          `json:"status"`
	Level      ComplianceLevel `json:"compliance_level"`
	Score      int             `json:"score"`
}
