package validation

import (
	"fmt"

	"github.com/ncprotocol/ncp/internal/domain"
)

// collector accumulates findings for a single Validate call.
type collector struct {
	blocking        []domain.Finding
	warnings        []domain.Finding
	recommendations []domain.Finding
}

func newCollector() *collector {
	return &collector{
		blocking:        []domain.Finding{},
		warnings:        []domain.Finding{},
		recommendations: []domain.Finding{},
	}
}

// add routes a finding into the list for its severity.
func (c *collector) add(code string, sev domain.Severity, path, format string, args ...any) {
	f := domain.Finding{
		Code:     code,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
	}
	switch sev {
	case domain.SeverityBlocking:
		c.blocking = append(c.blocking, f)
	case domain.SeverityWarning:
		c.warnings = append(c.warnings, f)
	default:
		c.recommendations = append(c.recommendations, f)
	}
}

func (c *collector) blockingf(code, path, format string, args ...any) {
	c.add(code, domain.SeverityBlocking, path, format, args...)
}

func (c *collector) warnf(code, path, format string, args ...any) {
	c.add(code, domain.SeverityWarning, path, format, args...)
}

func (c *collector) recommendf(code, path, format string, args ...any) {
	c.add(code, domain.SeverityRecommendation, path, format, args...)
}

func fieldPath(parent, key string) string {
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
