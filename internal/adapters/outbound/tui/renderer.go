package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ncprotocol/ncp/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	lime    = lipgloss.Color("#A3E635")
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	levelColors = map[domain.ComplianceLevel]lipgloss.Color{
		domain.LevelVerifiedL1: success,
		domain.LevelPlus:       lime,
		domain.LevelCore:       warning,
		domain.LevelNone:       danger,
	}

	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusPass:    success,
		domain.StatusWarning: warning,
		domain.StatusFail:    danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	pathStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a validation report for terminal output.
func RenderReport(report *domain.Report) string {
	var b strings.Builder
	r := report.Result

	// ── Header ──
	title := headerStyle.Render("ncp")
	subtitle := dimStyle.Render("Payload Compliance")
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(levelColor(r.ComplianceLevel)).
		Render(fmt.Sprintf("%d / 100", r.Score))
	levelStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(levelColor(r.ComplianceLevel)).
		Render(string(r.ComplianceLevel))
	statusStyled := lipgloss.NewStyle().
		Foreground(statusColor(r.Status)).
		Render(string(r.Status))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + levelStyled + "\n" + statusStyled))
	b.WriteString("\n\n")

	// ── Provenance ──
	renderField(&b, "target", report.Target)
	if report.PayloadURL != "" && report.PayloadURL != report.Target {
		renderField(&b, "payload", report.PayloadURL)
	}
	if report.CrawledDomain != "" {
		renderField(&b, "domain", report.CrawledDomain)
	}
	if report.CommitHash != "" {
		renderField(&b, "commit", shortHash(report.CommitHash))
	}
	renderField(&b, "protocol", "NCP/"+r.NCPVersion)

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Findings ──
	total := len(r.BlockingErrors) + len(r.Warnings) + len(r.Recommendations)
	if total == 0 {
		b.WriteString("  " + passStyle.Render("No findings.") + "\n\n")
		return b.String()
	}

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Findings"))
	b.WriteString("  ")
	if n := len(r.BlockingErrors); n > 0 {
		b.WriteString(errorTagStyle.Render(plural(n, "blocking", "blocking")))
		b.WriteString("  ")
	}
	if n := len(r.Warnings); n > 0 {
		b.WriteString(warnTagStyle.Render(plural(n, "warning", "warnings")))
		b.WriteString("  ")
	}
	if n := len(r.Recommendations); n > 0 {
		b.WriteString(infoTagStyle.Render(plural(n, "recommendation", "recommendations")))
	}
	b.WriteString("\n")

	renderFindingSection(&b, "Blocking", r.BlockingErrors)
	renderFindingSection(&b, "Warnings", r.Warnings)
	renderFindingSection(&b, "Recommendations", r.Recommendations)

	b.WriteString("\n")
	return b.String()
}

func renderField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", dimStyle.Render(padRight(label, 10)), value)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func levelColor(level domain.ComplianceLevel) lipgloss.Color {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return fg
}

func statusColor(status domain.Status) lipgloss.Color {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return fg
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 100:
		return success
	case score >= 90:
		return lime
	case score >= 80:
		return warning
	default:
		return danger
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats validation history for terminal output.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 64)) + "\n\n")

	for i, e := range entries {
		hash := shortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.Score)).
			Render(fmt.Sprintf("%3d/100", e.Score))
		levelStyled := lipgloss.NewStyle().
			Foreground(levelColor(e.Level)).
			Render(padRight(string(e.Level), 11))

		line := fmt.Sprintf("  %s  %s  %s  %s  %s",
			dimStyle.Render(e.Timestamp.Format("2006-01-02 15:04")),
			faintStyle.Render(hash),
			scoreStyled,
			levelStyled,
			dimStyle.Render(e.Target),
		)

		if prev, ok := previousFor(entries[:i], e.Target); ok {
			diff := e.Score - prev.Score
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// previousFor finds the most recent earlier run for the same target.
func previousFor(earlier []domain.HistoryEntry, target string) (domain.HistoryEntry, bool) {
	for i := len(earlier) - 1; i >= 0; i-- {
		if earlier[i].Target == target {
			return earlier[i], true
		}
	}
	return domain.HistoryEntry{}, false
}
