package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ncprotocol/ncp/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	codeStyle          = lipgloss.NewStyle().Foreground(fg)
)

func renderFindingSection(b *strings.Builder, title string, findings []domain.Finding) {
	if len(findings) == 0 {
		return
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s\n",
		sectionHeaderStyle.Render(title),
		dimStyle.Render(fmt.Sprintf("(%d)", len(findings))),
	)

	for _, f := range findings {
		line := fmt.Sprintf("    %s %s", severityTag(f.Severity), codeStyle.Render(f.Code))
		if f.Path != "" {
			line += "  " + pathStyle.Render(f.Path)
		}
		b.WriteString(line + "\n")
		fmt.Fprintf(b, "         %s\n", dimStyle.Render(f.Message))
	}
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityBlocking:
		return errorTagStyle.Render("●")
	case domain.SeverityWarning:
		return warnTagStyle.Render("●")
	default:
		return infoTagStyle.Render("○")
	}
}
