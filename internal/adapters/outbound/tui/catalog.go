package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ncprotocol/ncp/internal/domain/validation"
)

// CatalogMarkdown documents finding codes as Markdown, grouped by pillar in
// catalog order.
func CatalogMarkdown(infos []validation.CodeInfo) string {
	var b strings.Builder
	b.WriteString("# Finding codes\n")

	current := ""
	for _, info := range infos {
		if info.Pillar != current {
			current = info.Pillar
			fmt.Fprintf(&b, "\n## %s\n\n", current)
		}
		fmt.Fprintf(&b, "- `%s` **%s**: %s\n", info.Code, info.Severity, info.Summary)
	}
	return b.String()
}

// CodeMarkdown documents a single finding code.
func CodeMarkdown(info validation.CodeInfo) string {
	return fmt.Sprintf("# %s\n\n| severity | pillar |\n|---|---|\n| %s | %s |\n\n%s\n",
		info.Code, info.Severity, info.Pillar, info.Summary)
}

// RenderMarkdown renders Markdown for the terminal. With styled false the
// plain notty style is used.
func RenderMarkdown(md string, width int, styled bool) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if styled {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
