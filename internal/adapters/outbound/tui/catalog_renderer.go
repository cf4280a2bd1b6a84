package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/layoutcheck/internal/domain/checks"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderCatalog lists registered checks grouped by category.
func RenderCatalog(infos []checks.Info) string {
	var b strings.Builder

	b.WriteString(boxStyle.Render(headerStyle.Render("layoutcheck") + "\n" + dimStyle.Render("Available checks")))
	b.WriteString("\n")

	var categories []string
	byCategory := make(map[string][]checks.Info)
	for _, in := range infos {
		cat := string(in.Category)
		if _, ok := byCategory[cat]; !ok {
			categories = append(categories, cat)
		}
		byCategory[cat] = append(byCategory[cat], in)
	}

	for _, cat := range categories {
		items := byCategory[cat]
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n",
			sectionHeaderStyle.Render(cat),
			dimStyle.Render(fmt.Sprintf("(%d)", len(items))),
		)
		for _, in := range items {
			icon := passStyle.Render("●")
			if !in.Latest {
				icon = faintStyle.Render("○")
			}
			fmt.Fprintf(&b, "    %s %s  %s\n", icon, titleStyle.Render(padRight(in.Title, 28)), faintStyle.Render(in.Alias))
			if in.HelpURL != "" {
				fmt.Fprintf(&b, "        %s\n", linkStyle.Render(in.HelpURL))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + hintStyle.Render("Select checks with --checks or policy.checks in .layoutcheck.yaml."))
	b.WriteString("\n")
	return b.String()
}
