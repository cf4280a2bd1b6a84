package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/layoutcheck/internal/domain"
	"github.com/abdidvp/layoutcheck/internal/domain/checks"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
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

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	nodeStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	linkStyle     = lipgloss.NewStyle().Foreground(faint).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport renders one validation report as a styled TUI string.
func RenderReport(rep *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("layoutcheck")
	subtitle := dimStyle.Render(rep.Layout)
	status := passStyle.Bold(true).Render("PASS")
	if rep.HasErrors() {
		status = failStyle.Bold(true).Render("FAIL")
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + status))
	b.WriteString("\n\n")

	// ── Issues ──
	issues := sortByLevel(rep.Issues)
	if len(issues) > 0 {
		b.WriteString("  ")
		b.WriteString(titleStyle.Render("Issues"))
		b.WriteString("  ")
		b.WriteString(renderCounts(rep))
		b.WriteString("\n\n")

		for _, issue := range issues {
			renderIssue(&b, rep, issue)
		}
	} else {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
	}

	// ── Metrics ──
	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n")
	metrics := fmt.Sprintf("%d ms  ·  %s image memory", rep.Metrics.ElapsedMs, formatBytes(rep.Metrics.ImageMemoryBytes))
	if rep.Cached {
		metrics += "  ·  cached"
	}
	b.WriteString("  " + dimStyle.Render(metrics) + "\n")
	if rep.Metrics.ErrorMessage != "" {
		b.WriteString("  " + failStyle.Render(rep.Metrics.ErrorMessage) + "\n")
	}

	return b.String()
}

// RenderSummary renders a one-line-per-layout overview of several reports.
func RenderSummary(reports []*domain.Report) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Summary") + "\n")
	b.WriteString("  " + separatorLine + "\n")

	failed := 0
	for _, rep := range reports {
		icon := passStyle.Render("●")
		if rep.HasErrors() {
			icon = failStyle.Render("●")
			failed++
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", icon, padRight(shortenPath(rep.Layout), 40), renderCounts(rep))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf("%d layouts, %d failing", len(reports), failed)))
	return b.String()
}

func renderCounts(rep *domain.Report) string {
	var parts []string
	if n := rep.Count(domain.LevelError); n > 0 {
		parts = append(parts, errorTagStyle.Render(fmt.Sprintf("%d errors", n)))
	}
	if n := rep.Count(domain.LevelWarning); n > 0 {
		parts = append(parts, warnTagStyle.Render(fmt.Sprintf("%d warnings", n)))
	}
	if n := rep.Count(domain.LevelInfo) + rep.Count(domain.LevelVerbose); n > 0 {
		parts = append(parts, infoTagStyle.Render(fmt.Sprintf("%d info", n)))
	}
	if len(parts) == 0 {
		return passStyle.Render("clean")
	}
	return strings.Join(parts, "  ")
}

func renderIssue(b *strings.Builder, rep *domain.Report, issue domain.Issue) {
	tag := levelTag(issue.Level)
	check := checks.Title(issue.CheckID)
	if issue.Category == domain.CategoryInternalError {
		check = "internal error · " + check
	}

	node := ""
	if issue.NodeID != nil {
		node = fmt.Sprintf("#%d", *issue.NodeID)
		if n, ok := rep.Node(*issue.NodeID); ok {
			node = fmt.Sprintf("%s %s", nodeLabel(n), node)
		}
	}

	fmt.Fprintf(b, "    %s %s  %s\n", tag, titleStyle.Render(check), nodeStyle.Render(node))
	fmt.Fprintf(b, "          %s\n", dimStyle.Render(issue.Message))
	if issue.HelpURL != "" {
		fmt.Fprintf(b, "          %s\n", linkStyle.Render(issue.HelpURL))
	}
}

func nodeLabel(n domain.NodeSummary) string {
	name := n.ClassName
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if n.ResourceName != "" {
		name += "/" + n.ResourceName
	}
	return name
}

func levelTag(l domain.Level) string {
	switch l {
	case domain.LevelError:
		return errorTagStyle.Render("error")
	case domain.LevelWarning:
		return warnTagStyle.Render("warn ")
	case domain.LevelInfo:
		return infoTagStyle.Render("info ")
	default:
		return infoTagStyle.Render("verb ")
	}
}

// sortByLevel orders issues most severe first, keeping emission order
// within a level.
func sortByLevel(issues []domain.Issue) []domain.Issue {
	order := map[domain.Level]int{
		domain.LevelError:   0,
		domain.LevelWarning: 1,
		domain.LevelInfo:    2,
		domain.LevelVerbose: 3,
	}
	out := append([]domain.Issue(nil), issues...)
	sort.SliceStable(out, func(i, j int) bool {
		return order[out[i].Level] < order[out[j].Level]
	})
	return out
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	prev := make(map[string]int)
	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		ts := e.Timestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}

		errStyle := passStyle
		if e.Errors > 0 {
			errStyle = failStyle
		}
		line := fmt.Sprintf("  %s  %s  %s  %s  %s",
			dimStyle.Render(ts),
			faintStyle.Render(hash),
			padRight(shortenPath(e.Layout), 32),
			errStyle.Render(fmt.Sprintf("%d errors", e.Errors)),
			dimStyle.Render(fmt.Sprintf("%d warnings", e.Warnings)),
		)

		if last, ok := prev[e.Layout]; ok {
			diff := e.Errors - last
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}
		prev[e.Layout] = e.Errors

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
