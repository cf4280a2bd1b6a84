package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

const treeMaxDepth = 32

// RenderTree draws the view hierarchy with per-node issue markers. Node ids
// in rep must come from the same hierarchy.
func RenderTree(h *domain.Hierarchy, rep *domain.Report) string {
	root := h.Root()
	if root == nil {
		return "\n  " + dimStyle.Render("Empty hierarchy.") + "\n\n"
	}

	byNode := make(map[int][]domain.Issue)
	if rep != nil {
		for _, issue := range rep.Issues {
			if issue.NodeID != nil {
				byNode[*issue.NodeID] = append(byNode[*issue.NodeID], issue)
			}
		}
	}

	var b strings.Builder
	title := headerStyle.Render("View Hierarchy")
	stats := dimStyle.Render(fmt.Sprintf("%d elements  ·  %d with issues", len(h.Elements), len(byNode)))
	b.WriteString(boxStyle.Render(title + "\n\n" + stats))
	b.WriteString("\n\n")

	renderTreeNode(&b, h, root, "", true, byNode)
	b.WriteString("\n")
	return b.String()
}

func renderTreeNode(b *strings.Builder, h *domain.Hierarchy, e *domain.Element, prefix string, last bool, byNode map[int][]domain.Issue) {
	branch := "├─ "
	next := prefix + "│  "
	if last {
		branch = "└─ "
		next = prefix + "   "
	}
	if e.ParentID < 0 {
		branch, next = "", ""
	}

	label := nodeLabel(domain.NodeSummary{ClassName: e.ClassName, ResourceName: e.ResourceName})
	if label == "" {
		label = "(unnamed)"
	}
	line := faintStyle.Render(prefix+branch) + titleStyle.Render(label) + " " + dimStyle.Render(fmt.Sprintf("#%d", e.ID))
	if text := ownLabel(e); text != "" {
		line += "  " + dimStyle.Render(fmt.Sprintf("%q", text))
	}
	if !e.IsVisible() {
		line += "  " + faintStyle.Render(string(e.Visibility))
	}
	if issues := byNode[e.ID]; len(issues) > 0 {
		line += "  " + issueMarker(issues)
	}
	b.WriteString("  " + line + "\n")

	if e.Depth >= treeMaxDepth {
		if len(e.ChildIDs) > 0 {
			b.WriteString("  " + faintStyle.Render(next+"…") + "\n")
		}
		return
	}
	children := h.Children(e)
	for i, c := range children {
		renderTreeNode(b, h, c, next, i == len(children)-1, byNode)
	}
}

func ownLabel(e *domain.Element) string {
	if e.ContentDescription != "" {
		return e.ContentDescription
	}
	return e.Text
}

func issueMarker(issues []domain.Issue) string {
	var errs, warns, other int
	for _, i := range issues {
		switch i.Level {
		case domain.LevelError:
			errs++
		case domain.LevelWarning:
			warns++
		default:
			other++
		}
	}
	var parts []string
	if errs > 0 {
		parts = append(parts, errorTagStyle.Render(fmt.Sprintf("✗%d", errs)))
	}
	if warns > 0 {
		parts = append(parts, warnTagStyle.Render(fmt.Sprintf("!%d", warns)))
	}
	if other > 0 {
		parts = append(parts, infoTagStyle.Render(fmt.Sprintf("i%d", other)))
	}
	return strings.Join(parts, " ")
}
