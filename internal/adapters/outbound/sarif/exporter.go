package sarif

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

const (
	Version = "2.1.0"
	Schema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
)

type Log struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []Run  `json:"runs"`
}

type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

type Rule struct {
	ID      string  `json:"id"`
	HelpURI string  `json:"helpUri,omitempty"`
	Short   Message `json:"shortDescription"`
}

type Result struct {
	RuleID     string            `json:"ruleId"`
	Message    Message           `json:"message"`
	Level      string            `json:"level"` // error, warning, note
	Locations  []Location        `json:"locations"`
	Properties map[string]string `json:"properties,omitempty"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation  `json:"physicalLocation"`
	LogicalLocations []LogicalLocation `json:"logicalLocations,omitempty"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

// LogicalLocation names the view an issue is attached to.
type LogicalLocation struct {
	Name               string `json:"name"`
	FullyQualifiedName string `json:"fullyQualifiedName,omitempty"`
	Kind               string `json:"kind"`
}

// Build converts reports into a single-run SARIF log. Results keep report
// order then issue order; rules are sorted by id.
func Build(reports []*domain.Report, toolName, toolVersion string) *Log {
	results := make([]Result, 0)
	rules := make(map[string]Rule)

	for _, rep := range reports {
		uri := toURI(rep.Layout)
		if strings.TrimSpace(uri) == "" {
			uri = "UNKNOWN"
		}
		for _, issue := range rep.Issues {
			ruleID := issue.CheckID
			if issue.Category == domain.CategoryInternalError {
				ruleID = "internal_error/" + ruleID
			}
			if _, ok := rules[ruleID]; !ok {
				rules[ruleID] = Rule{ID: ruleID, HelpURI: issue.HelpURL, Short: Message{Text: ruleID}}
			}

			loc := Location{PhysicalLocation: PhysicalLocation{ArtifactLocation: ArtifactLocation{URI: uri}}}
			props := map[string]string{"category": string(issue.Category)}
			if issue.NodeID != nil {
				props["nodeId"] = fmt.Sprintf("%d", *issue.NodeID)
				ll := LogicalLocation{Name: fmt.Sprintf("#%d", *issue.NodeID), Kind: "element"}
				if n, ok := rep.Node(*issue.NodeID); ok {
					ll.FullyQualifiedName = n.ClassName
					if n.ResourceName != "" {
						ll.FullyQualifiedName += "/" + n.ResourceName
					}
				}
				loc.LogicalLocations = []LogicalLocation{ll}
			}

			results = append(results, Result{
				RuleID:     ruleID,
				Level:      levelOf(issue.Level),
				Message:    Message{Text: strings.TrimSpace(issue.Message)},
				Locations:  []Location{loc},
				Properties: props,
			})
		}
	}

	ruleList := make([]Rule, 0, len(rules))
	for _, r := range rules {
		ruleList = append(ruleList, r)
	}
	sort.Slice(ruleList, func(i, j int) bool { return ruleList[i].ID < ruleList[j].ID })

	return &Log{
		Version: Version,
		Schema:  Schema,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    toolName,
						Version: toolVersion,
						Rules:   ruleList,
					},
				},
				Results: results,
			},
		},
	}
}

// Write encodes the SARIF log for reports to w.
func Write(w io.Writer, reports []*domain.Report, toolName, toolVersion string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Build(reports, toolName, toolVersion)); err != nil {
		return fmt.Errorf("marshal sarif: %w", err)
	}
	return nil
}

func levelOf(l domain.Level) string {
	switch l {
	case domain.LevelError:
		return "error"
	case domain.LevelWarning:
		return "warning"
	default:
		return "note"
	}
}

func toURI(p string) string {
	p = strings.TrimSpace(p)
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}
