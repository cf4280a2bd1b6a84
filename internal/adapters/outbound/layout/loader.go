package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

// Format is the encoding of a layout dump.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var errEmptyLayout = errors.New("layout dump is empty")

// Loader implements domain.LayoutLoader for JSON and YAML layout dumps.
type Loader struct{}

func New() *Loader { return &Loader{} }

// Load reads the dump at path. The format follows the file extension.
func (l *Loader) Load(path string) (*domain.ViewNode, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return root, nil
}

// FormatOf picks the dump format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported layout file %q (want .json, .yaml or .yml)", filepath.Base(path))
	}
}

// Parse decodes a single root node from data.
func Parse(data []byte, format Format) (*domain.ViewNode, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyLayout
	}

	var root domain.ViewNode
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown layout format %q", format)
	}

	if err := validate(&root, "root"); err != nil {
		return nil, err
	}
	return &root, nil
}

// validate rejects null children and unknown visibility values.
func validate(n *domain.ViewNode, path string) error {
	switch n.Visibility {
	case "", domain.Visible, domain.Invisible, domain.Gone:
	default:
		return fmt.Errorf("%s: unknown visibility %q", path, n.Visibility)
	}
	for i, c := range n.Nodes {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		if c == nil {
			return fmt.Errorf("%s: null child", childPath)
		}
		if err := validate(c, childPath); err != nil {
			return err
		}
	}
	return nil
}
