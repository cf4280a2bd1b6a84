package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	".gradle":      true,
	".layoutcheck": true,
	"dist":         true,
	"bin":          true,
	"testdata":     true,
}

// LayoutSuffixes are the file name endings recognized as layout dumps.
var LayoutSuffixes = []string{".layout.json", ".layout.yaml", ".layout.yml"}

// FileScanner implements domain.LayoutScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan returns every layout dump under projectPath, sorted by path. A dump
// named foo.layout.json is paired with foo.png when that file exists.
func (s *FileScanner) Scan(projectPath string, excludePaths ...string) ([]domain.LayoutTarget, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	// Merge extra excludes with built-in skip dirs.
	extraSkip := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extraSkip[filepath.ToSlash(strings.TrimSuffix(p, "/"))] = true
	}

	var targets []domain.LayoutTarget
	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, _ := filepath.Rel(absPath, path)
		relSlash := filepath.ToSlash(relPath)

		if d.IsDir() {
			if path == absPath {
				return nil
			}
			if skipDirs[d.Name()] || extraSkip[d.Name()] || extraSkip[relSlash] {
				return filepath.SkipDir
			}
			return nil
		}
		if extraSkip[relSlash] {
			return nil
		}

		stem, ok := LayoutStem(d.Name())
		if !ok {
			return nil
		}
		t := domain.LayoutTarget{Layout: relPath}
		shot := filepath.Join(filepath.Dir(relPath), stem+".png")
		if info, err := os.Stat(filepath.Join(absPath, shot)); err == nil && !info.IsDir() {
			t.Screenshot = shot
		}
		targets = append(targets, t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].Layout < targets[j].Layout })
	return targets, nil
}

// LayoutStem strips a layout suffix from name. ok is false when name is
// not a layout dump.
func LayoutStem(name string) (stem string, ok bool) {
	for _, suffix := range LayoutSuffixes {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return strings.TrimSuffix(name, suffix), true
		}
	}
	return "", false
}
