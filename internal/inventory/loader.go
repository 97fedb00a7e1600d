package inventory

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xoinv/hostcriteria/internal/config"
	"gopkg.in/yaml.v3"
)

// Loader reads host and group variable files from an inventory directory
// tree. Its shape mirrors AnsibleInventoryLoader: one flat pass per
// subdirectory, filtered by extension, gated by an "enabled" flag, merged
// under the file's base name.
type Loader struct {
	root string
	cfg  *config.Config
}

func NewLoader(root string, cfg *config.Config) *Loader {
	return &Loader{root: root, cfg: cfg}
}

// LoadHostVars loads every enabled YAML file under the configured
// host_vars folder.
func (l *Loader) LoadHostVars() (map[string]map[string]any, error) {
	return l.loadSubdir(l.cfg.Directories.HostVarsFolder)
}

// LoadGroupVars loads every enabled YAML file under the configured
// group_vars folder.
func (l *Loader) LoadGroupVars() (map[string]map[string]any, error) {
	return l.loadSubdir(l.cfg.Directories.GroupVarsFolder)
}

func (l *Loader) loadSubdir(subdir string) (map[string]map[string]any, error) {
	dir := filepath.Join(l.root, subdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]map[string]any{}, nil
		}
		return nil, errors.Wrapf(err, "inventory: listing %s", dir)
	}

	data := map[string]map[string]any{}
	for _, entry := range entries {
		filename := entry.Name()
		if entry.IsDir() || !l.hasYAMLExtension(filename) {
			continue
		}
		path := filepath.Join(dir, filename)
		name := baseName(filename)

		fileData, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}
		if fileData == nil {
			continue
		}

		if existing, ok := data[name]; ok {
			data[name] = MergeData(existing, fileData)
		} else {
			data[name] = fileData
		}
	}
	return data, nil
}

// loadFile parses one YAML file, returning nil (not an error) when the file
// opts itself out via an "enabled: false" key.
func (l *Loader) loadFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "inventory: reading %s", path)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Wrapf(err, "inventory: parsing %s", path)
	}
	if parsed == nil {
		parsed = map[string]any{}
	}
	if !l.shouldInclude(parsed) {
		return nil, nil
	}
	return parsed, nil
}

func (l *Loader) shouldInclude(data map[string]any) bool {
	v, ok := data[l.cfg.Keys.Enabled]
	if !ok {
		return true
	}
	b, ok := v.(bool)
	return !ok || b
}

func (l *Loader) hasYAMLExtension(name string) bool {
	for _, ext := range l.cfg.Directories.YAMLExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func baseName(filename string) string {
	name := filepath.Base(filename)
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}
