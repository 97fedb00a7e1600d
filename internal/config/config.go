// Package config loads hostinv's YAML configuration file, searching a fixed
// list of candidate locations the way the original inventory_loader.yaml
// lookup did.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoggingConfig controls util.InitLogger.
type LoggingConfig struct {
	Format             string `yaml:"format"`
	TimestampFormat    string `yaml:"timestamp_format"`
	MinLevel           string `yaml:"min_level"`
	EnableFileLogging  bool   `yaml:"enable_file_logging"`
	FilePath           string `yaml:"file_path"`
	EnableRotation     bool   `yaml:"enable_rotation"`
	FileMaxSizeMB      int    `yaml:"file_max_size_mb"`
	FileBackupCount    int    `yaml:"file_backup_count"`
}

// DirectoriesConfig names the subdirectories and file extensions the loader
// walks under the inventory root.
type DirectoriesConfig struct {
	HostVarsFolder  string   `yaml:"host_vars_folder"`
	GroupVarsFolder string   `yaml:"group_vars_folder"`
	YAMLExtensions  []string `yaml:"yaml_extensions"`
}

// KeysConfig names the well-known keys the builder reads and writes in host
// and group variable files and in the assembled inventory document.
type KeysConfig struct {
	HostCriteriaVar string `yaml:"host_criteria_var"`
	Enabled         string `yaml:"enabled"`
	All             string `yaml:"all"`
	HostVars        string `yaml:"hostvars"`
	Meta            string `yaml:"meta"`
	Vars            string `yaml:"vars"`
	Hosts           string `yaml:"hosts"`
	Children        string `yaml:"children"`
}

// FeaturesConfig toggles optional builder behavior.
type FeaturesConfig struct {
	AddAllHostsToAllGroup bool `yaml:"add_all_hosts_to_all_group"`
	MergeHostAllVars      bool `yaml:"merge_host_all_vars"`
	EvaluateGroupCriteria bool `yaml:"evaluate_group_criteria"`
}

// SortingConfig toggles cosmetic output ordering.
type SortingConfig struct {
	Enabled         bool `yaml:"enabled"`
	GroupKeys       bool `yaml:"group_keys"`
	HostVarKeys     bool `yaml:"hostvar_keys"`
	HostVarVars     bool `yaml:"hostvar_vars"`
	GroupVars       bool `yaml:"group_vars"`
	GroupHosts      bool `yaml:"group_hosts"`
	GroupChildren   bool `yaml:"group_children"`
}

// CacheConfig controls the file-based inventory cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Location string `yaml:"location"`
}

// Config is the root of inventory_loader.yaml.
type Config struct {
	StorageLocation string             `yaml:"storage_location"`
	Logging         LoggingConfig      `yaml:"logging"`
	Directories     DirectoriesConfig  `yaml:"directories"`
	Keys            KeysConfig         `yaml:"keys"`
	Features        FeaturesConfig     `yaml:"features"`
	Sorting         SortingConfig      `yaml:"sorting"`
	Cache           CacheConfig        `yaml:"cache"`
}

// Default returns the configuration hostinv ships with when no config file
// is found and none is required by the caller (e.g. unit tests).
func Default() *Config {
	return &Config{
		StorageLocation: ".",
		Logging: LoggingConfig{
			Format:          "%(time)s [%(level)s] %(message)s",
			TimestampFormat: "2006-01-02T15:04:05Z07:00",
			MinLevel:        "info",
		},
		Directories: DirectoriesConfig{
			HostVarsFolder:  "host_vars",
			GroupVarsFolder: "group_vars",
			YAMLExtensions:  []string{".yaml", ".yml"},
		},
		Keys: KeysConfig{
			HostCriteriaVar: "host_criteria",
			Enabled:         "enabled",
			All:             "all",
			HostVars:        "hostvars",
			Meta:            "_meta",
			Vars:            "vars",
			Hosts:           "hosts",
			Children:        "children",
		},
		Features: FeaturesConfig{
			AddAllHostsToAllGroup: true,
			MergeHostAllVars:      true,
			EvaluateGroupCriteria: true,
		},
		Sorting: SortingConfig{
			Enabled:       true,
			GroupKeys:     true,
			HostVarKeys:   true,
			HostVarVars:   true,
			GroupVars:     true,
			GroupHosts:    true,
			GroupChildren: true,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Location: "inventory.cache.json",
		},
	}
}

// searchPaths returns the ordered candidate locations for the configuration
// file, mirroring globals.py's load_config: an administrative system path,
// an environment-driven path, the XDG per-user config directory, then the
// current working directory.
func searchPaths(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	paths := []string{"/etc/ansible/inventory_loader.yaml"}
	if dir := os.Getenv("ANSIBLE_INVENTORY"); dir != "" {
		paths = append(paths, filepath.Join(dir, "inventory_loader.yaml"))
	}
	if xdgPath, err := xdg.ConfigFile("hostinv/inventory_loader.yaml"); err == nil {
		paths = append(paths, xdgPath)
	}
	paths = append(paths, "inventory_loader.yaml")
	return paths
}

// Load searches the candidate configuration paths (see searchPaths) and
// parses the first one that exists. explicitPath, when non-empty, overrides
// the search and is used verbatim. If no candidate exists, Load returns the
// built-in Default configuration rather than failing, since a standalone
// hostinv invocation against a self-contained inventory directory is a valid
// use case the original's FileNotFoundError did not allow for.
func Load(explicitPath string) (*Config, error) {
	for _, path := range searchPaths(explicitPath) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "config: reading %s", path)
		}
		cfg := Default()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "config: parsing %s", path)
		}
		return cfg, nil
	}
	if explicitPath != "" {
		return nil, errors.Errorf("config: no configuration file found at %s", explicitPath)
	}
	return Default(), nil
}
