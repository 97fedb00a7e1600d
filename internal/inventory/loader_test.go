package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xoinv/hostcriteria/internal/config"
)

func writeYAML(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoaderLoadsHostVars(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	writeYAML(t, filepath.Join(dir, cfg.Directories.HostVarsFolder, "h1.yaml"), "app: proxmox\ntype: bare-metal\n")
	writeYAML(t, filepath.Join(dir, cfg.Directories.HostVarsFolder, "h2.yml"), "app: docker\n")

	loader := NewLoader(dir, cfg)
	hosts, err := loader.LoadHostVars()
	require.NoError(t, err)
	assert.Equal(t, "proxmox", hosts["h1"]["app"])
	assert.Equal(t, "docker", hosts["h2"]["app"])
}

func TestLoaderExcludesDisabledFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	writeYAML(t, filepath.Join(dir, cfg.Directories.HostVarsFolder, "h1.yaml"), "enabled: false\napp: proxmox\n")

	loader := NewLoader(dir, cfg)
	hosts, err := loader.LoadHostVars()
	require.NoError(t, err)
	_, ok := hosts["h1"]
	assert.False(t, ok)
}

func TestLoaderMissingSubdirIsEmptyNotError(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	loader := NewLoader(dir, cfg)
	hosts, err := loader.LoadHostVars()
	require.NoError(t, err)
	assert.Empty(t, hosts)
}

func TestLoaderIgnoresNonYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	writeYAML(t, filepath.Join(dir, cfg.Directories.HostVarsFolder, "README.md"), "not yaml")
	loader := NewLoader(dir, cfg)
	hosts, err := loader.LoadHostVars()
	require.NoError(t, err)
	assert.Empty(t, hosts)
}
