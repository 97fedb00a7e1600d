package criteria

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hostFixtures mirrors the worked example set: seven hosts whose attributes
// exercise null handling, string equality on dotted IP-like values, and the
// LIKE and MATCH pattern operators.
func hostFixtures() map[string]map[string]any {
	return map[string]map[string]any{
		"h1": {"app": "proxmox", "type": "bare-metal", "ip": "10.100.4.100", "deprecated": nil, "p2": "lol"},
		"h2": {"app": "kubernetes", "type": "vm", "ip": "10.100.4.101", "deprecated": "no", "p2": nil},
		"h3": {"app": "proxmox", "type": "lxc", "ip": "10.100.4.102", "deprecated": nil},
		"h4": {"app": "docker", "type": "bare-metal", "ip": "10.100.4.200", "deprecated": "yes"},
		"h5": {"app": "kubernetes", "type": "bare-metal", "ip": "10.100.4.201", "deprecated": nil},
		"h6": {"app": "proxmox", "type": "vm", "ip": "10.100.4.202", "deprecated": "no"},
		"h7": {"app": "docker", "type": "lxc", "ip": "10.100.4.203", "deprecated": "yes"},
	}
}

// matchingHosts evaluates criterion against every fixture host and returns
// the sorted names of those that satisfy it.
func matchingHosts(t *testing.T, criterion string) []string {
	t.Helper()
	var matched []string
	for name, attrs := range hostFixtures() {
		ok, err := Evaluate(criterion, attrs)
		require.NoError(t, err, "%s against %s", criterion, name)
		if ok {
			matched = append(matched, name)
		}
	}
	sort.Strings(matched)
	return matched
}

func TestEvaluateWorkedExamples(t *testing.T) {
	cases := []struct {
		criterion string
		want      []string
	}{
		{`app = "proxmox" AND type = "bare-metal"`, []string{"h1"}},
		{`app = "kubernetes" OR type = "vm"`, []string{"h2", "h5", "h6"}},
		{`(app = "proxmox" AND type = "lxc") OR ip = "10.100.4.100"`, []string{"h1", "h3"}},
		{`NOT (app = "proxmox" OR app = "kubernetes")`, []string{"h4", "h7"}},
		{`deprecated ISNULL`, []string{"h1", "h3", "h5"}},
		{`p2 ISNOTNULL`, []string{"h1"}},
		{`app LIKE "prox%"`, []string{"h1", "h3", "h6"}},
		{`ip MATCH "^10.100.4.1.*$"`, []string{"h1", "h2", "h3"}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.criterion, func(t *testing.T) {
			assert.Equal(t, c.want, matchingHosts(t, c.criterion))
		})
	}
}

func TestEvaluateSyntaxErrorPropagates(t *testing.T) {
	_, err := Evaluate("app bare-metal", map[string]any{})
	require.Error(t, err)
	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)
}

func TestEvaluateUnknownAttributeIsNilNotError(t *testing.T) {
	ok, err := Evaluate(`ghost = "x"`, map[string]any{"app": "proxmox"})
	require.NoError(t, err)
	assert.False(t, ok)
}
