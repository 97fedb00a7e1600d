package inventory

import (
	"log/slog"
	"sort"

	"github.com/xoinv/hostcriteria/internal/config"
	"github.com/xoinv/hostcriteria/internal/criteria"
)

// Build loads host_vars and group_vars from dir, evaluates each group's
// criterion against every host, and returns the assembled Ansible dynamic
// inventory document: a map of group name to {hosts, vars, children}, plus
// a "_meta" key holding every host's variables. The returned map is ready
// for json.Marshal.
func Build(dir string, cfg *config.Config) (map[string]any, error) {
	loader := NewLoader(dir, cfg)

	hostVars, err := loader.LoadHostVars()
	if err != nil {
		return nil, err
	}
	groupVars, err := loader.LoadGroupVars()
	if err != nil {
		return nil, err
	}

	keys := cfg.Keys
	inv := map[string]any{
		keys.Meta: map[string]any{keys.HostVars: map[string]any{}},
	}
	meta := inv[keys.Meta].(map[string]any)
	hostvarsOut := meta[keys.HostVars].(map[string]any)

	for host, vars := range hostVars {
		if host == keys.All {
			continue
		}
		hostvarsOut[host] = vars
	}

	if cfg.Features.MergeHostAllVars {
		if allVars, ok := hostVars[keys.All]; ok {
			for _, hostData := range hostvarsOut {
				hv, ok := hostData.(map[string]any)
				if !ok {
					continue
				}
				for k, v := range allVars {
					if _, exists := hv[k]; !exists {
						hv[k] = v
					}
				}
			}
		}
	}

	for groupName, vars := range groupVars {
		inv[groupName] = newGroupEntry(keys, vars)
	}

	if cfg.Features.EvaluateGroupCriteria {
		evaluateGroupCriteria(inv, hostVars, groupVars, cfg)
	}

	if cfg.Features.AddAllHostsToAllGroup {
		addHostsToAllGroup(inv, keys)
	}

	if cfg.Sorting.Enabled {
		sortInventory(inv, cfg)
	}

	return inv, nil
}

func newGroupEntry(keys config.KeysConfig, vars map[string]any) map[string]any {
	return map[string]any{
		keys.Hosts:    []string{},
		keys.Vars:     vars,
		keys.Children: []string{},
	}
}

// evaluateGroupCriteria assigns hosts to groups by running each group's
// criterion (stored under keys.HostCriteriaVar) against every host's
// attribute map. A criterion that fails to parse or evaluate for a host is
// logged and treated as non-membership, never as a fatal build error.
func evaluateGroupCriteria(inv map[string]any, hostVars, groupVars map[string]map[string]any, cfg *config.Config) {
	keys := cfg.Keys
	for groupName, vars := range canonicalMapIter(groupVars) {
		criterionRaw, ok := vars[keys.HostCriteriaVar]
		if !ok {
			continue
		}
		criterionText, ok := criterionRaw.(string)
		if !ok {
			slog.Warn("inventory: host_criteria is not a string, skipping group",
				"group", groupName)
			continue
		}

		entry, ok := inv[groupName].(map[string]any)
		if !ok {
			entry = newGroupEntry(keys, vars)
			inv[groupName] = entry
		}

		var matched []string
		for host, attrs := range canonicalMapIter(hostVars) {
			if host == keys.All {
				continue
			}
			ok, err := criteria.Evaluate(criterionText, attrs)
			if err != nil {
				slog.Warn("inventory: criterion evaluation failed, treating as non-match",
					"group", groupName, "host", host, "error", err)
				continue
			}
			if ok {
				matched = append(matched, host)
			}
		}
		entry[keys.Hosts] = matched
	}
}

func addHostsToAllGroup(inv map[string]any, keys config.KeysConfig) {
	meta, ok := inv[keys.Meta].(map[string]any)
	if !ok {
		return
	}
	hostvars, ok := meta[keys.HostVars].(map[string]any)
	if !ok {
		return
	}

	names := make([]string, 0, len(hostvars))
	for name := range canonicalMapIter(hostvars) {
		names = append(names, name)
	}
	inv[keys.All] = map[string]any{
		keys.Hosts:    names,
		keys.Vars:     map[string]any{},
		keys.Children: []string{},
	}
}

// sortInventory orders host and child-group lists for deterministic,
// human-friendly output. Map key order (group names, hostvar keys, group
// vars) needs no separate pass: encoding/json already serializes
// map[string]any keys in sorted order, so the original's SORT_GROUP_KEYS,
// SORT_HOSTVAR_KEYS and SORT_GROUP_VARS flags have no Go equivalent to
// apply — they're retained on SortingConfig for fidelity with the source
// configuration file but only the list-valued flags below do any work.
func sortInventory(inv map[string]any, cfg *config.Config) {
	keys := cfg.Keys
	sorting := cfg.Sorting

	for groupName, entry := range inv {
		if groupName == keys.Meta {
			continue
		}
		group, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if sorting.GroupHosts {
			if hosts, ok := group[keys.Hosts].([]string); ok {
				sort.Strings(hosts)
			}
		}
		if sorting.GroupChildren {
			if children, ok := group[keys.Children].([]string); ok {
				sort.Strings(children)
			}
		}
	}
}
