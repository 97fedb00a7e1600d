package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/xoinv/hostcriteria/internal/config"
	"github.com/xoinv/hostcriteria/internal/inventory"
	"github.com/xoinv/hostcriteria/util"
)

var version string

type options struct {
	List       bool   `long:"list" description:"Print the full Ansible dynamic inventory as JSON"`
	Host       string `long:"host" description:"Print vars for a single host" value-name:"hostname"`
	Dir        string `short:"d" long:"dir" description:"Inventory source directory" value-name:"path" default:"."`
	ConfigPath string `short:"c" long:"config" description:"Path to inventory_loader.yaml, overriding the default search" value-name:"path"`
	NoCache    bool   `long:"no-cache" description:"Bypass and do not update the inventory cache"`
	Help       bool   `long:"help" description:"Show this help"`
	Version    bool   `long:"version" description:"Show this version"`
}

func parseOptions(args []string) *options {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[option...]"
	_, err := parser.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}
	if !opts.List && opts.Host == "" {
		fmt.Fprint(os.Stderr, "Ansible dynamic inventory scripts are called with --list or --host <name>\n\n")
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}
	return &opts
}

func main() {
	opts := parseOptions(os.Args[1:])

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	util.InitLogger(cfg.Logging)

	inv, err := loadInventory(opts, cfg)
	if err != nil {
		slog.Error("hostinv: failed to build inventory", "error", err)
		os.Exit(1)
	}

	var out any = inv
	if opts.Host != "" {
		meta, _ := inv[cfg.Keys.Meta].(map[string]any)
		hostvars, _ := meta[cfg.Keys.HostVars].(map[string]any)
		out = hostvars[opts.Host]
		if out == nil {
			out = map[string]any{}
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		slog.Error("hostinv: failed to encode inventory", "error", err)
		os.Exit(1)
	}
}

func loadInventory(opts *options, cfg *config.Config) (map[string]any, error) {
	cachePath := cfg.Cache.Location
	cache := inventory.NewCache(cachePath)

	if cfg.Cache.Enabled && !opts.NoCache && cache.IsValid(opts.Dir, opts.ConfigPath) {
		slog.Debug("hostinv: using cached inventory", "path", cachePath)
		return cache.Load()
	}

	inv, err := inventory.Build(opts.Dir, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Cache.Enabled && !opts.NoCache {
		if err := cache.Save(inv); err != nil {
			slog.Warn("hostinv: failed to write inventory cache", "error", err)
		}
	}
	return inv, nil
}
