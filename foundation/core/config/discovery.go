// File: discovery.go
// Title: Configuration File Discovery Implementation
// Description: Finds a configuration file across a list of directories,
//              base names and extensions when no explicit path is given.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file discovery
// - 2026-10-18 v0.2.0: Defaults and env prefix forwarded to the loader

package config

import (
	"os"
	"path/filepath"
	"strings"

	mdwerror "github.com/msto63/exact/foundation/core/error"
)

// DiscoveryOptions defines options for automatic configuration file discovery
type DiscoveryOptions struct {
	Paths      []string
	Filenames  []string
	Extensions []string
	EnvPrefix  string
	Defaults   map[string]interface{}
	Required   bool
}

// Discover loads the first configuration file found. When nothing is found
// and Required is false, it returns an empty configuration carrying the
// defaults and env prefix.
func Discover(options DiscoveryOptions) (*Config, error) {
	path, err := FindConfigFile(options)
	if err != nil {
		if options.Required {
			return nil, err
		}
		return Empty(options.EnvPrefix, options.Defaults), nil
	}

	return LoadWithOptions(path, LoadOptions{
		Format:    FormatAuto,
		EnvPrefix: options.EnvPrefix,
		Defaults:  options.Defaults,
	})
}

// FindConfigFile searches for a configuration file without loading it
func FindConfigFile(options DiscoveryOptions) (string, error) {
	paths := options.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	names := options.Filenames
	if len(names) == 0 {
		names = []string{"config"}
	}
	exts := options.Extensions
	if len(exts) == 0 {
		exts = []string{".toml", ".yaml", ".yml"}
	}

	var searched []string
	for _, dir := range paths {
		for _, name := range names {
			for _, ext := range exts {
				candidate := filepath.Join(expandHome(dir), name+ext)
				if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
					return candidate, nil
				}
				searched = append(searched, candidate)
			}
		}
	}

	return "", mdwerror.New("no configuration file found in: "+strings.Join(searched, ", ")).
		WithCode(mdwerror.CodeMissingConfig).
		WithOperation("config.FindConfigFile").
		WithDetail("searchPaths", searched)
}

func expandHome(dir string) string {
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dir
	}
	return filepath.Join(home, strings.TrimPrefix(dir, "~"))
}
