// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/clangdb/pkg/compdb"
)

// Config is the .clangdb/project.yaml project configuration.
type Config struct {
	// BuildDir is the directory containing compile_commands.json,
	// relative to the project root or absolute.
	BuildDir string `yaml:"build_dir"`

	// Clang selects the clang binary used for preprocessing.
	Clang ClangSection `yaml:"clang"`

	// Parse holds extra options layered on top of every resolved
	// configuration.
	Parse ParseSection `yaml:"parse"`

	// Preprocess holds the preprocessing toggles.
	Preprocess PreprocessSection `yaml:"preprocess"`
}

// ClangSection selects the clang binary and its version.
type ClangSection struct {
	Binary  string `yaml:"binary"`
	Version string `yaml:"version"`
}

// ParseSection holds parse options applied on top of database entries.
type ParseSection struct {
	// Standard overrides the language standard ("c++17", "gnu++14").
	// Empty keeps whatever the database entry selects.
	Standard string `yaml:"standard,omitempty"`

	// IncludeDirs are extra include directories.
	IncludeDirs []string `yaml:"include_dirs,omitempty"`

	// Defines are extra macro definitions ("NAME" or "NAME=VALUE").
	Defines []string `yaml:"defines,omitempty"`

	// Undefines are macros to undefine.
	Undefines []string `yaml:"undefines,omitempty"`

	// Flags are raw clang flags passed through unchanged.
	Flags []string `yaml:"flags,omitempty"`
}

// PreprocessSection holds the preprocessing toggles.
type PreprocessSection struct {
	// Write writes the preprocessed file next to the source (.pp).
	Write bool `yaml:"write"`

	// Fast enables fast preprocessing (macro dump only).
	Fast bool `yaml:"fast"`

	// RemoveCommentsInMacro strips comments produced by macro expansion.
	RemoveCommentsInMacro bool `yaml:"remove_comments_in_macro"`
}

// ConfigDir returns the configuration directory for a project root.
func ConfigDir(dir string) string {
	return filepath.Join(dir, ".clangdb")
}

// ConfigPath returns the configuration file path for a project root.
func ConfigPath(dir string) string {
	return filepath.Join(ConfigDir(dir), "project.yaml")
}

// DefaultConfig returns the default configuration for a build directory.
func DefaultConfig(buildDir string) *Config {
	return &Config{
		BuildDir: buildDir,
		Clang: ClangSection{
			Binary:  compdb.DefaultClangBinary,
			Version: compdb.DefaultClangVersion,
		},
	}
}

// LoadConfig loads the configuration from path. An empty path falls back
// to ./.clangdb/project.yaml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
		path = ConfigPath(cwd)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the --config flag
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	if cfg.BuildDir == "" {
		return nil, fmt.Errorf("%s: build_dir is required", path)
	}
	return &cfg, nil
}

// SaveConfig writes the configuration as YAML.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

// ApplyTo layers the project configuration onto a resolved compile
// configuration: clang binary, standard override, extra include dirs,
// macros, flags and the preprocessing toggles.
func (cfg *Config) ApplyTo(c *compdb.ClangConfig) error {
	if cfg.Clang.Binary != "" {
		major, minor, patch, err := splitVersion(cfg.Clang.Version)
		if err != nil {
			return err
		}
		c.SetClangBinary(cfg.Clang.Binary, major, minor, patch)
	}

	if cfg.Parse.Standard != "" {
		std, flags, err := compdb.ParseStandard(cfg.Parse.Standard)
		if err != nil {
			return err
		}
		c.ApplyStandardAndFlags(std, c.CompileFlags()|flags)
	}

	for _, dir := range cfg.Parse.IncludeDirs {
		c.AddIncludeDir(dir)
	}
	for _, def := range cfg.Parse.Defines {
		name, value, _ := strings.Cut(def, "=")
		c.AddMacroDefinition(name, value)
	}
	for _, name := range cfg.Parse.Undefines {
		c.RemoveMacroDefinition(name)
	}
	for _, f := range cfg.Parse.Flags {
		c.AddFlag(f)
	}

	c.SetWritePreprocessed(cfg.Preprocess.Write)
	c.SetFastPreprocessing(cfg.Preprocess.Fast)
	c.SetRemoveCommentsInMacro(cfg.Preprocess.RemoveCommentsInMacro)
	return nil
}

// splitVersion parses a "major.minor.patch" version string. Missing
// components default to zero.
func splitVersion(v string) (major, minor, patch int, err error) {
	if v == "" {
		return 0, 0, 0, nil
	}
	parts := strings.SplitN(v, ".", 3)
	nums := make([]int, 3)
	for i, p := range parts {
		if _, err := fmt.Sscanf(p, "%d", &nums[i]); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid clang version %q", v)
		}
	}
	return nums[0], nums[1], nums[2], nil
}
