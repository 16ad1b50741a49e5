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
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// initFlags holds parsed flags for the init command.
type initFlags struct {
	force, nonInteractive     bool
	buildDir, clangBinary     string
	clangVersion, standard    string
	writePreprocessed, fastPP bool
}

// runInit executes the 'init' CLI command, creating a .clangdb/project.yaml
// configuration file.
//
// It creates the configuration directory, generates a default configuration,
// and optionally prompts the user for customization in interactive mode.
//
// Flags:
//   - --force: Overwrite existing configuration (default: false)
//   - -y: Non-interactive mode, use all defaults (default: false)
//   - --build-dir: Directory containing compile_commands.json (default: build)
//   - --clang: Clang binary used for preprocessing
//   - --clang-version: Version of the clang binary (major.minor.patch)
//   - --std: Language standard override (c++17, gnu++14, ...)
//   - --preprocess: Write preprocessed files during parsing
//   - --fast-preprocess: Enable fast preprocessing
//
// Examples:
//
//	clangdb init                       Interactive setup
//	clangdb init -y                    Use all defaults
//	clangdb init --build-dir out       Use out/compile_commands.json
//	clangdb init --clang clang++-18 --clang-version 18.1.8
func runInit(args []string) {
	flags := parseInitFlags(args)

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot get current directory: %v\n", err)
		os.Exit(1)
	}

	configPath := ConfigPath(cwd)
	if _, err := os.Stat(configPath); err == nil && !flags.force {
		fmt.Fprintf(os.Stderr, "Error: %s already exists. Use --force to overwrite.\n", configPath)
		os.Exit(1)
	}

	cfg := createInitConfig(flags)
	reader := bufio.NewReader(os.Stdin)

	if !flags.nonInteractive {
		runInteractiveConfig(reader, cfg)
	}

	saveInitConfig(cwd, configPath, cfg)
	printNextSteps()
}

func parseInitFlags(args []string) initFlags {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var f initFlags
	fs.BoolVar(&f.force, "force", false, "Overwrite existing configuration")
	fs.BoolVar(&f.nonInteractive, "y", false, "Non-interactive mode (use defaults)")
	fs.StringVar(&f.buildDir, "build-dir", "build", "Directory containing compile_commands.json")
	fs.StringVar(&f.clangBinary, "clang", "", "Clang binary used for preprocessing")
	fs.StringVar(&f.clangVersion, "clang-version", "", "Clang version (major.minor.patch)")
	fs.StringVar(&f.standard, "std", "", "Language standard override (c++17, gnu++14, ...)")
	fs.BoolVar(&f.writePreprocessed, "preprocess", false, "Write preprocessed files during parsing")
	fs.BoolVar(&f.fastPP, "fast-preprocess", false, "Enable fast preprocessing")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: clangdb init [options]

Creates .clangdb/project.yaml configuration file.

Examples:
  clangdb init --build-dir build        # CMake default layout
  clangdb init --build-dir out -y       # Non-interactive with defaults
  clangdb init --std c++20              # Force a language standard
  clangdb init --clang clang++-18 --clang-version 18.1.8

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	return f
}

func createInitConfig(f initFlags) *Config {
	cfg := DefaultConfig(f.buildDir)
	if f.clangBinary != "" {
		cfg.Clang.Binary = f.clangBinary
	}
	if f.clangVersion != "" {
		cfg.Clang.Version = f.clangVersion
	}
	if f.standard != "" {
		cfg.Parse.Standard = f.standard
	}
	cfg.Preprocess.Write = f.writePreprocessed
	cfg.Preprocess.Fast = f.fastPP
	return cfg
}

func runInteractiveConfig(reader *bufio.Reader, cfg *Config) {
	fmt.Println("clangdb Project Configuration")
	fmt.Println("=============================")
	fmt.Println()

	cfg.BuildDir = prompt(reader, "Build directory", cfg.BuildDir)
	cfg.Clang.Binary = prompt(reader, "Clang binary", cfg.Clang.Binary)
	cfg.Clang.Version = prompt(reader, "Clang version", cfg.Clang.Version)

	fmt.Println()
	fmt.Println("Standards: c++98, c++03, c++11, c++14, c++17, c++20, c++23 (or gnu++ variants)")
	cfg.Parse.Standard = prompt(reader, "Standard override (empty keeps database entries)", cfg.Parse.Standard)
	fmt.Println()
}

func saveInitConfig(cwd, configPath string, cfg *Config) {
	dir := ConfigDir(cwd)
	if err := os.MkdirAll(dir, 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create .clangdb directory: %v\n", err)
		os.Exit(1)
	}
	if err := SaveConfig(cfg, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot save configuration: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created %s\n", configPath)
	addToGitignore(cwd)
}

func printNextSteps() {
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Review and edit .clangdb/project.yaml if needed")
	fmt.Println("  2. Run 'clangdb check' to verify the database loads")
	fmt.Println("  3. Run 'clangdb parse' to parse the build")
}

// prompt displays an interactive prompt and reads user input from stdin.
//
// If the user presses Enter without providing input, the defaultValue is
// returned. This is used during interactive configuration setup.
func prompt(reader *bufio.Reader, label, defaultValue string) string {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", label, defaultValue)
	} else {
		fmt.Printf("%s: ", label)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultValue
	}
	return input
}

// addToGitignore adds .clangdb/ to the project's .gitignore file if not
// already present.
//
// It safely appends the entry to .gitignore, avoiding duplicates. If
// .gitignore does not exist or cannot be modified, the function silently
// returns without error.
func addToGitignore(dir string) {
	gitignorePath := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(gitignorePath) //nolint:gosec // G304: gitignorePath built from repo dir
	if err != nil {
		// No .gitignore, nothing to do
		return
	}

	lines := strings.Split(string(content), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == ".clangdb/" || line == ".clangdb" || line == "/.clangdb/" || line == "/.clangdb" {
			return // Already present
		}
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_WRONLY, 0600) //nolint:gosec // G304: gitignorePath built from repo dir
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	// Add newline if file doesn't end with one
	if len(content) > 0 && content[len(content)-1] != '\n' {
		_, _ = f.WriteString("\n")
	}

	_, _ = f.WriteString("\n# clangdb configuration\n.clangdb/\n")
	fmt.Println("Added .clangdb/ to .gitignore")
}
