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
// Package main implements the clangdb CLI for inspecting compilation
// databases and parsing the files they describe.
//
// Usage:
//
//	clangdb init                     Create .clangdb/project.yaml configuration
//	clangdb check [file] [--json]    Summarize the database, or probe one file
//	clangdb list [--json]            List the files stored in the database
//	clangdb resolve <file> [--json]  Show the compile configuration for a file
//	clangdb parse [files...]         Parse files with their resolved configurations
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kraklabs/clangdb/pkg/compdb"
)

// Version information (set via ldflags during build)
var (
	version = "dev"     // Version string
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// GlobalFlags carries the output-shaping flags shared by all commands.
type GlobalFlags struct {
	// Quiet suppresses progress output.
	Quiet bool

	// NoColor disables colored output.
	NoColor bool
}

// main is the entry point for the clangdb CLI.
//
// It parses global flags and dispatches to command handlers.
//
// Global flags:
//   - --version: Display version information and exit
//   - --config: Path to .clangdb/project.yaml configuration file
//
// Commands:
//   - init: Create .clangdb/project.yaml configuration
//   - check: Load and summarize the compilation database
//   - list: List the files stored in the database
//   - resolve: Show the compile configuration resolved for a file
//   - parse: Parse files with their resolved configurations
func main() {
	// Global flags
	var (
		showVersion = flag.Bool("version", false, "Show version and exit")
		configPath  = flag.String("config", "", "Path to .clangdb/project.yaml (default: ./.clangdb/project.yaml)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `clangdb - compilation database toolkit

clangdb loads compile_commands.json databases, resolves per-file
compile configurations (with header fallback), and drives parsers
over whole builds.

Usage:
  clangdb <command> [options]

Commands:
  init       Create .clangdb/project.yaml configuration
  check      Summarize the database, or probe one file's resolvability
  list       List the files stored in the database
  resolve    Show the compile configuration for a file
  parse      Parse files with their resolved configurations

Global Options:
  --config   Path to .clangdb/project.yaml
  --version  Show version and exit

Examples:
  clangdb init --build-dir build     Create configuration
  clangdb check                      Verify the database loads
  clangdb list --json                Machine-readable file list
  clangdb resolve src/widget.h       Show the fallback-resolved config
  clangdb parse                      Parse every file in the database
  clangdb parse src/a.cpp src/b.cpp  Parse an explicit list

Getting Started:
  1. Export a database:   cmake -B build -DCMAKE_EXPORT_COMPILE_COMMANDS=ON
  2. Create config:       clangdb init --build-dir build
  3. Verify it loads:     clangdb check
  4. Parse the build:     clangdb parse

For detailed command help: clangdb <command> --help

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("clangdb version %s\n", version)
		fmt.Printf("library: %d.%d.%d\n", compdb.VersionMajor, compdb.VersionMinor, compdb.VersionPatch)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "init":
		runInit(cmdArgs)
	case "check":
		runCheck(cmdArgs, *configPath)
	case "list":
		runList(cmdArgs, *configPath)
	case "resolve":
		runResolve(cmdArgs, *configPath)
	case "parse":
		runParse(cmdArgs, *configPath)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
