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
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kraklabs/clangdb/internal/errors"
	"github.com/kraklabs/clangdb/internal/output"
	"github.com/kraklabs/clangdb/internal/ui"
	"github.com/kraklabs/clangdb/pkg/compdb"
)

// CheckResult represents the database summary for JSON output.
type CheckResult struct {
	BuildDir  string    `json:"build_dir"`
	Database  string    `json:"database"`
	Files     int       `json:"files"`
	Clang     string    `json:"clang"`
	Timestamp time.Time `json:"timestamp"`
}

// CheckFileResult represents a single-file resolvability probe for JSON
// output.
type CheckFileResult struct {
	File      string    `json:"file"`
	Resolved  bool      `json:"resolved"`
	Direct    bool      `json:"direct"`
	Timestamp time.Time `json:"timestamp"`
}

// runCheck executes the 'check' CLI command.
//
// Without arguments it loads the compilation database and prints a
// summary: compile_commands.json exists in the configured build
// directory, parses cleanly, and describes N translation units.
//
// With a file argument it probes resolvability instead: exit 0 if a
// configuration resolves for the file (directly or through the
// extension fallback), the not-found exit code otherwise.
//
// Flags:
//   - --json: Output results as JSON (default: false)
//
// Examples:
//
//	clangdb check                Display formatted summary
//	clangdb check --json         Output as JSON for programmatic use
//	clangdb check src/widget.h   Exit 0 if the header resolves
func runCheck(args []string, configPath string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: clangdb check [options] [file]

Loads the compilation database and prints a summary. With a file
argument, checks that a configuration resolves for it instead.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(1)
	}

	cfg, db, uerr := openDatabase(configPath)
	if uerr != nil {
		errors.FatalError(uerr, *jsonOutput)
	}
	defer db.Close()

	if fs.NArg() == 1 {
		checkFile(db, fs.Arg(0), *jsonOutput)
		return
	}

	result := CheckResult{
		BuildDir:  cfg.BuildDir,
		Database:  databasePath(cfg.BuildDir),
		Files:     db.Len(),
		Clang:     cfg.Clang.Binary,
		Timestamp: time.Now(),
	}

	if *jsonOutput {
		if err := output.JSON(result); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	ui.Header("Compilation Database")
	fmt.Printf("%s %s\n", ui.Label("Build dir:"), cfg.BuildDir)
	fmt.Printf("%s %s\n", ui.Label("Database:"), ui.DimText(result.Database))
	fmt.Printf("%s %s\n", ui.Label("Files:"), ui.CountText(result.Files))
	fmt.Printf("%s %s\n", ui.Label("Clang:"), cfg.Clang.Binary)
	fmt.Println()
	ui.Successf("Database loaded with %d translation units", result.Files)
}

// checkFile probes whether a configuration resolves for the file and
// exits with the not-found code on a miss.
func checkFile(db *compdb.Database, file string, jsonOutput bool) {
	_, ok := compdb.FindConfigFor(db, file)
	if !ok {
		errors.FatalError(errors.NewNotFoundError(
			"No configuration for file",
			fmt.Sprintf("%s has no database entry and no sibling source file", file),
			"Check that the file belongs to a compiled target",
		), jsonOutput)
	}

	result := CheckFileResult{
		File:      file,
		Resolved:  true,
		Direct:    db.HasConfig(file),
		Timestamp: time.Now(),
	}

	if jsonOutput {
		if err := output.JSON(result); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	ui.Successf("Configuration resolves for %s", file)
	if !result.Direct {
		ui.Info("Resolved through the extension fallback")
	}
}
