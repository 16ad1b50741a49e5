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
	"strings"

	"github.com/kraklabs/clangdb/internal/errors"
	"github.com/kraklabs/clangdb/internal/output"
	"github.com/kraklabs/clangdb/internal/ui"
	"github.com/kraklabs/clangdb/pkg/compdb"
)

// ResolveResult represents a resolved configuration for JSON output.
type ResolveResult struct {
	File        string   `json:"file"`
	Direct      bool     `json:"direct"`
	Clang       string   `json:"clang"`
	Standard    string   `json:"standard"`
	CommandLine []string `json:"command_line"`
}

// runResolve executes the 'resolve' CLI command, showing the compile
// configuration the database yields for a file.
//
// Headers are not listed in compilation databases, so a file without its
// own entry is resolved through the extension fallback: the entry of a
// sibling source file (widget.h -> widget.cpp) is used instead.
//
// Flags:
//   - --json: Output results as JSON (default: false)
//
// Examples:
//
//	clangdb resolve src/widget.cpp     Entry stored in the database
//	clangdb resolve src/widget.h       Fallback through widget.cpp
//	clangdb resolve --json src/widget.h
func runResolve(args []string, configPath string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: clangdb resolve [options] <file>

Shows the compile configuration resolved for a file, using the
extension fallback for headers.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	file := fs.Arg(0)

	cfg, db, uerr := openDatabase(configPath)
	if uerr != nil {
		errors.FatalError(uerr, *jsonOutput)
	}
	defer db.Close()

	resolved, ok := compdb.FindConfigFor(db, file)
	if !ok {
		errors.FatalError(errors.NewNotFoundError(
			"No configuration for file",
			fmt.Sprintf("%s has no database entry and no sibling source file", file),
			"Check that the file belongs to a compiled target",
		), *jsonOutput)
	}
	if err := cfg.ApplyTo(resolved); err != nil {
		errors.FatalError(errors.NewConfigError(
			"Cannot apply project configuration",
			err.Error(),
			"Fix .clangdb/project.yaml",
			err,
		), *jsonOutput)
	}

	result := ResolveResult{
		File:        file,
		Direct:      db.HasConfig(file),
		Clang:       resolved.ClangBinary(),
		Standard:    resolved.Standard().String(),
		CommandLine: resolved.CommandLine(),
	}

	if *jsonOutput {
		if err := output.JSON(result); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	fmt.Printf("%s %s\n", ui.Label("File:"), file)
	if !result.Direct {
		ui.Info("Resolved through the extension fallback")
	}
	fmt.Printf("%s %s\n", ui.Label("Clang:"), result.Clang)
	fmt.Printf("%s %s\n", ui.Label("Standard:"), result.Standard)
	fmt.Printf("%s %s\n", ui.Label("Command:"), strings.Join(result.CommandLine, " "))
}
