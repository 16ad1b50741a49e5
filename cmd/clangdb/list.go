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

	"github.com/kraklabs/clangdb/internal/errors"
	"github.com/kraklabs/clangdb/internal/output"
)

// ListResult represents the stored file list for JSON output.
type ListResult struct {
	BuildDir string   `json:"build_dir"`
	Files    []string `json:"files"`
}

// runList executes the 'list' CLI command, printing every file the
// compilation database stores a command for.
//
// Each file is listed once even if the database carries several entries
// for it (one per target, for example).
//
// Flags:
//   - --json: Output results as JSON (default: false)
//
// Examples:
//
//	clangdb list            One file per line
//	clangdb list --json     Output as JSON for programmatic use
func runList(args []string, configPath string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: clangdb list [options]

Lists the files stored in the compilation database.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, db, uerr := openDatabase(configPath)
	if uerr != nil {
		errors.FatalError(uerr, *jsonOutput)
	}
	defer db.Close()

	if *jsonOutput {
		result := ListResult{BuildDir: cfg.BuildDir, Files: make([]string, 0, db.Len())}
		for file := range db.Files() {
			result.Files = append(result.Files, file)
		}
		if err := output.JSON(result); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	for file := range db.Files() {
		fmt.Println(file)
	}
}
