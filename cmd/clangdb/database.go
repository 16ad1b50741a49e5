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
	"path/filepath"

	"github.com/kraklabs/clangdb/internal/errors"
	"github.com/kraklabs/clangdb/pkg/compdb"
)

// openDatabase loads the project configuration and its compilation
// database. Failures come back as UserError with the matching exit code.
func openDatabase(configPath string) (*Config, *compdb.Database, *errors.UserError) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, nil, errors.NewConfigError(
			"Cannot load project configuration",
			err.Error(),
			"Run 'clangdb init' to create a new configuration",
			err,
		)
	}

	db, err := compdb.Load(cfg.BuildDir)
	if err != nil {
		return nil, nil, errors.NewDatabaseError(
			"Cannot load the compilation database",
			err.Error(),
			"Configure the build with -DCMAKE_EXPORT_COMPILE_COMMANDS=ON (or run bear)",
			err,
		)
	}
	return cfg, db, nil
}

// databasePath returns the compile_commands.json path for a build dir.
func databasePath(buildDir string) string {
	return filepath.Join(buildDir, compdb.DatabaseFileName)
}
