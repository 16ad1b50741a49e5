// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package compdb resolves per-file compilation options from a compilation
// database and drives batch parsing across many files.
//
// A compilation database is a compile_commands.json file as produced by
// CMake (CMAKE_EXPORT_COMPILE_COMMANDS), Bear, or similar tools. It maps
// each translation unit to the exact command used to compile it. Tools
// that build a structural view of a C/C++ codebase need each file parsed
// with the flags the build actually used; this package answers "which
// flags apply to file X" and feeds the answer to a parser, once per file.
//
// # Components
//
//   - Database: an exclusively-owning handle over a loaded command store.
//     Load it from a build directory, query it with HasConfig, enumerate
//     it with Files, and release it with Close.
//   - ClangConfig: the resolved set of flags, include directories, macro
//     definitions, language standard, and preprocessing toggles for one
//     file. Always layered on top of tool defaults.
//   - FindConfigFor: maps a requested file name to a ClangConfig, falling
//     back over sibling source/header extensions when the file itself has
//     no entry (headers never appear in a compilation database).
//   - ParseFiles / ParseDatabase: sequential drivers that obtain one
//     configuration per file and invoke a caller-supplied FileParser
//     exactly once per file.
//
// # Quick Start
//
// Parse every file a build directory knows about:
//
//	db, err := compdb.Load("build")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := compdb.ParseDatabase(ctx, myParser, db); err != nil {
//	    return err
//	}
//
// Or resolve a single header through extension fallback:
//
//	cfg, ok := compdb.FindConfigFor(db, "src/widget.h")
//	if ok {
//	    fmt.Println(cfg.CommandLine())
//	}
//
// # Error Model
//
// Load failures are fatal and reported as *LoadError. A resolution miss
// is not an error: FindConfigFor returns ok=false and the caller decides
// severity. ParseFiles promotes a miss to *UnresolvedConfigError because
// a caller naming exact files is assumed to know they must resolve.
// Errors returned by the FileParser pass through the drivers untouched.
package compdb
