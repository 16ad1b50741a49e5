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

// Package parser provides reference single-file parsers for the compdb
// drivers.
//
// OutlineParser extracts a structural outline (namespaces, classes,
// functions, enums) from C/C++ sources using Tree-sitter and collects
// the results in an Index that deduplicates entities across files.
// Preprocessor shells out to the configuration's clang binary for
// preprocessing; it does not reimplement the preprocessor.
//
// Both satisfy the needs of the clangdb CLI; heavier tools supply their
// own compdb.FileParser implementation instead.
package parser
