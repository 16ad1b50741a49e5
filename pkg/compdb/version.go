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

package compdb

import (
	"strconv"
	"strings"
)

// Tool version, injected into every default configuration as
// identification macros (__clangdb_major__, __clangdb_minor__).
const (
	VersionMajor = 0
	VersionMinor = 4
	VersionPatch = 0
)

// Build-time defaults for the clang binary used for preprocessing.
// Override via ldflags:
//
//	-X github.com/kraklabs/clangdb/pkg/compdb.DefaultClangBinary=/usr/bin/clang++-18
//	-X github.com/kraklabs/clangdb/pkg/compdb.DefaultClangVersion=18.1.8
var (
	DefaultClangBinary  = "clang++"
	DefaultClangVersion = "15.0.0"
)

// PackVersion packs a version triple into the single integer form used
// by ClangConfig: major*10000 + minor*100 + patch.
func PackVersion(major, minor, patch int) int {
	return major*10000 + minor*100 + patch
}

// parsePackedVersion parses "major.minor.patch" into packed form.
// Missing components count as zero; garbage counts as zero.
func parsePackedVersion(version string) int {
	parts := strings.SplitN(strings.TrimSpace(version), ".", 3)
	nums := [3]int{}
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			break
		}
		nums[i] = n
	}
	return PackVersion(nums[0], nums[1], nums[2])
}
