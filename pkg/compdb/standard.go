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

import "fmt"

// Standard selects the C++ language standard a file is parsed with.
type Standard int

const (
	// StandardDefault leaves the standard selection to the compiler.
	StandardDefault Standard = iota

	// Cpp98 is ISO C++ 1998 (with amendments).
	Cpp98

	// Cpp03 is ISO C++ 2003.
	Cpp03

	// Cpp11 is ISO C++ 2011.
	Cpp11

	// Cpp14 is ISO C++ 2014.
	Cpp14

	// Cpp17 is ISO C++ 2017.
	Cpp17

	// Cpp20 is ISO C++ 2020.
	Cpp20

	// Cpp23 is ISO C++ 2023.
	Cpp23
)

// CompileFlag is a set of compiler behavior toggles that combine with
// the language standard.
type CompileFlag uint8

const (
	// FlagGnuExtensions enables GNU language extensions, turning
	// -std=c++XX into -std=gnu++XX.
	FlagGnuExtensions CompileFlag = 1 << iota

	// FlagMSExtensions enables Microsoft language extensions
	// (-fms-extensions).
	FlagMSExtensions

	// FlagMSCompatibility enables full Microsoft compatibility mode
	// (-fms-compatibility).
	FlagMSCompatibility
)

// standardNames maps each Standard to its -std= spelling, ISO dialect.
var standardNames = map[Standard]string{
	Cpp98: "c++98",
	Cpp03: "c++03",
	Cpp11: "c++11",
	Cpp14: "c++14",
	Cpp17: "c++17",
	Cpp20: "c++20",
	Cpp23: "c++23",
}

// String returns the ISO spelling of the standard ("c++17"), or "default".
func (s Standard) String() string {
	if name, ok := standardNames[s]; ok {
		return name
	}
	return "default"
}

// flagValue returns the -std= argument for the standard, honoring GNU
// extensions. Empty for StandardDefault.
func (s Standard) flagValue(flags CompileFlag) string {
	name, ok := standardNames[s]
	if !ok {
		return ""
	}
	if flags&FlagGnuExtensions != 0 {
		name = "gnu" + name[1:] // c++17 -> gnu++17
	}
	return "-std=" + name
}

// ParseStandard parses a -std= value ("c++17", "gnu++14") into a
// Standard and the GNU-extensions flag. Unknown dialects are an error.
func ParseStandard(name string) (Standard, CompileFlag, error) {
	var flags CompileFlag
	if len(name) > 3 && name[:3] == "gnu" {
		flags |= FlagGnuExtensions
		name = "c" + name[3:] // gnu++17 -> c++17
	}
	for std, spelling := range standardNames {
		if spelling == name {
			return std, flags, nil
		}
	}
	// Pre-C++11 drafts show up as c++0x etc. in older build systems.
	switch name {
	case "c++0x":
		return Cpp11, flags, nil
	case "c++1y":
		return Cpp14, flags, nil
	case "c++1z":
		return Cpp17, flags, nil
	case "c++2a":
		return Cpp20, flags, nil
	case "c++2b":
		return Cpp23, flags, nil
	}
	return StandardDefault, 0, fmt.Errorf("unknown language standard %q", name)
}
