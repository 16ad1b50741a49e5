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
	"path/filepath"
	"strconv"
	"strings"
)

// Configurer is the mutation capability a configuration backend exposes.
// The resolver and the parse drivers only depend on ClangConfig, but the
// interface lets other backends (fixed flag lists, other compilers) be
// configured through the same operations.
type Configurer interface {
	// ApplyStandardAndFlags selects the language standard and the
	// compiler behavior flags.
	ApplyStandardAndFlags(std Standard, flags CompileFlag)

	// AddIncludeDir appends a directory to the include search path.
	AddIncludeDir(path string)

	// AddMacroDefinition defines a macro, replacing any earlier
	// definition of the same name. An empty definition defines the macro
	// without a value.
	AddMacroDefinition(name, definition string)

	// RemoveMacroDefinition undefines a macro, dropping any earlier
	// definition of the same name.
	RemoveMacroDefinition(name string)

	// Name identifies the backend ("clang").
	Name() string
}

// Macro is one macro definition carried by a configuration.
type Macro struct {
	Name       string
	Definition string
}

// ClangConfig is the resolved compilation configuration for one file:
// everything needed to preprocess and analyze it with clang.
//
// Construct it with NewConfig (defaults only) or NewConfigFromDatabase
// (defaults plus one database entry). A ClangConfig is a value: Clone
// gives an independent copy, and copies are safe to hand to concurrent
// workers.
type ClangConfig struct {
	standard     Standard
	compileFlags CompileFlag
	flags        []string
	includeDirs  []string
	defines      []Macro
	undefines    []string

	clangBinary  string
	clangVersion int

	writePreprocessed     bool
	fastPreprocessing     bool
	removeCommentsInMacro bool
}

var _ Configurer = (*ClangConfig)(nil)

// NewConfig creates the default configuration: the build-time clang
// binary and version, plus the tool identification macros __clangdb__,
// __clangdb_major__ and __clangdb_minor__.
//
// Every configuration built from a database entry starts from these
// defaults; database flags are layered on top, never replace them.
func NewConfig() *ClangConfig {
	c := &ClangConfig{
		clangBinary:  DefaultClangBinary,
		clangVersion: parsePackedVersion(DefaultClangVersion),
	}
	c.AddMacroDefinition("__clangdb__", `"clang"`)
	c.AddMacroDefinition("__clangdb_major__", strconv.Itoa(VersionMajor))
	c.AddMacroDefinition("__clangdb_minor__", strconv.Itoa(VersionMinor))
	return c
}

// NewConfigFromDatabase creates the configuration stored in the database
// for the given file, layered on top of the defaults.
//
// The file does not have to be the one that will be parsed, but it
// should: headers are not listed in a compilation database, so to parse
// one, pass the corresponding source file (or use FindConfigFor). Only
// options that could also be set through the Configurer operations are
// taken from the entry; relative include directories are resolved
// against the entry's working directory.
func NewConfigFromDatabase(db *Database, file string) (*ClangConfig, error) {
	cmd, ok := db.lookup(file)
	if !ok {
		return nil, &UnresolvedConfigError{File: file}
	}
	c := NewConfig()
	c.applyCommand(cmd)
	return c, nil
}

// Clone returns an independent copy of the configuration.
func (c *ClangConfig) Clone() *ClangConfig {
	dup := *c
	dup.flags = append([]string(nil), c.flags...)
	dup.includeDirs = append([]string(nil), c.includeDirs...)
	dup.defines = append([]Macro(nil), c.defines...)
	dup.undefines = append([]string(nil), c.undefines...)
	return &dup
}

// ApplyStandardAndFlags implements Configurer.
func (c *ClangConfig) ApplyStandardAndFlags(std Standard, flags CompileFlag) {
	c.standard = std
	c.compileFlags = flags
}

// SetStandard selects the language standard, keeping the current
// compiler behavior flags.
func (c *ClangConfig) SetStandard(std Standard) {
	c.standard = std
}

// AddFlag appends a raw compiler flag (passthrough, e.g. -fno-rtti).
func (c *ClangConfig) AddFlag(flag string) {
	c.flags = append(c.flags, flag)
}

// AddIncludeDir implements Configurer.
func (c *ClangConfig) AddIncludeDir(path string) {
	c.includeDirs = append(c.includeDirs, path)
}

// AddMacroDefinition implements Configurer.
func (c *ClangConfig) AddMacroDefinition(name, definition string) {
	for i := range c.defines {
		if c.defines[i].Name == name {
			c.defines[i].Definition = definition
			return
		}
	}
	c.defines = append(c.defines, Macro{Name: name, Definition: definition})
}

// RemoveMacroDefinition implements Configurer.
func (c *ClangConfig) RemoveMacroDefinition(name string) {
	for i := range c.defines {
		if c.defines[i].Name == name {
			c.defines = append(c.defines[:i], c.defines[i+1:]...)
			break
		}
	}
	for _, u := range c.undefines {
		if u == name {
			return
		}
	}
	c.undefines = append(c.undefines, name)
}

// Name implements Configurer.
func (c *ClangConfig) Name() string {
	return "clang"
}

// SetClangBinary sets the clang binary used for preprocessing and its
// version.
func (c *ClangConfig) SetClangBinary(binary string, major, minor, patch int) {
	c.clangBinary = binary
	c.clangVersion = PackVersion(major, minor, patch)
}

// ClangBinary returns the path of the clang binary.
func (c *ClangConfig) ClangBinary() string {
	return c.clangBinary
}

// ClangVersion returns the packed clang version
// (major*10000 + minor*100 + patch).
func (c *ClangConfig) ClangVersion() int {
	return c.clangVersion
}

// SetWritePreprocessed controls whether the preprocessed file is written
// out next to the source. Default false.
func (c *ClangConfig) SetWritePreprocessed(b bool) {
	c.writePreprocessed = b
}

// WritePreprocessed reports whether preprocessed output is written out.
func (c *ClangConfig) WritePreprocessed() bool {
	return c.writePreprocessed
}

// SetFastPreprocessing controls fast preprocessing. Default false.
//
// Fast preprocessing collects the macros defined in the translation
// unit, then preprocesses without resolving includes, pre-declaring that
// macro list instead. It breaks if the same macro is defined multiple
// times in the file being parsed or if directive order matters, and the
// full path of include directives is no longer available.
func (c *ClangConfig) SetFastPreprocessing(b bool) {
	c.fastPreprocessing = b
}

// FastPreprocessing reports whether fast preprocessing is enabled.
func (c *ClangConfig) FastPreprocessing() bool {
	return c.fastPreprocessing
}

// SetRemoveCommentsInMacro controls whether comments produced by macro
// expansion are stripped (clang -C instead of -CC). Default false.
// Enable it if preprocessing fails on comments inside macros.
func (c *ClangConfig) SetRemoveCommentsInMacro(b bool) {
	c.removeCommentsInMacro = b
}

// RemoveCommentsInMacro reports whether macro-expanded comments are
// stripped.
func (c *ClangConfig) RemoveCommentsInMacro() bool {
	return c.removeCommentsInMacro
}

// Standard returns the selected language standard.
func (c *ClangConfig) Standard() Standard {
	return c.standard
}

// CompileFlags returns the compiler behavior flags.
func (c *ClangConfig) CompileFlags() CompileFlag {
	return c.compileFlags
}

// IncludeDirs returns the include search path, in order.
func (c *ClangConfig) IncludeDirs() []string {
	return append([]string(nil), c.includeDirs...)
}

// Defines returns the macro definitions, in order. Default tool macros
// come first.
func (c *ClangConfig) Defines() []Macro {
	return append([]Macro(nil), c.defines...)
}

// Undefines returns the macro names undefined by the configuration.
func (c *ClangConfig) Undefines() []string {
	return append([]string(nil), c.undefines...)
}

// Flags returns the raw passthrough flags, in order.
func (c *ClangConfig) Flags() []string {
	return append([]string(nil), c.flags...)
}

// CommandLine materializes the clang argument list for the
// configuration: standard, behavior flags, passthrough flags, include
// directories, macro definitions, macro undefines. It does not include
// the binary or the file name.
func (c *ClangConfig) CommandLine() []string {
	var args []string
	if std := c.standard.flagValue(c.compileFlags); std != "" {
		args = append(args, std)
	}
	if c.compileFlags&FlagMSExtensions != 0 {
		args = append(args, "-fms-extensions")
	}
	if c.compileFlags&FlagMSCompatibility != 0 {
		args = append(args, "-fms-compatibility")
	}
	args = append(args, c.flags...)
	for _, dir := range c.includeDirs {
		args = append(args, "-I", dir)
	}
	for _, m := range c.defines {
		if m.Definition == "" {
			args = append(args, "-D"+m.Name)
		} else {
			args = append(args, "-D"+m.Name+"="+m.Definition)
		}
	}
	for _, name := range c.undefines {
		args = append(args, "-U"+name)
	}
	return args
}

// applyCommand layers the recognized options of a database entry on top
// of the configuration.
func (c *ClangConfig) applyCommand(cmd Command) {
	resolve := func(path string) string {
		if filepath.IsAbs(path) || cmd.Directory == "" {
			return path
		}
		return filepath.Join(cmd.Directory, path)
	}

	args := cmd.Arguments
	// Skip the compiler binary.
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		args = args[1:]
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-I" || arg == "-isystem":
			if i+1 < len(args) {
				i++
				c.AddIncludeDir(resolve(args[i]))
			}
		case strings.HasPrefix(arg, "-I"):
			c.AddIncludeDir(resolve(arg[2:]))
		case arg == "-D":
			if i+1 < len(args) {
				i++
				c.defineFromArg(args[i])
			}
		case strings.HasPrefix(arg, "-D"):
			c.defineFromArg(arg[2:])
		case arg == "-U":
			if i+1 < len(args) {
				i++
				c.RemoveMacroDefinition(args[i])
			}
		case strings.HasPrefix(arg, "-U"):
			c.RemoveMacroDefinition(arg[2:])
		case strings.HasPrefix(arg, "-std="):
			if std, flags, err := ParseStandard(arg[len("-std="):]); err == nil {
				c.ApplyStandardAndFlags(std, c.compileFlags|flags)
			}
		case arg == "-fms-extensions":
			c.compileFlags |= FlagMSExtensions
		case arg == "-fms-compatibility":
			c.compileFlags |= FlagMSCompatibility
		case arg == "-o" || arg == "-c":
			if arg == "-o" && i+1 < len(args) {
				i++
			}
		case strings.HasPrefix(arg, "-f") || strings.HasPrefix(arg, "-W"):
			c.AddFlag(arg)
		}
		// Anything else (input file, linker options, dependency output)
		// is not a parse-relevant option and is dropped.
	}
}

// defineFromArg parses a -D argument body ("NAME" or "NAME=VALUE").
func (c *ClangConfig) defineFromArg(arg string) {
	name, value, _ := strings.Cut(arg, "=")
	c.AddMacroDefinition(name, value)
}
