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

package parser

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/kraklabs/clangdb/pkg/compdb"
)

// Preprocessor runs the configuration's clang binary in -E mode.
// Preprocessing is delegated entirely to clang; this type only builds
// the invocation and captures its output.
type Preprocessor struct {
	logger *slog.Logger
}

// NewPreprocessor creates a preprocessor. A nil logger discards logs.
func NewPreprocessor(logger *slog.Logger) *Preprocessor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Preprocessor{logger: logger}
}

// CommandFor returns the clang argv used to preprocess path under cfg,
// binary first.
//
// RemoveCommentsInMacro selects -C over -CC: both keep comments in the
// output, -CC additionally keeps them inside macro expansions.
// FastPreprocessing adds -dM, reducing the output to the macro dump.
func (pp *Preprocessor) CommandFor(path string, cfg *compdb.ClangConfig) []string {
	argv := []string{cfg.ClangBinary(), "-E"}
	if cfg.RemoveCommentsInMacro() {
		argv = append(argv, "-C")
	} else {
		argv = append(argv, "-CC")
	}
	if cfg.FastPreprocessing() {
		argv = append(argv, "-dM")
	}
	argv = append(argv, cfg.CommandLine()...)
	return append(argv, path)
}

// Run preprocesses path and returns clang's stdout.
func (pp *Preprocessor) Run(ctx context.Context, path string, cfg *compdb.ClangConfig) ([]byte, error) {
	argv := pp.CommandFor(path, cfg)
	pp.logger.Debug("parser.preprocess.exec", "argv", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s -E failed for %s: %w: %s",
			cfg.ClangBinary(), path, err, firstLine(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// WriteFile preprocesses path and writes the result next to it with a
// .pp suffix. It returns the output path.
func (pp *Preprocessor) WriteFile(ctx context.Context, path string, cfg *compdb.ClangConfig) (string, error) {
	data, err := pp.Run(ctx, path, cfg)
	if err != nil {
		return "", err
	}

	out := path + ".pp"
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("writing preprocessed output: %w", err)
	}
	return out, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
