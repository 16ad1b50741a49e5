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
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/clangdb/internal/errors"
	"github.com/kraklabs/clangdb/internal/output"
	"github.com/kraklabs/clangdb/internal/ui"
	"github.com/kraklabs/clangdb/pkg/compdb"
	"github.com/kraklabs/clangdb/pkg/parser"
)

// ParseResult represents the parse summary for JSON output.
type ParseResult struct {
	BuildDir     string          `json:"build_dir"`
	FilesParsed  int             `json:"files_parsed"`
	SyntaxErrors int             `json:"syntax_errors"`
	EntityCount  int             `json:"entity_count"`
	ByKind       map[string]int  `json:"by_kind"`
	Entities     []parser.Entity `json:"entities,omitempty"`
	Duration     string          `json:"duration"`
	Timestamp    time.Time       `json:"timestamp"`
}

// runParse executes the 'parse' CLI command, parsing source files with
// their resolved compile configurations.
//
// With no arguments every file in the compilation database is parsed.
// With an explicit file list, each file's configuration is resolved
// through the extension fallback, so headers can be passed directly.
// Parsing stops at the first failure.
//
// Flags:
//   - --json: Output summary as JSON (default: false)
//   - --entities: Include the full entity list in JSON output
//   - --debug: Enable debug logging (default: false)
//   - -q, --quiet: Suppress the progress bar
//   - --no-color: Disable colored output
//   - --preprocess: Write preprocessed files (.pp) next to the sources
//   - --metrics-addr: HTTP address for Prometheus metrics (default: disabled)
//
// Examples:
//
//	clangdb parse                       Parse the whole database
//	clangdb parse src/a.cpp src/b.h     Parse an explicit list
//	clangdb parse --json --entities     Machine-readable outline
//	clangdb parse --metrics-addr :9091  Expose parse metrics
func runParse(args []string, configPath string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output summary as JSON")
	withEntities := fs.Bool("entities", false, "Include the entity list in JSON output")
	debug := fs.Bool("debug", false, "Enable debug logging")
	quiet := fs.BoolP("quiet", "q", false, "Suppress the progress bar")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	preprocess := fs.Bool("preprocess", false, "Write preprocessed files next to the sources")
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: clangdb parse [options] [files...]

Parses source files with the configurations resolved from the
compilation database. Without arguments the whole database is parsed;
with arguments only the listed files are, headers included.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  clangdb parse
  clangdb parse src/widget.h
  clangdb parse --json --entities
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ui.InitColors(*noColor)

	// Start Prometheus metrics endpoint (optional)
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			srv := &http.Server{Addr: *metricsAddr, Handler: mux}
			logger.Info("metrics.http.start", "addr", *metricsAddr, "path", "/metrics")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics.http.error", "err", err)
			}
		}()
	}

	cfg, db, uerr := openDatabase(configPath)
	if uerr != nil {
		errors.FatalError(uerr, *jsonOutput)
	}
	defer db.Close()

	files := fs.Args()
	if len(files) == 0 {
		files = make([]string, 0, db.Len())
		for file := range db.Files() {
			files = append(files, file)
		}
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("shutdown.signal", "signal", sig.String())
		cancel()
	}()

	globals := GlobalFlags{Quiet: *quiet || *jsonOutput, NoColor: *noColor}
	bar := NewProgressBar(NewProgressConfig(globals), int64(len(files)), "parsing")

	outline := parser.NewOutlineParser(nil, logger)
	driver := &progressParser{inner: outline, bar: bar}

	start := time.Now()
	err := compdb.ParseFilesWith(ctx, compdb.FileParser[*compdb.ClangConfig](driver), files,
		func(file string) (*compdb.ClangConfig, error) {
			resolved, ok := compdb.FindConfigFor(db, file)
			if !ok {
				return nil, &compdb.UnresolvedConfigError{File: file}
			}
			if err := cfg.ApplyTo(resolved); err != nil {
				return nil, err
			}
			if *preprocess {
				resolved.SetWritePreprocessed(true)
			}
			return resolved, nil
		})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		fatalParseError(err, *jsonOutput)
	}

	result := ParseResult{
		BuildDir:     cfg.BuildDir,
		FilesParsed:  outline.FilesParsed(),
		SyntaxErrors: outline.SyntaxErrors(),
		EntityCount:  outline.Index().Len(),
		ByKind:       outline.Index().CountByKind(),
		Duration:     time.Since(start).Round(time.Millisecond).String(),
		Timestamp:    time.Now(),
	}
	if *withEntities {
		result.Entities = outline.Index().Entities()
	}

	if *jsonOutput {
		if err := output.JSON(result); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	ui.Successf("Parsed %d files in %s", result.FilesParsed, result.Duration)
	if result.SyntaxErrors > 0 {
		ui.Warningf("%d files contained syntax errors", result.SyntaxErrors)
	}
	ui.SubHeader("Entities:")
	for _, kind := range []string{"namespace", "class", "struct", "enum", "function", "method"} {
		if n := result.ByKind[kind]; n > 0 {
			fmt.Printf("  %-10s %s\n", kind, ui.CountText(n))
		}
	}
}

// fatalParseError maps parse failures onto the CLI error taxonomy.
func fatalParseError(err error, jsonOutput bool) {
	var unresolved *compdb.UnresolvedConfigError
	if stderrors.As(err, &unresolved) {
		errors.FatalError(errors.NewNotFoundError(
			"No configuration for file",
			fmt.Sprintf("%s has no database entry and no sibling source file", unresolved.File),
			"Check that the file belongs to a compiled target",
		), jsonOutput)
	}
	if stderrors.Is(err, context.Canceled) {
		errors.FatalError(errors.NewInputError(
			"Parse interrupted",
			"The parse was canceled before completing",
			"Run 'clangdb parse' again to restart",
		), jsonOutput)
	}
	errors.FatalError(errors.NewInternalError(
		"Parse failed",
		err.Error(),
		"Re-run with --debug for the failing file",
		err,
	), jsonOutput)
}

// progressParser forwards to the outline parser and advances the
// progress bar after each file.
type progressParser struct {
	inner *parser.OutlineParser
	bar   *progressbar.ProgressBar
}

func (p *progressParser) ParseFile(ctx context.Context, path string, config *compdb.ClangConfig) error {
	err := p.inner.ParseFile(ctx, path, config)
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
	return err
}
