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
	"context"
	"fmt"
	"log/slog"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/kraklabs/clangdb/pkg/compdb"
)

// OutlineParser extracts namespaces, classes, structs, enums and
// function definitions from C/C++ sources with Tree-sitter and records
// them in an Index.
//
// It is the reference driver payload for compdb.ParseFiles and
// compdb.ParseDatabase. The compile configuration steers preprocessing
// only; the outline itself is syntactic and does not expand macros.
type OutlineParser struct {
	ts      *sitter.Parser
	index   *Index
	preproc *Preprocessor
	logger  *slog.Logger

	filesParsed  int
	syntaxErrors int
}

var _ compdb.FileParser[*compdb.ClangConfig] = (*OutlineParser)(nil)

// NewOutlineParser creates a parser collecting into index. A nil index
// allocates a fresh one; a nil logger discards logs.
func NewOutlineParser(index *Index, logger *slog.Logger) *OutlineParser {
	if index == nil {
		index = NewIndex()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ts := sitter.NewParser()
	ts.SetLanguage(cpp.GetLanguage())
	return &OutlineParser{
		ts:      ts,
		index:   index,
		preproc: NewPreprocessor(logger),
		logger:  logger,
	}
}

// Index returns the entity index the parser collects into.
func (p *OutlineParser) Index() *Index { return p.index }

// FilesParsed reports how many files were parsed so far.
func (p *OutlineParser) FilesParsed() int { return p.filesParsed }

// SyntaxErrors reports how many files contained syntax errors.
func (p *OutlineParser) SyntaxErrors() int { return p.syntaxErrors }

// ParseFile parses a single source file under the given configuration
// and records its outline. Syntax errors are logged, not fatal: partial
// outlines from broken files are still useful.
func (p *OutlineParser) ParseFile(ctx context.Context, path string, config *compdb.ClangConfig) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading source %s: %w", path, err)
	}

	if config.WritePreprocessed() {
		out, err := p.preproc.WriteFile(ctx, path, config)
		if err != nil {
			p.logger.Warn("parser.preprocess.failed", "file", path, "error", err)
		} else {
			p.logger.Debug("parser.preprocess.written", "file", path, "output", out)
		}
	}

	tree, err := p.ts.ParseCtx(ctx, nil, source)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		p.syntaxErrors++
		p.logger.Warn("parser.outline.syntax_errors", "file", path)
	}

	before := p.index.Len()
	p.collect(root, source, path, "", false)
	p.filesParsed++

	p.logger.Debug("parser.outline.done",
		"file", path,
		"entities", p.index.Len()-before,
		"standard", config.Standard().String(),
	)
	return nil
}

// collect walks the syntax tree recording outline entities. scope is
// the enclosing qualified prefix, inClass marks whether the walk is
// inside a class or struct body.
func (p *OutlineParser) collect(node *sitter.Node, source []byte, file, scope string, inClass bool) {
	switch node.Type() {
	case "function_definition":
		name := declaratorName(node.ChildByFieldName("declarator"), source)
		if name == "" {
			return
		}
		kind := "function"
		if inClass {
			kind = "method"
		}
		p.record(kind, name, scope, file, node)
		// Function bodies contribute nothing to the outline.
		return

	case "class_specifier", "struct_specifier":
		nameNode := node.ChildByFieldName("name")
		body := node.ChildByFieldName("body")
		if nameNode == nil || body == nil {
			return
		}
		name := nameNode.Content(source)
		kind := "class"
		if node.Type() == "struct_specifier" {
			kind = "struct"
		}
		p.record(kind, name, scope, file, node)
		p.walkChildren(body, source, file, qualify(scope, name), true)
		return

	case "enum_specifier":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			p.record("enum", nameNode.Content(source), scope, file, node)
		}
		return

	case "namespace_definition":
		inner := scope
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			name := nameNode.Content(source)
			p.record("namespace", name, scope, file, node)
			inner = qualify(scope, name)
		}
		if body := node.ChildByFieldName("body"); body != nil {
			p.walkChildren(body, source, file, inner, false)
		}
		return
	}

	p.walkChildren(node, source, file, scope, inClass)
}

func (p *OutlineParser) walkChildren(node *sitter.Node, source []byte, file, scope string, inClass bool) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		p.collect(node.NamedChild(i), source, file, scope, inClass)
	}
}

func (p *OutlineParser) record(kind, name, scope, file string, node *sitter.Node) {
	p.index.Add(Entity{
		Kind:          kind,
		Name:          name,
		QualifiedName: qualify(scope, name),
		File:          file,
		Line:          node.StartPoint().Row + 1,
	})
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "::" + name
}

// declaratorName digs through declarator wrappers to the bare name of a
// function definition.
func declaratorName(node *sitter.Node, source []byte) string {
	for node != nil {
		switch node.Type() {
		case "function_declarator", "pointer_declarator", "reference_declarator":
			node = node.ChildByFieldName("declarator")
		case "parenthesized_declarator":
			node = node.NamedChild(0)
		case "identifier", "field_identifier", "qualified_identifier",
			"destructor_name", "operator_name", "operator_cast":
			return node.Content(source)
		default:
			return ""
		}
	}
	return ""
}
