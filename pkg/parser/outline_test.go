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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/clangdb/pkg/compdb"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOutlineParser_ExtractsEntities(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "shapes.cpp", `
namespace geo {

class Circle {
 public:
  double Area() const { return 3.14159 * r_ * r_; }

 private:
  double r_;
};

struct Point {
  int x;
  int y;
};

}  // namespace geo

enum Color { kRed, kGreen, kBlue };

int main() { return 0; }
`)

	p := NewOutlineParser(nil, nil)
	require.NoError(t, p.ParseFile(context.Background(), path, compdb.NewConfig()))

	want := map[string]string{
		"geo":               "namespace",
		"geo::Circle":       "class",
		"geo::Circle::Area": "method",
		"geo::Point":        "struct",
		"Color":             "enum",
		"main":              "function",
	}
	for qualified, kind := range want {
		e, ok := p.Index().Lookup(qualified)
		if assert.Truef(t, ok, "missing entity %s", qualified) {
			assert.Equalf(t, kind, e.Kind, "kind of %s", qualified)
			assert.Equal(t, path, e.File)
			assert.NotZero(t, e.Line)
		}
	}
	assert.Equal(t, 1, p.FilesParsed())
}

func TestOutlineParser_DeduplicatesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeSource(t, dir, "a.cpp", "namespace util {\nint helper() { return 1; }\n}\n")
	second := writeSource(t, dir, "b.cpp", "namespace util {\nint other() { return 2; }\n}\n")

	p := NewOutlineParser(nil, nil)
	cfg := compdb.NewConfig()
	require.NoError(t, p.ParseFile(context.Background(), first, cfg))
	require.NoError(t, p.ParseFile(context.Background(), second, cfg))

	// The reopened namespace is a single entity with two sightings,
	// attributed to the file it was first seen in.
	ns, ok := p.Index().Lookup("util")
	require.True(t, ok)
	assert.Equal(t, 2, ns.Definitions)
	assert.Equal(t, first, ns.File)

	_, ok = p.Index().Lookup("util::helper")
	assert.True(t, ok)
	_, ok = p.Index().Lookup("util::other")
	assert.True(t, ok)
}

func TestOutlineParser_MissingFile(t *testing.T) {
	p := NewOutlineParser(nil, nil)
	err := p.ParseFile(context.Background(), filepath.Join(t.TempDir(), "gone.cpp"), compdb.NewConfig())
	assert.Error(t, err)
}

func TestOutlineParser_SyntaxErrorsAreNotFatal(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "broken.cpp", "int ok() { return 1; }\nclass {{{\n")

	p := NewOutlineParser(nil, nil)
	require.NoError(t, p.ParseFile(context.Background(), path, compdb.NewConfig()))

	assert.Equal(t, 1, p.SyntaxErrors())
	_, ok := p.Index().Lookup("ok")
	assert.True(t, ok, "entities before the syntax error are still extracted")
}

// End to end: a compilation database drives the outline parser over
// every stored file.
func TestOutlineParser_DrivenByDatabase(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.cpp", "int alpha() { return 1; }\n")
	b := writeSource(t, dir, "b.cpp", "int beta() { return 2; }\n")

	entries := []map[string]any{
		{"directory": dir, "file": a, "arguments": []string{"clang++", "-std=c++17", "-c", a}},
		{"directory": dir, "file": b, "arguments": []string{"clang++", "-std=c++17", "-c", b}},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, compdb.DatabaseFileName), data, 0o644))

	db, err := compdb.Load(dir)
	require.NoError(t, err)
	defer db.Close()

	p := NewOutlineParser(nil, nil)
	require.NoError(t, compdb.ParseDatabase(context.Background(), p, db))

	assert.Equal(t, 2, p.FilesParsed())
	_, ok := p.Index().Lookup("alpha")
	assert.True(t, ok)
	_, ok = p.Index().Lookup("beta")
	assert.True(t, ok)
}

func TestIndex_CountByKind(t *testing.T) {
	x := NewIndex()
	assert.True(t, x.Add(Entity{Kind: "function", Name: "f", QualifiedName: "f"}))
	assert.True(t, x.Add(Entity{Kind: "function", Name: "g", QualifiedName: "g"}))
	assert.False(t, x.Add(Entity{Kind: "function", Name: "f", QualifiedName: "f"}))
	assert.True(t, x.Add(Entity{Kind: "enum", Name: "E", QualifiedName: "E"}))

	assert.Equal(t, 3, x.Len())
	assert.Equal(t, map[string]int{"function": 2, "enum": 1}, x.CountByKind())

	names := make([]string, 0, 3)
	for _, e := range x.Entities() {
		names = append(names, e.QualifiedName)
	}
	assert.Equal(t, []string{"f", "g", "E"}, names)
}
