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

import "sync"

// Entity is one structural element extracted from a source file.
type Entity struct {
	// Kind is one of "namespace", "class", "struct", "enum", "function",
	// "method".
	Kind string `json:"kind"`

	// Name is the unqualified name.
	Name string `json:"name"`

	// QualifiedName includes the enclosing namespace/class scopes.
	QualifiedName string `json:"qualified_name"`

	// File is the file the entity was first seen in.
	File string `json:"file"`

	// Line is the 1-based line of the first sighting.
	Line uint32 `json:"line"`

	// Definitions counts how many times the entity was seen across the
	// batch (e.g. a namespace reopened in several files).
	Definitions int `json:"definitions"`
}

// Index collects entities across a parse batch, deduplicating by
// qualified name: the first sighting wins, later sightings only bump
// the definition count.
//
// The compdb drivers are sequential, but an Index is safe for callers
// that partition files across workers with their own config copies.
type Index struct {
	mu       sync.Mutex
	order    []string
	entities map[string]*Entity
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{entities: make(map[string]*Entity)}
}

// Add records a sighting of an entity. It reports whether the entity
// was new to the index.
func (x *Index) Add(e Entity) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if existing, ok := x.entities[e.QualifiedName]; ok {
		existing.Definitions++
		return false
	}

	e.Definitions = 1
	x.entities[e.QualifiedName] = &e
	x.order = append(x.order, e.QualifiedName)
	return true
}

// Len reports the number of distinct entities.
func (x *Index) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.order)
}

// Entities returns the distinct entities in first-seen order.
func (x *Index) Entities() []Entity {
	x.mu.Lock()
	defer x.mu.Unlock()

	out := make([]Entity, 0, len(x.order))
	for _, name := range x.order {
		out = append(out, *x.entities[name])
	}
	return out
}

// CountByKind returns the number of distinct entities per kind.
func (x *Index) CountByKind() map[string]int {
	x.mu.Lock()
	defer x.mu.Unlock()

	counts := make(map[string]int)
	for _, e := range x.entities {
		counts[e.Kind]++
	}
	return counts
}

// Lookup returns the entity with the given qualified name.
func (x *Index) Lookup(qualifiedName string) (Entity, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if e, ok := x.entities[qualifiedName]; ok {
		return *e, true
	}
	return Entity{}, false
}
