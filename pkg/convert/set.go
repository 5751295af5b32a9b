// Copyright 2026 The Zen Config Authors
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

package convert

// Set is the Go realization of the hash-set collection shape: a target
// type of map[E]struct{} derives a converter that splits the raw value
// and inserts each element as a key, discarding duplicates. Any
// map[E]struct{} target type derives this way, not just Set[E] itself;
// the named type exists for callers who want a self-documenting
// declaration.
type Set[E comparable] map[E]struct{}
