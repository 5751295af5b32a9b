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

import (
	"reflect"
	"sync"
)

// typeHandlers is the process-wide extension point for scalar types the
// built-in derivation recipes (string, bool, numeric, URL, duration,
// TextUnmarshaler) don't cover. It stands in for the reflective
// constructor/factory-method lookup a host with class loading would use:
// callers register a parse function once, by target type, and every
// Registry's derivation falls back to it.
var (
	typeHandlersMu sync.RWMutex
	typeHandlers   = map[reflect.Type]func(string) (any, error){}
)

// RegisterTypeHandler installs fn as the derivation recipe for t, usable
// by every Registry in the process. It is the terminal fallback step of
// the scalar-derivation chain, and the only extension point for types
// that implement neither encoding.TextUnmarshaler nor one of the built-in
// shapes.
func RegisterTypeHandler(t reflect.Type, fn func(string) (any, error)) {
	typeHandlersMu.Lock()
	defer typeHandlersMu.Unlock()
	typeHandlers[t] = fn
}

func lookupTypeHandler(t reflect.Type) (func(string) (any, error), bool) {
	typeHandlersMu.RLock()
	defer typeHandlersMu.RUnlock()
	fn, ok := typeHandlers[t]
	return fn, ok
}
