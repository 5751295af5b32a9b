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

package config

// binder is installed by pkg/registry's init so that ForScope can bind a
// freshly built Configuration into a ProviderRegistry without pkg/config
// importing pkg/registry back (which would cycle, since registry already
// imports config for the Configuration type). The same side-channel
// registration pattern database/sql uses for drivers.
var binder func(cfg *Configuration, scopeKey any) error

// RegisterBinder installs fn as the function ConfigurationBuilder.Build
// calls when ForScope was used. Only pkg/registry should call this.
func RegisterBinder(fn func(cfg *Configuration, scopeKey any) error) {
	binder = fn
}
