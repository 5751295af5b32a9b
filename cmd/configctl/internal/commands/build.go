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

package commands

import (
	"fmt"
	"os"

	"github.com/kube-zen/zen-config/pkg/config"
	"github.com/kube-zen/zen-config/pkg/confsource"
)

// BuildConfiguration assembles the Configuration every subcommand
// operates on: the default source chain (process properties, the process
// environment, any well-known-path property file), plus an explicit
// .properties file if opts names one.
func BuildConfiguration(opts Options) (*config.Configuration, error) {
	builder := config.NewBuilder(nil, nil).AddDefaultSources()

	if opts.PropertiesFile != "" {
		f, err := os.Open(opts.PropertiesFile)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", opts.PropertiesFile, err)
		}
		defer f.Close()

		src, err := confsource.LoadPropertiesSource(opts.PropertiesFile, f)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", opts.PropertiesFile, err)
		}
		builder = builder.WithSource(src)
	}

	return builder.Build()
}
