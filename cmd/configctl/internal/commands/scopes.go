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

	"github.com/spf13/cobra"

	"github.com/kube-zen/zen-config/pkg/registry"
)

// NewScopesCommand builds a ProviderRegistry the way a long-running host
// process would, binds the CLI's Configuration into it under the scope
// key "cli", and reports
// what is bound. Run against a real process's registry, the same command
// would report every live tenant/request scope that process has open;
// this CLI only ever sees the scope it creates for itself.
func NewScopesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "Show the scope bindings a ProviderRegistry currently holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := OptionsFromContext(cmd.Context())

			pr := registry.New(nil, nil)
			defer pr.Close()

			cfg, err := BuildConfiguration(opts)
			if err != nil {
				return err
			}
			if err := pr.Register(cfg, "cli"); err != nil {
				return err
			}

			sources, err := cfg.GetSources()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cli\t%d sources\n", len(sources))
			return nil
		},
	}
}
