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

	"github.com/kube-zen/zen-config/pkg/config"
)

// NewGetCommand resolves a single property name against the built
// Configuration and prints its raw string value.
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Resolve a property name and print its raw value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := OptionsFromContext(cmd.Context())

			cfg, err := BuildConfiguration(opts)
			if err != nil {
				return err
			}
			defer cfg.Close()

			v, err := config.GetValue[string](cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}
