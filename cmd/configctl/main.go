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

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kube-zen/zen-config/cmd/configctl/internal/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "configctl",
		Short: "Inspect a zen-config Configuration from the command line",
		Long: `configctl builds a Configuration the same way a host process would and
lets you resolve properties, inspect the resolved source chain, and see
what a ProviderRegistry currently has bound, without writing Go.`,
	}

	var propertiesFile string
	rootCmd.PersistentFlags().StringVar(&propertiesFile, "properties", "", "Path to a .properties file to add as a source")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cmd.SetContext(commands.WithOptions(cmd.Context(), commands.Options{
			PropertiesFile: propertiesFile,
		}))
	}

	rootCmd.AddCommand(commands.NewGetCommand())
	rootCmd.AddCommand(commands.NewSourcesCommand())
	rootCmd.AddCommand(commands.NewScopesCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
