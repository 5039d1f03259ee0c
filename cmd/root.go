/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for stratum.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/stratum/cmd/convert"
	"bennypowers.dev/stratum/cmd/deps"
	"bennypowers.dev/stratum/cmd/list"
	"bennypowers.dev/stratum/cmd/mcp"
	"bennypowers.dev/stratum/cmd/resolve"
	"bennypowers.dev/stratum/cmd/theme"
	"bennypowers.dev/stratum/cmd/validate"
	"bennypowers.dev/stratum/cmd/version"
	"bennypowers.dev/stratum/internal/logger"
	"bennypowers.dev/stratum/load"
	"bennypowers.dev/stratum/specifier"
)

var rootCmd = &cobra.Command{
	Use:   "stratum",
	Short: "Parse, resolve and export layered design tokens",
	Long: `stratum loads design tokens from five ordered layers (primitives, typography,
semantic, components, greenshift), resolves references between them, checks
that references flow toward lower layers, and exports the result as CSS, JSON,
Figma variables or a WordPress theme.json.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(viper.GetBool("verbose"))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initEnv)

	pf := rootCmd.PersistentFlags()
	pf.StringP("root", "r", ".", "Project directory holding .config/design-tokens.yaml")
	pf.BoolP("verbose", "v", false, "Show debug output")
	pf.Bool("network", false, "Fetch https sources and fall back to a CDN for missing npm: packages")
	pf.String("cdn", "", "CDN for npm: fallback: "+strings.Join(specifier.ValidCDNs(), ", "))
	pf.Duration("timeout", load.DefaultTimeout, "Network fetch timeout")
	_ = viper.BindPFlags(pf)

	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(deps.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(convert.Cmd)
	rootCmd.AddCommand(theme.Cmd)
	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

// initEnv lets STRATUM_* environment variables stand in for flags,
// e.g. STRATUM_ROOT or STRATUM_CONVERT_HEADER.
func initEnv() {
	viper.SetEnvPrefix("stratum")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}
