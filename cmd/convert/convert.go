/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert provides the convert command for stratum.
package convert

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/stratum/cmd/project"
	"bennypowers.dev/stratum/config"
	convertlib "bennypowers.dev/stratum/convert"
	"bennypowers.dev/stratum/fs"
	"bennypowers.dev/stratum/internal/logger"
	"bennypowers.dev/stratum/load"
)

// Cmd is the convert cobra command.
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Export resolved tokens",
	Long: `Resolve every layer and export the tokens.

Output Formats:
  css        Custom properties, mode variants in their own blocks (default)
  json       Nested JSON tree by layer, mode and path
  flat       Flat JSON map of CSS variable to value
  figma      Figma variable collections, one per layer
  wordpress  WordPress theme.json palette and custom settings

Without --format or --output, every output listed in the config file is
written, relative to the project root.

Examples:
  # Write the outputs from .config/design-tokens.yaml
  stratum convert

  # Dark-preferring theme.json on stdout
  stratum convert --format wordpress --mode dark

  # CSS scoped to a web component
  stratum convert --selector :host -o dist/tokens.css`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	Cmd.Flags().StringP("format", "f", "", "Output format: "+strings.Join(convertlib.ValidFormats(), ", "))
	Cmd.Flags().String("mode", "", "Preferred mode for resolution and single-mode formats")
	Cmd.Flags().String("selector", "", "CSS selector for mode-less tokens")
	Cmd.Flags().String("header", "", "Comment written at the top of formats that allow one")
	Cmd.Flags().Bool("no-wordpress", false, "Do not emit --wp--custom-- variables in CSS")
	_ = viper.BindPFlag("convert.header", Cmd.Flags().Lookup("header"))
}

func run(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	formatFlag, _ := cmd.Flags().GetString("format")
	mode, _ := cmd.Flags().GetString("mode")

	proj, err := project.Load(cmd.Context())
	if err != nil {
		return err
	}

	if formatFlag == "" && output == "" && len(proj.Config.Outputs) > 0 {
		written, err := Generate(fs.NewOSFileSystem(), proj, overrides(cmd))
		for _, path := range written {
			logger.Info("wrote %s", path)
		}
		return err
	}

	format, err := convertlib.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	opts := proj.Config.ConvertOptions(config.Output{Mode: mode})
	overrides(cmd)(&opts)

	data, err := convertlib.FormatTokens(proj.Result.Tokens, format, opts)
	if err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	data = withNewline(data)

	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return writeFile(fs.NewOSFileSystem(), output, data)
}

// overrides applies the flags that refine the config's options.
func overrides(cmd *cobra.Command) func(*convertlib.Options) {
	selector, _ := cmd.Flags().GetString("selector")
	noWP, _ := cmd.Flags().GetBool("no-wordpress")
	header := viper.GetString("convert.header")
	return func(o *convertlib.Options) {
		if selector != "" {
			o.Selector = selector
		}
		if noWP {
			o.WordPress = false
		}
		if header != "" {
			o.Header = header
		}
	}
}

// Generate writes every configured output of a project and returns the
// paths written. A failing output does not stop the others; the failures
// are reported together.
func Generate(filesystem fs.FileSystem, proj *load.Project, apply func(*convertlib.Options)) ([]string, error) {
	var written []string
	var failures []string
	for _, out := range proj.Config.Outputs {
		path := out.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(proj.Root, path)
		}

		format, err := convertlib.ParseFormat(out.Format)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", out.Path, err))
			continue
		}
		opts := proj.Config.ConvertOptions(out)
		if apply != nil {
			apply(&opts)
		}

		data, err := convertlib.FormatTokens(proj.Result.Tokens, format, opts)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", out.Path, err))
			continue
		}
		if err := writeFile(filesystem, path, withNewline(data)); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", out.Path, err))
			continue
		}
		written = append(written, path)
	}
	if len(failures) > 0 {
		return written, fmt.Errorf("%d of %d output(s) failed:\n  %s", len(failures), len(proj.Config.Outputs), strings.Join(failures, "\n  "))
	}
	return written, nil
}

func writeFile(filesystem fs.FileSystem, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := filesystem.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := filesystem.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	return nil
}

// withNewline appends a trailing newline for proper file formatting.
func withNewline(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] != '\n' {
		return append(data, '\n')
	}
	return data
}
