/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package theme provides the theme command for stratum.
package theme

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"bennypowers.dev/stratum/cmd/project"
	themelib "bennypowers.dev/stratum/theme"
	"bennypowers.dev/stratum/token"
)

// Cmd is the theme cobra command.
var Cmd = &cobra.Command{
	Use:   "theme [mode]",
	Short: "Print the computed variables of a mode",
	Long: `Resolve the project for one mode and print every CSS variable with its value.

--diff compares against another mode. --against compares against a rule block
of a CSS file, e.g. a stylesheet generated earlier.`,
	Example: `  stratum theme dark
  stratum theme light --diff dark
  stratum theme --against dist/tokens.css --selector :root`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("diff", "", "Compare against the snapshot of another mode")
	Cmd.Flags().String("against", "", "Compare against a CSS file")
	Cmd.Flags().String("selector", ":root", "Rule block of --against to compare with")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

func run(cmd *cobra.Command, args []string) error {
	diffMode, _ := cmd.Flags().GetString("diff")
	against, _ := cmd.Flags().GetString("against")
	selector, _ := cmd.Flags().GetString("selector")
	format, _ := cmd.Flags().GetString("format")

	proj, err := project.Load(cmd.Context())
	if err != nil {
		return err
	}

	mode := proj.Config.Preferred()
	if len(args) == 1 {
		mode = token.ParseMode(args[0])
	}
	snap := themelib.Build(proj.Result.Tokens, mode)
	w := cmd.OutOrStdout()

	switch {
	case diffMode != "":
		other := themelib.Build(proj.Result.Tokens, token.ParseMode(diffMode))
		return outputDelta(w, themelib.Diff(snap, other), format)
	case against != "":
		src, err := os.ReadFile(against)
		if err != nil {
			return err
		}
		blocks, err := themelib.FromCSS(src)
		if err != nil {
			return fmt.Errorf("%s: %w", against, err)
		}
		block, ok := blocks[selector]
		if !ok {
			return fmt.Errorf("%s: no rule block %q", against, selector)
		}
		return outputDelta(w, themelib.Diff(block, snap), format)
	default:
		return outputSnapshot(w, snap, format)
	}
}

func outputSnapshot(w io.Writer, snap themelib.Snapshot, format string) error {
	switch format {
	case "json":
		return writeJSON(w, snap)
	case "text":
		for _, name := range snap.Names() {
			if _, err := fmt.Fprintf(w, "%s: %s\n", name, snap.Values[name]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (valid: text, json)", format)
	}
}

func outputDelta(w io.Writer, d themelib.Delta, format string) error {
	switch format {
	case "json":
		return writeJSON(w, d)
	case "text":
	default:
		return fmt.Errorf("unknown format %q (valid: text, json)", format)
	}

	if d.Empty() {
		_, err := fmt.Fprintln(w, "no differences")
		return err
	}
	for _, c := range d.Removed {
		if _, err := fmt.Fprintf(w, "- %s: %s\n", c.Variable, c.Before); err != nil {
			return err
		}
	}
	for _, c := range d.Added {
		if _, err := fmt.Fprintf(w, "+ %s: %s\n", c.Variable, c.After); err != nil {
			return err
		}
	}
	for _, c := range d.Changed {
		if _, err := fmt.Fprintf(w, "~ %s: %s → %s\n", c.Variable, c.Before, c.After); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
