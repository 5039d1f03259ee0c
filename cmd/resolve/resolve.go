/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for stratum.
package resolve

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"bennypowers.dev/stratum/cmd/project"
	"bennypowers.dev/stratum/cmd/render"
	"bennypowers.dev/stratum/graph"
	"bennypowers.dev/stratum/query"
	"bennypowers.dev/stratum/resolver"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Show the reference chain of a token",
	Long: `Follow a token's references hop by hop down to its literal value.

Without --layer the lowest layer holding the path is used; without --mode the
mode-less token, then the preferred mode.`,
	Example: `  stratum resolve Button.Background.Default --layer components
  stratum resolve Color.Surface --mode dark --format json`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("layer", "", "Layer of the token")
	Cmd.Flags().String("mode", "", "Mode of the token")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

func run(cmd *cobra.Command, args []string) error {
	proj, err := project.Load(cmd.Context())
	if err != nil {
		return err
	}

	layer, _ := cmd.Flags().GetString("layer")
	mode, _ := cmd.Flags().GetString("mode")
	format, _ := cmd.Flags().GetString("format")

	preferred := proj.Config.Preferred()
	tok, err := query.Find(proj.Result.Tokens, query.Selector{Path: args[0], Layer: layer, Mode: mode}, preferred)
	if err != nil {
		return err
	}

	chain := resolver.New(proj.Result.Tokens, resolver.WithPreferredMode(preferred)).BuildReferenceChain(tok)
	if err := output(cmd.OutOrStdout(), chain, format); err != nil {
		return err
	}
	if chain.Err != nil {
		return fmt.Errorf("%s: %w", tok.Key(), chain.Err)
	}
	return nil
}

func output(w io.Writer, chain resolver.Chain, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(graph.ChainTree(chain), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text":
		return render.Chain(w, chain, render.Options{Color: render.IsTerminal(os.Stdout)})
	default:
		return fmt.Errorf("unknown format %q (valid: text, json)", format)
	}
}

