/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package deps provides the deps command for stratum.
package deps

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"bennypowers.dev/stratum/cmd/project"
	"bennypowers.dev/stratum/cmd/render"
	"bennypowers.dev/stratum/graph"
	"bennypowers.dev/stratum/query"
	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/token"
)

// Cmd is the deps cobra command.
var Cmd = &cobra.Command{
	Use:   "deps <path>",
	Short: "Show what a token references and what references it",
	Long: `List the direct dependencies and direct dependents of a token.

With --transitive, also list every token affected by a change to it.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("layer", "", "Layer of the token")
	Cmd.Flags().String("mode", "", "Mode of the token")
	Cmd.Flags().Bool("transitive", false, "Also list every token affected by a change")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

// Report lists the neighbours of one token.
type Report struct {
	Token        token.Key   `json:"token"`
	Dependencies []token.Key `json:"dependencies"`
	Dependents   []token.Key `json:"dependents"`
	Affected     []token.Key `json:"affected,omitempty"`
}

// Build collects the neighbours of tok in g.
func Build(g *graph.Graph, tok token.Token, transitive bool) Report {
	key := tok.Key()
	r := Report{
		Token:        key,
		Dependencies: g.Dependencies(key),
		Dependents:   g.Dependents(key),
	}
	if transitive {
		r.Affected = g.Affected(key)
	}
	return r
}

func run(cmd *cobra.Command, args []string) error {
	proj, err := project.Load(cmd.Context())
	if err != nil {
		return err
	}

	layer, _ := cmd.Flags().GetString("layer")
	mode, _ := cmd.Flags().GetString("mode")
	transitive, _ := cmd.Flags().GetBool("transitive")
	format, _ := cmd.Flags().GetString("format")

	preferred := proj.Config.Preferred()
	tok, err := query.Find(proj.Result.Tokens, query.Selector{Path: args[0], Layer: layer, Mode: mode}, preferred)
	if err != nil {
		return err
	}

	g := graph.Build(proj.Result.Tokens, resolver.WithPreferredMode(preferred))
	return output(cmd.OutOrStdout(), Build(g, tok, transitive), format)
}

func output(w io.Writer, r Report, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text":
		if _, err := fmt.Fprintln(w, r.Token); err != nil {
			return err
		}
		if err := render.Keys(w, "references", r.Dependencies); err != nil {
			return err
		}
		if err := render.Keys(w, "referenced by", r.Dependents); err != nil {
			return err
		}
		if r.Affected != nil {
			return render.Keys(w, "affected", r.Affected)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (valid: text, json)", format)
	}
}
