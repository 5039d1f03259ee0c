/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for stratum.
package list

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"bennypowers.dev/stratum/cmd/project"
	"bennypowers.dev/stratum/cmd/render"
	"bennypowers.dev/stratum/parser/common"
	"bennypowers.dev/stratum/query"
	"bennypowers.dev/stratum/token"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List tokens from the project's layers",
	Long: `List tokens with optional filtering by layer, mode, path prefix and type.

Values are resolved unless --raw is given. Use "-" as a mode to select
mode-less tokens.`,
	Example: `  stratum list --layer semantic --mode dark
  stratum list --prefix Color.Brand --format json
  stratum list --type color --stats`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringSlice("layer", nil, "Filter by layer (repeatable)")
	Cmd.Flags().StringSlice("mode", nil, "Filter by mode (repeatable, - for mode-less)")
	Cmd.Flags().String("prefix", "", "Filter by path prefix")
	Cmd.Flags().StringSlice("type", nil, "Filter by token type (repeatable)")
	Cmd.Flags().Bool("raw", false, "Show references instead of resolved values")
	Cmd.Flags().Bool("stats", false, "Print a summary after the tokens")
	Cmd.Flags().StringP("format", "f", "table", "Output format: table, markdown, names, json")
}

func run(cmd *cobra.Command, args []string) error {
	proj, err := project.Load(cmd.Context())
	if err != nil {
		return err
	}

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	filter.PreferredMode = proj.Config.Preferred()

	format, _ := cmd.Flags().GetString("format")
	stats, _ := cmd.Flags().GetBool("stats")
	return output(cmd.OutOrStdout(), query.Run(proj.Result.Tokens, filter), format, stats)
}

func filterFromFlags(cmd *cobra.Command) (query.Filter, error) {
	layers, _ := cmd.Flags().GetStringSlice("layer")
	modes, _ := cmd.Flags().GetStringSlice("mode")
	types, _ := cmd.Flags().GetStringSlice("type")
	prefix, _ := cmd.Flags().GetString("prefix")
	raw, _ := cmd.Flags().GetBool("raw")

	f := query.Filter{Prefix: prefix, Resolve: !raw}
	for _, s := range layers {
		l, err := token.ParseLayer(s)
		if err != nil {
			return query.Filter{}, err
		}
		f.Layers = append(f.Layers, l)
	}
	for _, s := range modes {
		if s == "-" {
			f.Modes = append(f.Modes, "")
			continue
		}
		f.Modes = append(f.Modes, token.ParseMode(s))
	}
	for _, s := range types {
		t, ok := common.NormalizeType(s)
		if !ok {
			return query.Filter{}, fmt.Errorf("unknown token type %q", s)
		}
		f.Types = append(f.Types, t)
	}
	return f, nil
}

func output(w io.Writer, result query.Result, format string, stats bool) error {
	rows := render.ComputeRows(result.Tokens)

	var err error
	switch format {
	case "json":
		var data []byte
		data, err = json.MarshalIndent(result, "", "  ")
		if err == nil {
			_, err = fmt.Fprintln(w, string(data))
		}
		// stats are part of the JSON document
		return err
	case "markdown":
		err = render.Markdown(w, rows)
	case "names":
		err = render.Names(w, rows)
	case "table":
		err = render.Table(w, rows, render.Options{Color: render.IsTerminal(os.Stdout)})
	default:
		return fmt.Errorf("unknown format %q (valid: table, markdown, names, json)", format)
	}
	if err != nil || !stats {
		return err
	}
	fmt.Fprintln(w)
	return render.Stats(w, result.Stats)
}
