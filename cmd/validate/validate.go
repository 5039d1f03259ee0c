/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for stratum.
package validate

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"bennypowers.dev/stratum/cmd/project"
	"bennypowers.dev/stratum/cmd/render"
	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/validator"
)

// ErrValidationFailed is returned when the report fails the run.
var ErrValidationFailed = errors.New("validation failed")

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Lint the project's design tokens",
	Long: `Load every layer and report malformed leaves, ambiguous literals, CSS name
collisions, unresolved and circular references, references that flow up the
layer stack, components that skip the semantic layer and invalid colors.

Unresolved and circular references are errors; everything else is a warning.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("strict", false, "Fail on warnings")
	Cmd.Flags().Bool("quiet", false, "Only output errors")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func run(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	quiet, _ := cmd.Flags().GetBool("quiet")
	format, _ := cmd.Flags().GetString("format")

	proj, err := project.Load(cmd.Context())
	if err != nil {
		return err
	}

	report := validator.Lint(proj.Result, nil, resolver.WithPreferredMode(proj.Config.Preferred()))
	if err := output(cmd.OutOrStdout(), report, format, quiet, render.IsTerminal(os.Stdout)); err != nil {
		return err
	}
	return verdict(report, strict)
}

// verdict decides whether a report fails the run.
func verdict(report validator.Report, strict bool) error {
	if report.HasErrors() || (strict && report.Warnings() > 0) {
		return fmt.Errorf("%w: %d error(s), %d warning(s)", ErrValidationFailed, report.Errors(), report.Warnings())
	}
	return nil
}

func output(w io.Writer, report validator.Report, format string, quiet, color bool) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text":
	default:
		return fmt.Errorf("unknown format %q (valid: text, json)", format)
	}

	for _, f := range report.Findings {
		if quiet && f.Severity != validator.SeverityError {
			continue
		}
		label := string(f.Severity)
		if color {
			style := warningStyle
			if f.Severity == validator.SeverityError {
				style = errorStyle
			}
			label = style.Render(label)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", label, f.Error()); err != nil {
			return err
		}
	}
	if quiet {
		return nil
	}
	if len(report.Findings) == 0 {
		_, err := fmt.Fprintln(w, "All tokens valid.")
		return err
	}
	_, err := fmt.Fprintf(w, "%d error(s), %d warning(s)\n", report.Errors(), report.Warnings())
	return err
}
