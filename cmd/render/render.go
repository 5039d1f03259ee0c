/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package render provides shared rendering functions for CLI output.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mazznoer/csscolorparser"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/stratum/query"
	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/token"
)

// Row holds computed display values for a single token.
type Row struct {
	Name        string       // CSS variable name
	Path        string       // Dot-separated token path
	Layer       token.Layer  // Owning layer
	Mode        token.Mode   // Mode, or empty for mode-less tokens
	Type        string       // Token type
	Value       string       // Display value
	Alias       string       // Reference the value was resolved through
	Status      token.Status // Resolution state
	Description string       // Token description
	IsColor     bool         // Whether this is a color token with parseable value
}

// Options configures terminal output.
type Options struct {
	// Color enables swatches and styled status markers.
	Color bool
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ComputeRows transforms tokens into display rows with all values computed.
func ComputeRows(tokens []token.Token) []Row {
	rows := make([]Row, 0, len(tokens))
	for _, tok := range tokens {
		row := Row{
			Name:        tok.CSSVariable,
			Path:        tok.Path,
			Layer:       tok.Layer,
			Mode:        tok.Mode,
			Type:        string(tok.Type),
			Value:       tok.Value,
			Alias:       tok.Alias,
			Status:      tok.Status,
			Description: tok.Description,
		}
		if tok.Type == token.TypeColor && !tok.Status.Broken() && tok.Reference == "" {
			if _, err := csscolorparser.Parse(row.Value); err == nil {
				row.IsColor = true
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ColumnWidths calculates the max width needed for each column.
func ColumnWidths(rows []Row) (name, mode, val int) {
	name, mode, val = 4, 4, 5 // minimums for headers
	for _, r := range rows {
		name = max(name, len(r.Name))
		mode = max(mode, len(modeLabel(r.Mode)))
		val = max(val, len(r.Value))
	}
	return
}

func modeLabel(m token.Mode) string {
	if m == "" {
		return "-"
	}
	return string(m)
}

// ColorSwatch returns a 24-bit ANSI color block for the given color value.
func ColorSwatch(value string) string {
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return ""
	}
	r, g, b, _ := c.RGBA255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m ", r, g, b)
}

var (
	brokenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	aliasStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// StatusMarker returns the suffix shown after a value for its status.
// Literal and resolved tokens have none.
func StatusMarker(s token.Status, color bool) string {
	var label string
	var style lipgloss.Style
	switch s {
	case token.StatusUnresolved:
		label, style = "[unresolved]", brokenStyle
	case token.StatusCyclic:
		label, style = "[cycle]", brokenStyle
	case token.StatusPending:
		label, style = "[pending]", pendingStyle
	default:
		return ""
	}
	if color {
		return " " + style.Render(label)
	}
	return " " + label
}

// Table renders rows as an aligned table.
func Table(w io.Writer, rows []Row, opts Options) error {
	if len(rows) == 0 {
		return nil
	}
	nameW, modeW, _ := ColumnWidths(rows)
	for _, r := range rows {
		swatch := ""
		if opts.Color && r.IsColor {
			swatch = ColorSwatch(r.Value)
		}
		alias := ""
		if r.Alias != "" {
			alias = " ← " + r.Alias
			if opts.Color {
				alias = " " + aliasStyle.Render("← "+r.Alias)
			}
		}
		if _, err := fmt.Fprintf(w, "%-*s  %-*s  %s%s%s%s\n",
			nameW, r.Name, modeW, modeLabel(r.Mode), swatch, r.Value, alias, StatusMarker(r.Status, opts.Color)); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders rows as markdown tables grouped by layer.
func Markdown(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	var order []token.Layer
	byLayer := make(map[token.Layer][]Row)
	for _, r := range rows {
		if _, exists := byLayer[r.Layer]; !exists {
			order = append(order, r.Layer)
		}
		byLayer[r.Layer] = append(byLayer[r.Layer], r)
	}

	var sb strings.Builder
	for i, layer := range order {
		group := byLayer[layer]
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s {#%s}\n\n", toTitleCase(layer.Slug()), slugify(layer.Slug()))

		nameW, modeW, valW := ColumnWidths(group)
		fmt.Fprintf(&sb, "| %-*s | %-*s | %-*s |\n", nameW, "Name", modeW, "Mode", valW, "Value")
		fmt.Fprintf(&sb, "|-%s-|-%s-|-%s-|\n", strings.Repeat("-", nameW), strings.Repeat("-", modeW), strings.Repeat("-", valW))
		for _, r := range group {
			fmt.Fprintf(&sb, "| %-*s | %-*s | %-*s |\n", nameW, r.Name, modeW, modeLabel(r.Mode), valW, r.Value)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Names renders just the token names, one per line. Mode variants share a
// name and are printed once.
func Names(w io.Writer, rows []Row) error {
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		if _, err := fmt.Fprintln(w, r.Name); err != nil {
			return err
		}
	}
	return nil
}

// Chain renders a reference chain one hop per line, starting at the token.
func Chain(w io.Writer, c resolver.Chain, opts Options) error {
	for i, step := range c.Steps {
		indent := strings.Repeat("  ", i)
		arrow := ""
		if i > 0 {
			arrow = "→ "
		}
		marker := ""
		switch {
		case step.Cyclic:
			marker = StatusMarker(token.StatusCyclic, opts.Color)
		case step.Broken:
			marker = StatusMarker(token.StatusUnresolved, opts.Color)
		}
		key := token.Key{Layer: step.Layer, Path: step.Path, Mode: step.Mode}
		if _, err := fmt.Fprintf(w, "%s%s%s (%s): %s%s\n", indent, arrow, key, step.CSSVariable, step.Value, marker); err != nil {
			return err
		}
	}
	if len(c.Cycle) > 0 {
		if _, err := fmt.Fprintf(w, "cycle: %s → %s\n", strings.Join(c.Cycle, " → "), c.Cycle[0]); err != nil {
			return err
		}
	}
	return nil
}

// Keys renders token keys one per line under a heading.
func Keys(w io.Writer, heading string, keys []token.Key) error {
	if _, err := fmt.Fprintf(w, "%s (%d)\n", heading, len(keys)); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "  %s\n", k); err != nil {
			return err
		}
	}
	return nil
}

// Stats renders a query summary.
func Stats(w io.Writer, s query.Stats) error {
	_, err := fmt.Fprintf(w, "%d token(s)\n  layers: %s\n  modes:  %s\n  types:  %s\n",
		s.Count, joinOrDash(s.Layers), joinOrDash(s.Modes), joinOrDash(s.Types))
	return err
}

func joinOrDash[T any](values []T) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

// slugify converts a name to a URL-safe anchor ID.
// e.g., "Color Brand" -> "color-brand"
func slugify(name string) string {
	var result strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' || r == '.' {
			result.WriteRune('-')
		}
	}
	s := result.String()
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// toTitleCase converts a string to Title Case.
func toTitleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}
