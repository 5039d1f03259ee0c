/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validator lints a parsed token set and collects every problem
// into a single report.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"bennypowers.dev/stratum/graph"
	"bennypowers.dev/stratum/parser"
	"bennypowers.dev/stratum/parser/common"
	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/token"
)

// Rule names a lint check.
type Rule string

const (
	RuleMalformedLeaf       Rule = "malformed-leaf"
	RuleAmbiguousLiteral    Rule = "ambiguous-literal"
	RuleCSSCollision        Rule = "css-collision"
	RuleUnresolvedReference Rule = "unresolved-reference"
	RuleCyclicReference     Rule = "cyclic-reference"
	RuleLayerFlow           Rule = "layer-flow"
	RuleSkippedLayer        Rule = "skipped-layer"
	RuleInvalidColor        Rule = "invalid-color"
	RuleUnsafeCSSValue      Rule = "unsafe-css-value"
)

// Rules lists every rule in report order.
var Rules = []Rule{
	RuleMalformedLeaf,
	RuleAmbiguousLiteral,
	RuleCSSCollision,
	RuleUnresolvedReference,
	RuleCyclicReference,
	RuleLayerFlow,
	RuleSkippedLayer,
	RuleInvalidColor,
	RuleUnsafeCSSValue,
}

// Severity is how bad a finding is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one lint result.
type Finding struct {
	Rule     Rule        `json:"rule"`
	Severity Severity    `json:"severity"`
	Path     string      `json:"path"`
	Layer    token.Layer `json:"layer"`
	Mode     token.Mode  `json:"mode,omitempty"`
	Message  string      `json:"message"`

	// Source is the file the finding came from, when known.
	Source string `json:"source,omitempty"`
}

// Error implements the error interface.
func (f Finding) Error() string {
	var sb strings.Builder
	if f.Source != "" {
		sb.WriteString(f.Source)
		sb.WriteString(": ")
	}
	sb.WriteString(f.Layer.Slug())
	sb.WriteByte(':')
	sb.WriteString(f.Path)
	if f.Mode != "" {
		sb.WriteString("[")
		sb.WriteString(string(f.Mode))
		sb.WriteString("]")
	}
	sb.WriteString(": ")
	sb.WriteString(f.Message)
	sb.WriteString(" (")
	sb.WriteString(string(f.Rule))
	sb.WriteString(")")
	return sb.String()
}

// Report collects findings in rule order.
type Report struct {
	Findings []Finding `json:"findings"`
}

// Errors returns the number of error findings.
func (r Report) Errors() int {
	return r.count(SeverityError)
}

// Warnings returns the number of warning findings.
func (r Report) Warnings() int {
	return r.count(SeverityWarning)
}

// HasErrors reports whether any finding is an error.
func (r Report) HasErrors() bool {
	return r.Errors() > 0
}

// ByRule returns the findings of one rule.
func (r Report) ByRule(rule Rule) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}

func (r Report) count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// Lint checks a parse result. tokens is the set to check; nil means
// result.Tokens. Unresolved and cyclic references are errors, everything
// else is a warning.
func Lint(result *parser.Result, tokens []token.Token, opts ...resolver.Option) Report {
	if result == nil {
		result = &parser.Result{}
	}
	if tokens == nil {
		tokens = result.Tokens
	}

	var r Report
	add := func(f Finding) {
		if f.Severity == "" {
			f.Severity = SeverityWarning
		}
		r.Findings = append(r.Findings, f)
	}

	for _, s := range result.Skipped {
		add(Finding{
			Rule:    RuleMalformedLeaf,
			Path:    s.Path,
			Layer:   s.Layer,
			Mode:    s.Mode,
			Source:  s.Source,
			Message: fmt.Sprintf("leaf skipped: %v", s.Reason),
		})
	}

	for _, t := range result.Ambiguous {
		add(Finding{
			Rule:    RuleAmbiguousLiteral,
			Path:    t.Path,
			Layer:   t.Layer,
			Mode:    t.Mode,
			Message: fmt.Sprintf("value %q contains braces but is not a reference; kept as a literal", t.Value),
		})
	}

	for _, c := range token.Collisions(tokens) {
		add(Finding{
			Rule:    RuleCSSCollision,
			Path:    strings.Join(c.Paths, ", "),
			Layer:   c.Layer,
			Message: fmt.Sprintf("paths %s all map to %s", strings.Join(c.Paths, ", "), c.CSSVariable),
		})
	}

	res := resolver.New(tokens, opts...)
	var cyclic []Finding
	for _, t := range res.Index().Tokens() {
		out := res.ResolveOne(t)
		switch out.Status {
		case token.StatusUnresolved:
			add(Finding{
				Rule:     RuleUnresolvedReference,
				Severity: SeverityError,
				Path:     t.Path,
				Layer:    t.Layer,
				Mode:     t.Mode,
				Message:  unresolvedMessage(t, out.Err),
			})
		case token.StatusCyclic:
			cyclic = append(cyclic, Finding{
				Rule:     RuleCyclicReference,
				Severity: SeverityError,
				Path:     t.Path,
				Layer:    t.Layer,
				Mode:     t.Mode,
				Message:  "circular reference: " + loop(out.Cycle),
			})
		}
	}
	for _, f := range cyclic {
		add(f)
	}

	for _, e := range graph.Build(tokens, opts...).FlowViolations() {
		add(Finding{
			Rule:    RuleLayerFlow,
			Path:    e.From.Path,
			Layer:   e.From.Layer,
			Mode:    e.From.Mode,
			Message: fmt.Sprintf("%s token references %s token %s", e.From.Layer, e.To.Layer, e.To.Path),
		})
	}

	for _, s := range graph.ChainsWithSkippedLayers(tokens, opts...) {
		first := s.Chain.Steps[0]
		add(Finding{
			Rule:    RuleSkippedLayer,
			Path:    first.Path,
			Layer:   first.Layer,
			Mode:    first.Mode,
			Message: fmt.Sprintf("chain jumps from %s to %s: %s", s.From, s.To, graph.FormatChain(s.Chain)),
		})
	}

	for _, t := range tokens {
		if t.Status != token.StatusLiteral || t.Type != token.TypeColor {
			continue
		}
		if _, err := common.ParseColor(t.Value); err != nil {
			add(Finding{
				Rule:    RuleInvalidColor,
				Path:    t.Path,
				Layer:   t.Layer,
				Mode:    t.Mode,
				Message: fmt.Sprintf("color %q cannot be parsed", t.Value),
			})
		}
	}

	for _, t := range tokens {
		// brace-bearing literals are already reported as ambiguous
		if t.Status != token.StatusLiteral || !token.BreaksCSS(t.Value) || token.IsAmbiguous(t.Value) {
			continue
		}
		add(Finding{
			Rule:    RuleUnsafeCSSValue,
			Path:    t.Path,
			Layer:   t.Layer,
			Mode:    t.Mode,
			Message: fmt.Sprintf("value %q would end its CSS declaration early; it is left out of CSS output", t.Value),
		})
	}

	return r
}

// unresolvedMessage explains an unresolved token, distinguishing a missing
// target from a chain that runs into a loop.
func unresolvedMessage(t token.Token, err error) string {
	var cycleErr *resolver.CycleError
	if errors.As(err, &cycleErr) {
		return fmt.Sprintf("reference %s reaches a circular reference: %s", t.Reference, loop(cycleErr.Cycle))
	}
	return fmt.Sprintf("reference %s has no target", t.Reference)
}

func loop(cycle []string) string {
	if len(cycle) == 0 {
		return ""
	}
	return strings.Join(append(append([]string(nil), cycle...), cycle[0]), " → ")
}
