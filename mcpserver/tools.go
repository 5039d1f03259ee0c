/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"bennypowers.dev/stratum/graph"
	"bennypowers.dev/stratum/parser/common"
	"bennypowers.dev/stratum/query"
	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/token"
	"bennypowers.dev/stratum/validator"
)

// TokenInfo is a token as tools report it.
type TokenInfo struct {
	Path        string `json:"path"`
	Layer       string `json:"layer"`
	Mode        string `json:"mode,omitempty"`
	Type        string `json:"type,omitempty"`
	Value       string `json:"value"`
	CSSVariable string `json:"cssVariable"`
	Alias       string `json:"alias,omitempty"`
	Status      string `json:"status"`
}

func infoOf(t token.Token) TokenInfo {
	return TokenInfo{
		Path:        t.Path,
		Layer:       t.Layer.Slug(),
		Mode:        string(t.Mode),
		Type:        string(t.Type),
		Value:       t.Value,
		CSSVariable: t.CSSVariable,
		Alias:       t.Alias,
		Status:      t.Status.String(),
	}
}

// ListInput filters list_tokens.
type ListInput struct {
	Layers []string `json:"layers,omitempty" jsonschema:"layer slugs to keep"`
	Modes  []string `json:"modes,omitempty" jsonschema:"modes to keep, - for mode-less tokens"`
	Prefix string   `json:"prefix,omitempty" jsonschema:"path prefix, e.g. Color.Brand"`
	Types  []string `json:"types,omitempty" jsonschema:"token types to keep"`
}

// ListOutput is the result of list_tokens.
type ListOutput struct {
	Count  int         `json:"count"`
	Tokens []TokenInfo `json:"tokens"`
}

func (s *Server) listTokens(ctx context.Context, req *mcp.CallToolRequest, in ListInput) (*mcp.CallToolResult, ListOutput, error) {
	f := query.Filter{Prefix: in.Prefix, Resolve: true, PreferredMode: s.project.Config.Preferred()}
	for _, name := range in.Layers {
		l, err := token.ParseLayer(name)
		if err != nil {
			return nil, ListOutput{}, err
		}
		f.Layers = append(f.Layers, l)
	}
	for _, m := range in.Modes {
		if m == "-" {
			f.Modes = append(f.Modes, "")
			continue
		}
		f.Modes = append(f.Modes, token.ParseMode(m))
	}
	for _, name := range in.Types {
		t, ok := common.NormalizeType(name)
		if !ok {
			return nil, ListOutput{}, fmt.Errorf("unknown token type %q", name)
		}
		f.Types = append(f.Types, t)
	}

	result := query.Run(s.project.Result.Tokens, f)
	out := ListOutput{Count: result.Stats.Count, Tokens: make([]TokenInfo, len(result.Tokens))}
	for i, t := range result.Tokens {
		out.Tokens[i] = infoOf(t)
	}
	res, err := textResult(out)
	return res, out, err
}

// TokenInput names one token.
type TokenInput struct {
	Path  string `json:"path" jsonschema:"dot-separated token path, e.g. Color.Brand.Default"`
	Layer string `json:"layer,omitempty" jsonschema:"layer slug; defaults to the lowest layer holding the path"`
	Mode  string `json:"mode,omitempty" jsonschema:"mode; defaults to the mode-less token, then the preferred mode"`
}

func (s *Server) find(in TokenInput) (token.Token, error) {
	return query.Find(s.project.Result.Tokens, query.Selector{Path: in.Path, Layer: in.Layer, Mode: in.Mode}, s.project.Config.Preferred())
}

// ResolveOutput is the result of resolve_token.
type ResolveOutput struct {
	Token  string   `json:"token"`
	Value  string   `json:"value"`
	Status string   `json:"status"`
	Chain  []string `json:"chain"`
	Cycle  []string `json:"cycle,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func (s *Server) resolveToken(ctx context.Context, req *mcp.CallToolRequest, in TokenInput) (*mcp.CallToolResult, ResolveOutput, error) {
	tok, err := s.find(in)
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	chain := s.res.BuildReferenceChain(tok)
	out := ResolveOutput{
		Token:  tok.Key().String(),
		Value:  chain.Last().Value,
		Status: chain.Status.String(),
		Cycle:  chain.Cycle,
	}
	for _, step := range chain.Steps {
		out.Chain = append(out.Chain, token.Key{Layer: step.Layer, Path: step.Path, Mode: step.Mode}.String())
	}
	if chain.Err != nil {
		out.Error = chain.Err.Error()
		out.Value = graph.BrokenMarker
		if chain.Status == token.StatusCyclic {
			out.Value = graph.CycleMarker
		}
	}
	res, err := textResult(out)
	return res, out, err
}

// DependentsInput names a token and whether to follow dependents further.
type DependentsInput struct {
	Path       string `json:"path" jsonschema:"dot-separated token path"`
	Layer      string `json:"layer,omitempty" jsonschema:"layer slug"`
	Mode       string `json:"mode,omitempty" jsonschema:"mode"`
	Transitive bool `json:"transitive,omitempty" jsonschema:"also list tokens that depend on it through other tokens"`
}

// KeysOutput lists token keys related to one token.
type KeysOutput struct {
	Token string   `json:"token"`
	Keys  []string `json:"keys"`
}

func (s *Server) dependents(ctx context.Context, req *mcp.CallToolRequest, in DependentsInput) (*mcp.CallToolResult, KeysOutput, error) {
	tok, err := s.find(TokenInput{Path: in.Path, Layer: in.Layer, Mode: in.Mode})
	if err != nil {
		return nil, KeysOutput{}, err
	}
	keys := s.graph.Dependents(tok.Key())
	if in.Transitive {
		keys = s.graph.Affected(tok.Key())
	}
	out := KeysOutput{Token: tok.Key().String(), Keys: keyStrings(keys)}
	res, err := textResult(out)
	return res, out, err
}

func (s *Server) dependencies(ctx context.Context, req *mcp.CallToolRequest, in TokenInput) (*mcp.CallToolResult, KeysOutput, error) {
	tok, err := s.find(in)
	if err != nil {
		return nil, KeysOutput{}, err
	}
	out := KeysOutput{Token: tok.Key().String(), Keys: keyStrings(s.graph.Dependencies(tok.Key()))}
	res, err := textResult(out)
	return res, out, err
}

// LintInput filters lint findings.
type LintInput struct {
	Rules []string `json:"rules,omitempty" jsonschema:"rule names to report; all rules when empty"`
}

// FindingInfo is a lint finding as tools report it.
type FindingInfo struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Token    string `json:"token"`
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
}

// LintOutput is the result of lint.
type LintOutput struct {
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Findings []FindingInfo `json:"findings"`
}

func (s *Server) lint(ctx context.Context, req *mcp.CallToolRequest, in LintInput) (*mcp.CallToolResult, LintOutput, error) {
	keep := make(map[validator.Rule]bool, len(in.Rules))
	for _, r := range in.Rules {
		keep[validator.Rule(r)] = true
	}

	report := validator.Lint(s.project.Result, nil, resolver.WithPreferredMode(s.project.Config.Preferred()))
	out := LintOutput{Findings: []FindingInfo{}}
	for _, f := range report.Findings {
		if len(keep) > 0 && !keep[f.Rule] {
			continue
		}
		if f.Severity == validator.SeverityError {
			out.Errors++
		} else {
			out.Warnings++
		}
		out.Findings = append(out.Findings, FindingInfo{
			Rule:     string(f.Rule),
			Severity: string(f.Severity),
			Token:    token.Key{Layer: f.Layer, Path: f.Path, Mode: f.Mode}.String(),
			Message:  f.Message,
			Source:   f.Source,
		})
	}
	res, err := textResult(out)
	return res, out, err
}
