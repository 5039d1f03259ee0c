/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcp provides the mcp command for stratum.
package mcp

import (
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/stratum/cmd/project"
	"bennypowers.dev/stratum/internal/logger"
	"bennypowers.dev/stratum/mcpserver"
)

// Cmd is the mcp cobra command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the project's tokens to MCP clients over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout.

Tools: list_tokens, resolve_token, dependents, dependencies, lint.
The project is loaded once at startup.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol
	logger.SetOutput(io.Discard)

	proj, err := project.Load(cmd.Context())
	if err != nil {
		return err
	}
	return mcpserver.New(proj).Run(cmd.Context())
}
