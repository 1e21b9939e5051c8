// Command specfuse runs the specfuse MCP server over stdio.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/specfuse/specfuse"
	"github.com/specfuse/specfuse/internal/mcpserver"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "-v", "--version":
			fmt.Printf("specfuse v%s\n", specfuse.Version())
			return
		case "help", "-h", "--help":
			printUsage()
			return
		case "serve":
			// fall through to the server
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpserver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`specfuse - interface document merge engine (MCP server)

Usage:
  specfuse [serve]    Run the MCP server over stdio (default)
  specfuse version    Print the version
  specfuse help       Show this help

The server exposes four tools: bundle, aggregate, consolidate, and preview.
Defaults are configured via SPECFUSE_* environment variables; see the server
instructions reported to MCP clients for the full list.`)
}
