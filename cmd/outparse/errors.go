package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/outparse/catalog"
	"github.com/randalmurphal/outparse/parser"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitError     = 1
	exitNoMatch   = 2
	exitCancelled = 4
	exitConfig    = 10
)

// handleError prints err and returns the process exit code.
func handleError(cmd *cobra.Command, err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, context.Canceled):
		cmd.PrintErrln("Operation cancelled")
		return exitCancelled
	case errors.Is(err, catalog.ErrNoMatch):
		cmd.PrintErrln("Error:", err)
		return exitNoMatch
	case errors.Is(err, catalog.ErrFormat),
		errors.Is(err, catalog.ErrInvalid),
		errors.Is(err, catalog.ErrUnknownType),
		isBindError(err):
		cmd.PrintErrln("Catalog error:", err)
		return exitConfig
	default:
		cmd.PrintErrln("Error:", err)
		return exitError
	}
}

// isBindError reports whether err comes from binding template fields.
func isBindError(err error) bool {
	return errors.Is(err, parser.ErrMissingPattern) ||
		errors.Is(err, parser.ErrMissingOut) ||
		errors.Is(err, parser.ErrDuplicateOut) ||
		errors.Is(err, parser.ErrKindMismatch) ||
		errors.Is(err, parser.ErrNoConverter)
}
