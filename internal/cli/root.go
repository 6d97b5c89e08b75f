// Package cli implements the graphqlgen command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hanpama/graphqlgen/internal/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
)

// NewRootCmd constructs the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graphqlgen",
		Short: "graphqlgen - typed TypeScript resolver scaffolding from a GraphQL schema",
		Long:  "graphqlgen reads a GraphQL schema and your TypeScript model declarations and generates resolver type definitions with default pass-through resolvers.",
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging output")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "Path to the graphqlgen config file")
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newInitCmd())
	return cmd
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// reportError prints err with its hint and returns the exit code.
func reportError(w io.Writer, err error) int {
	var cerr CommandError
	if !errors.As(err, &cerr) {
		fmt.Fprintln(w, err)
		return 1
	}
	msg := strings.TrimSpace(cerr.Message)
	if msg == "" && cerr.Cause != nil {
		msg = cerr.Cause.Error()
	}
	if msg != "" {
		fmt.Fprintln(w, msg)
	}
	if cerr.Cause != nil && msg != cerr.Cause.Error() && verbose {
		fmt.Fprintf(w, "details: %v\n", cerr.Cause)
	}
	if cerr.Suggestion != "" {
		fmt.Fprintln(w, formatSuggestion(cerr.Suggestion))
	}
	return cerr.ExitStatus()
}

func logVerbose(cmd *cobra.Command, format string, args ...any) {
	if !verbose {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "[verbose] "+format+"\n", args...)
}

var loadConfig = config.Load

func loadProjectConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, wrapError(fmt.Sprintf("config file %s not found", configPath), err, "Run `graphqlgen init` to create one, or pass --config.", 2)
		}
		return nil, wrapError(fmt.Sprintf("invalid config: %v", err), err, "Fix the config file and re-run.", 2)
	}
	logVerbose(cmd, "loaded config %s", configPath)
	return cfg, nil
}
