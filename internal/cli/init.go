package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hanpama/graphqlgen/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter graphqlgen config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return wrapError(fmt.Sprintf("init: %s already exists", configPath), nil, "Pass --force to overwrite it.", 2)
			}
			raw, err := config.Marshal(config.Default())
			if err != nil {
				return wrapError("init: render config", err, "", 1)
			}
			if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
				return wrapError(fmt.Sprintf("init: create directory %s", filepath.Dir(configPath)), err, "Check directory permissions or run the command from a writable workspace.", 1)
			}
			if err := os.WriteFile(configPath, raw, 0o644); err != nil {
				return wrapError(fmt.Sprintf("init: write file %s", configPath), err, "Ensure the path is writable.", 1)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
