package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hanpama/graphqlgen/internal/ir"
	"github.com/hanpama/graphqlgen/internal/schema"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the merged schema as a single SDL document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig(cmd)
			if err != nil {
				return err
			}
			proj, err := ir.Load(cmd.Context(), cfg.SchemaPath())
			if err != nil {
				return generationError("schema", fmt.Errorf("load schema: %w", err))
			}
			logVerbose(cmd, "merged %d types from %d files", len(proj.Types), len(proj.Files))
			sdl := schema.Render(proj)
			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), sdl)
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return wrapError(fmt.Sprintf("schema: create directory %s", filepath.Dir(out)), err, "Check directory permissions.", 1)
			}
			if err := os.WriteFile(out, []byte(sdl), 0o644); err != nil {
				return wrapError(fmt.Sprintf("schema: write %s", out), err, "Check file permissions.", 1)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the SDL to this file instead of stdout")
	return cmd
}
