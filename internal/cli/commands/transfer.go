package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jymfony/scriba/internal/cli/ui"
	"github.com/jymfony/scriba/runtime/sidechannel"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var compress bool

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the configured provider to a side-channel file",
		Long: `Write every class held by the configured provider to a side-channel
file. Use --compress to gzip the output; import detects compression on its own.`,
		Example: `  scriba export build/reflection.json
  SCRIBA_PROVIDER_DRIVER=redis scriba export snapshot.json.gz --compress`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			ids, err := e.backend.ClassIDs(ctx)
			if err != nil {
				return err
			}

			table := sidechannel.NewTable()
			progress := ui.NewProgress(cmd.ErrOrStderr(), "export", len(ids), color.NoColor)
			for _, id := range ids {
				data, ok := e.backend.ReflectionData(id)
				if !ok {
					return fmt.Errorf("%w: %s", sidechannel.ErrClassNotFound, id)
				}
				table.Classes[id] = data
				progress.Step()
			}
			progress.Finish()

			if err := sidechannel.WriteFile(args[0], table, compress); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Exported %d classes to %s", len(ids), args[0]), color.NoColor))
			return nil
		},
	}

	cmd.Flags().BoolVar(&compress, "compress", false, "Gzip the output file")
	return cmd
}

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a side-channel file into the configured provider",
		Long: `Load a side-channel file into the configured provider. Existing entries
with the same class id are replaced.`,
		Example: `  SCRIBA_PROVIDER_DRIVER=sqlite3 SCRIBA_PROVIDER_DSN=reflection.db scriba import build/reflection.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := sidechannel.ReadFile(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if e.cfg.Provider.Driver == sidechannel.DriverMemory {
				return fmt.Errorf("the %s provider does not persist imported data", sidechannel.DriverMemory)
			}

			ids := table.ClassIDs()
			progress := ui.NewProgress(cmd.ErrOrStderr(), "import", len(ids), color.NoColor)
			for _, id := range ids {
				if err := e.backend.Put(ctx, id, table.Classes[id]); err != nil {
					return fmt.Errorf("failed to store class %s: %w", id, err)
				}
				progress.Step()
			}
			progress.Finish()

			if f, ok := e.backend.(*sidechannel.File); ok {
				if err := f.Flush(); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Imported %d classes from %s", len(ids), args[0]), color.NoColor))
			return nil
		},
	}
}
