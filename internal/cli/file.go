package cli

import (
	"context"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/qbank/internal/adapters/cli"
)

// StatsCmd returns the stats command
func StatsCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show question counts by topic and difficulty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBank(cmd, deps, readBank, func(ctx context.Context, adapter *cliadapter.BankAdapter) error {
				return adapter.Stats(ctx)
			})
		},
	}
}

// SaveCmd returns the save command
func SaveCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "save [path]",
		Short: "Save the bank to a CSV file",
		Long:  "Save every question to a CSV file. Without a path the working file is written.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := pathArg(args, deps)

			return withBank(cmd, deps, readBank, func(ctx context.Context, adapter *cliadapter.BankAdapter) error {
				return adapter.Save(ctx, path)
			})
		},
	}
}

// LoadCmd returns the load command
func LoadCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "load [path]",
		Short: "Replace the bank with the content of a CSV file",
		Long: `Replace every question with the content of a CSV file.
The file is parsed completely first; on any error the bank is left as it was.
Without a path the working file is read.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := pathArg(args, deps)

			return withBank(cmd, deps, replaceBank, func(ctx context.Context, adapter *cliadapter.BankAdapter) error {
				return adapter.Load(ctx, path)
			})
		},
	}
}

// ExportCmd returns the export command
func ExportCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export the bank and its statistics to an .xlsx spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBank(cmd, deps, readBank, func(ctx context.Context, adapter *cliadapter.BankAdapter) error {
				return adapter.Export(ctx, args[0])
			})
		},
	}
}
