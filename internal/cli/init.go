package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/qbank/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a qbank config in the current directory",
		Long: `Create .qbank/config.json in the current directory.
Commands run from this directory then use the given file as their working bank.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bankFile, _ := cmd.Flags().GetString("file")
			force, _ := cmd.Flags().GetBool("force")

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			return initConfig(cmd, cwd, bankFile, force)
		},
	}
	cmd.Flags().StringP("file", "f", "bank.csv", "Working CSV file, relative to this directory")
	cmd.Flags().Bool("force", false, "Overwrite an existing config")
	return cmd
}

func initConfig(cmd *cobra.Command, dir, bankFile string, force bool) error {
	out := cmd.OutOrStdout()

	if _, err := config.LoadConfig(dir); err == nil && !force {
		return fmt.Errorf("config already exists in %s\nHint: use --force to overwrite", dir)
	}

	cfg := &config.Config{
		Version:  config.CurrentVersion,
		BankFile: bankFile,
	}
	if err := config.SaveConfig(dir, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Config written to %s/.qbank/config.json\n", dir)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  qbank question add \"What is Big-O notation?\" --topic Algorithms --difficulty Easy")
	fmt.Fprintln(out, "  qbank shell")
	return nil
}
