package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/qbank/internal/logging"
	"github.com/example/qbank/internal/ports/primary"
	"github.com/example/qbank/internal/version"
)

// Deps are the services the commands run against.
type Deps struct {
	Service  primary.BankService
	BankFile string // working CSV file
	Logger   zerolog.Logger
}

// RootCmd returns the qbank command tree.
func RootCmd(deps Deps) *cobra.Command {
	rootCmd := newRoot(deps)
	rootCmd.Version = version.String()
	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(ShellCmd(deps))
	return rootCmd
}

// sessionRoot returns the commands available inside the shell.
// A fresh tree is built for every line so flag values never leak between lines.
func sessionRoot(deps Deps) *cobra.Command {
	rootCmd := newRoot(deps)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd
}

func newRoot(deps Deps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qbank",
		Short: "qbank - a question bank for quizzes and exams",
		Long: `qbank keeps a bank of questions indexed by topic and difficulty.
Questions can be searched, drawn at random, and saved to or loaded from CSV files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(logging.IntoContext(cmd.Context(), deps.Logger))
		},
	}

	rootCmd.AddCommand(QuestionCmd(deps))
	rootCmd.AddCommand(StatsCmd(deps))
	rootCmd.AddCommand(SaveCmd(deps))
	rootCmd.AddCommand(LoadCmd(deps))
	rootCmd.AddCommand(ExportCmd(deps))
	return rootCmd
}
