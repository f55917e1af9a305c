package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	cliadapter "github.com/example/qbank/internal/adapters/cli"
	"github.com/example/qbank/internal/ctxutil"
	"github.com/example/qbank/internal/logging"
)

const (
	shellPrompt = "qbank> "

	// maxLineSize bounds one shell line; question text may be long.
	maxLineSize = 1 << 20
)

// ShellCmd returns the shell command
func ShellCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session over one in-memory bank.
The working file is loaded on start. Changes are kept in memory until 'save';
'exit' warns about changes that were never saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), deps, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runShell(ctx context.Context, deps Deps, in io.Reader, out, errOut io.Writer) error {
	ctx = ctxutil.WithSession(ctx)
	logger := logging.FromContext(ctx)
	adapter := cliadapter.NewBankAdapter(deps.Service, out)

	if _, err := os.Stat(deps.BankFile); err == nil {
		if err := adapter.Load(ctx, deps.BankFile); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Str("path", deps.BankFile).Msg("cannot read working file")
	}

	fmt.Fprintln(out, "Type 'help' for commands, 'exit' to quit.")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for {
		fmt.Fprint(out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		args, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}

		if err := runLine(ctx, deps, args, in, out, errOut); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}
	adapter.WarnUnsaved()
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func runLine(ctx context.Context, deps Deps, args []string, in io.Reader, out, errOut io.Writer) error {
	rootCmd := sessionRoot(deps)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.ExecuteContext(ctx)
}
