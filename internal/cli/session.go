package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/qbank/internal/adapters/cli"
	"github.com/example/qbank/internal/ctxutil"
	"github.com/example/qbank/internal/logging"
)

// access describes what a command does to the bank.
type access int

const (
	readBank    access = iota // reads the working file
	writeBank                 // reads, then saves the working file
	replaceBank               // saves the working file without reading it
)

// withBank runs fn against the bank. Outside a shell session the working file
// is loaded first and saved afterwards when the command changed the bank.
func withBank(cmd *cobra.Command, deps Deps, mode access, fn func(ctx context.Context, adapter *cliadapter.BankAdapter) error) error {
	ctx := cmd.Context()
	adapter := cliadapter.NewBankAdapter(deps.Service, cmd.OutOrStdout())

	if ctxutil.InSession(ctx) {
		return fn(ctx, adapter)
	}

	if mode != replaceBank {
		if err := loadWorkingFile(ctx, deps); err != nil {
			return err
		}
	}

	if err := fn(ctx, adapter); err != nil {
		return err
	}

	if mode == readBank || (mode == writeBank && !deps.Service.Dirty()) {
		return nil
	}
	if err := deps.Service.SaveToFile(ctx, deps.BankFile); err != nil {
		return fmt.Errorf("failed to save %s: %w", deps.BankFile, err)
	}
	return nil
}

// loadWorkingFile loads the working file if it exists. A missing file is an empty bank.
func loadWorkingFile(ctx context.Context, deps Deps) error {
	if _, err := os.Stat(deps.BankFile); errors.Is(err, fs.ErrNotExist) {
		logger := logging.FromContext(ctx)
		logger.Debug().Str("path", deps.BankFile).Msg("no working file, starting empty")
		return nil
	}

	if _, err := deps.Service.LoadFromFile(ctx, deps.BankFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", deps.BankFile, err)
	}
	return nil
}

// pathArg returns the first argument, or the working file when there is none.
func pathArg(args []string, deps Deps) string {
	if len(args) > 0 {
		return args[0]
	}
	return deps.BankFile
}
