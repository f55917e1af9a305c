package main

import (
	"fmt"
	"os"

	"github.com/example/qbank/internal/cli"
	"github.com/example/qbank/internal/wire"
)

func main() {
	rootCmd := cli.RootCmd(cli.Deps{
		Service:  wire.BankService(),
		BankFile: wire.Config().BankFile,
		Logger:   wire.Logger(),
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
