package main

import (
	"fmt"
	"os"

	"github.com/de-tools/deal-atlas/pkg/runtime/terminal"
	"github.com/de-tools/deal-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/deal-atlas/pkg/services/deal"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		ControllerFactory: deal.NewControllerFromFile,
		Formats:           export.NewDefaultRegistry(),
		Output:            os.Stdout,
		LogOutput:         os.Stderr,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
