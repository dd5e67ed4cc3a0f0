package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bumpgate/bumpgate/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
	defaultFailureExitCode    = 1
)

// main executes the bumpgate command-line application and converts the
// terminal error into the process exit status.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)

	var exitCodeCarrier interface{ ExitCode() int }
	if errors.As(executionError, &exitCodeCarrier) {
		os.Exit(exitCodeCarrier.ExitCode())
	}

	os.Exit(defaultFailureExitCode)
}
