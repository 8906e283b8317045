// Command nanobasic is the line-reading driver described in spec.md §6:
// read one line at a time from standard input, hand it to an Interpreter,
// print a diagnostic on error, and keep going. Structured as a testable
// doMain(stdin, stdout, stderr) int, the same shape as the teacher's
// cmd/wazero/wazero.go doMain.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nanobasic/nanobasic"
	"github.com/nanobasic/nanobasic/internal/builtins"
)

func main() {
	os.Exit(doMain(os.Stdin, os.Stdout, os.Stderr))
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdin io.Reader, stdOut, stdErr io.Writer) int {
	flag.CommandLine.SetOutput(stdErr)

	var help bool
	flag.BoolVar(&help, "h", false, "Prints usage.")

	var trace bool
	flag.BoolVar(&trace, "trace", false, "Enable debug tracing to stderr.")

	flag.Parse()

	if help {
		printUsage(stdErr)
		return 0
	}

	opts := []nanobasic.Option{nanobasic.WithOutput(stdOut)}
	if trace {
		opts = append(opts, nanobasic.WithTrace(stdErr))
	}
	interp := nanobasic.NewInterpreter(opts...)

	set := builtins.NewSet(stdOut, time.Now().UnixNano())
	for name, fn := range set.Funcs() {
		interp.RegisterHostFunc(name, fn)
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if err := interp.HandleLine(line); err != nil {
			fmt.Fprintf(stdErr, "\033[31m%s\033[0m\n", err)
		}
	}

	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "nanobasic: an interactive interpreter for a minimal BASIC-like language")
	fmt.Fprintln(w, "usage: nanobasic [-trace]")
	flag.PrintDefaults()
}
