package main

import (
	"bytes"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// run is the test harness for doMain: it resets the global flag set and
// os.Args before each invocation, since doMain registers its flags on
// flag.CommandLine and parses os.Args[1:] — the same reset the teacher's
// cmd/wazero/wazero_test.go runMain helper applies before each call.
func run(t *testing.T, cliArgs []string, stdin string) (stdout, stderr string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"nanobasic"}, cliArgs...)
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	var out, errOut bytes.Buffer
	code := doMain(strings.NewReader(stdin), &out, &errOut)
	require.Equal(t, 0, code)
	return out.String(), errOut.String()
}

func TestDoMain_ArithmeticAndBuiltins(t *testing.T) {
	stdout, stderr := run(t, nil, "print 1 + 2 * 3\nputc(65)\n")
	require.Equal(t, "7 \nA", stdout)
	require.Empty(t, stderr)
}

func TestDoMain_ErrorPrintsDiagnosticAndContinues(t *testing.T) {
	stdout, stderr := run(t, nil, "print (1 + )\nprint 9\n")
	require.Equal(t, "9 \n", stdout)
	require.NotEmpty(t, stderr)
}

func TestDoMain_NumberedProgram(t *testing.T) {
	stdout, _ := run(t, nil, "10 for i = 1 to 3\n20 print i\n30 next\nrun\n")
	require.Equal(t, "1 \n2 \n3 \n", stdout)
}

func TestDoMain_Help(t *testing.T) {
	stdout, stderr := run(t, []string{"-h"}, "")
	require.Empty(t, stdout)
	require.Contains(t, stderr, "usage: nanobasic")
}

func TestDoMain_Trace(t *testing.T) {
	stdout, stderr := run(t, []string{"-trace"}, "print 1\n")
	require.Equal(t, "1 \n", stdout)
	require.NotEmpty(t, stderr)
}
