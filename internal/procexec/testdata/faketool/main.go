package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Test helper used by internal/procexec unit tests.
//
// Modes:
// - echo: copy stdin to stdout
// - exit: write a marker to stderr and exit with -code
// - hang: sleep until killed
// - flood: write -bytes bytes to stdout
func main() {
	mode := flag.String("mode", "echo", "tool mode")
	code := flag.Int("code", 1, "exit code (exit mode)")
	stderrBytes := flag.Int("stderr-bytes", 0, "stderr padding before the end marker (exit mode)")
	n := flag.Int("bytes", 0, "stdout bytes (flood mode)")
	flag.Parse()

	switch *mode {
	case "echo":
		if _, err := io.Copy(os.Stdout, os.Stdin); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	case "exit":
		fmt.Fprintln(os.Stderr, "BEGIN_STDERR")
		fmt.Fprint(os.Stderr, strings.Repeat("x", *stderrBytes))
		fmt.Fprintln(os.Stderr, "END_STDERR")
		os.Exit(*code)
	case "hang":
		time.Sleep(time.Hour)
	case "flood":
		fmt.Fprint(os.Stdout, strings.Repeat("y", *n))
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}
