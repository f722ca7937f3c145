package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/pkgmeta/internal/cli"
	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(pkgmeta.ExitPanic)
		}
	}()

	if os.Getenv("PKGMETA_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(pkgmeta.ExitCodeForError(err))
	}
}
