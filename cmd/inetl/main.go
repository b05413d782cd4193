package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/vvka-141/inetl/internal/cli"
	"github.com/vvka-141/inetl/pkg/inetl"
)

func main() {
	os.Exit(run(cli.Execute, os.Stderr))
}

// run executes the command tree and turns its outcome into the process exit
// code. A panic is reported with its stack as ExitPanic.
func run(execute func() error, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "inetl: internal error: %v\n%s\n", r, debug.Stack())
			code = inetl.ExitPanic
		}
	}()

	return inetl.ExitCodeForError(execute())
}
