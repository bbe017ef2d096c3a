// Noviq is an interpreter for the Noviq scripting language. It runs scripts,
// code given on the command line and an interactive REPL, and can check
// scripts or serve them to editors as a language server.
package main

import (
	"os"

	"src.noviq.dev/pkg/buildinfo"
	"src.noviq.dev/pkg/lsp"
	"src.noviq.dev/pkg/pprof"
	"src.noviq.dev/pkg/prog"
	"src.noviq.dev/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&pprof.Program{}, &buildinfo.Program{}, &lsp.Program{}, &shell.Program{})))
}
