// cmd/main.go
package main

import cmd "github.com/mwiater/sudokubench/cmd/sudokubench"

// main starts the sudokubench CLI application by delegating to the
// cobra root command defined in the sudokubench package.
func main() {
	cmd.Execute()
}
