// ./main.go
package main

import (
	"github.com/xkilldash9x/scientist-cli/cmd"
)

// main is the entry point for the Scientist CLI application.
func main() {
	cmd.Execute()
}
