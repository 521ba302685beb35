// The main package for the email-extractor executable.
package main

import (
	"github.com/JakeFAU/email-extractor/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
