// Command sheetstore is a small operator CLI for inspecting and mutating a
// live sheetstore spreadsheet.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
