package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dka: %v\n", err)
		os.Exit(exitCode(err))
	}
}
