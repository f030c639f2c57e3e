package main

import (
	"fmt"
	"os"

	"pingreport/cmd"
)

func main() {
	if err := cmd.Report(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "report run into an error: %s\n", err)
		os.Exit(1)
	}
}
