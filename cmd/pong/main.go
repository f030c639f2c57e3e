package main

import (
	"fmt"
	"os"

	"pingreport/cmd"
)

func main() {
	if err := cmd.Upstream(); err != nil {
		fmt.Fprintf(os.Stderr, "server run into an error: %s\n", err)
		os.Exit(1)
	}
}
