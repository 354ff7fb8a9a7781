package main

import (
	"fmt"
	"os"

	"github.com/ChristianF88/catgene/cli"
)

func main() {
	if err := cli.App.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error running CLI app:", err)
		os.Exit(1)
	}
}
