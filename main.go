package main

import (
	"fmt"
	"os"

	"github.com/jcalgo/jcal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jcal: %v\n", err)
		os.Exit(1)
	}
}
