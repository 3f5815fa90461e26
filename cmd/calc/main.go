package main

import (
	"os"

	"github.com/njchilds90/gocalc/cmd/calc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
