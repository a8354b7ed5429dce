package main

import (
	"os"

	"github.com/badno/shopbuild/cmd/shopbuild/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
