package main

import (
	"os"

	"github.com/msto63/exact/cmd/exact/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
