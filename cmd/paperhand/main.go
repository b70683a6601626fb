package main

import (
	"os"

	"github.com/figuregpt/paperhand/cmd/paperhand/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
