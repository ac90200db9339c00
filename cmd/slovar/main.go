package main

import (
	"os"

	"github.com/solatis/slovar/cmd/slovar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
