package main

import (
	"os"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
