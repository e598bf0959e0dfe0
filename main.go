package main

import (
	"os"

	"github.com/pulsarops/aosched/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
