package main

import (
	"os"

	"github.com/briolearn/brio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
