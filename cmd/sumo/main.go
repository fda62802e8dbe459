package main

import (
	"os"

	"github.com/wplohrmann/sumo/cmd/sumo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
