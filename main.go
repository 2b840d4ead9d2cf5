package main

import (
	"os"

	"github.com/overlayfx/go-chat-overlay/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
