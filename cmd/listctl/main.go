// Package main provides listctl, a command-line companion for consolidating
// recipes and seeding a grocery list store.
package main

import (
	"os"

	"github.com/CyberCatD/youtube-to-list-app/cmd/listctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
