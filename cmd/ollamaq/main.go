package main

import (
	"os"

	"github.com/earlysvahn/ollamaq/cmd/ollamaq/commands"
)

func main() {
	os.Exit(commands.Execute())
}
