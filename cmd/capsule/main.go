package main

import (
	"os"

	"github.com/comitanigiacomo/capsule-journal/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
