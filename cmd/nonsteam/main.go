package main

import (
	"os"

	"github.com/lobinuxsoft/nonsteam/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
