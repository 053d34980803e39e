package main

import (
	"os"

	"gitscribe.dev/gitscribe/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
