package main

import (
	"os"

	"github.com/kpauljoseph/pagesplit/internal/cli"
)

func main() {
	os.Exit(cli.RunPageInfo(os.Args[1:], os.Stdout, os.Stderr))
}
