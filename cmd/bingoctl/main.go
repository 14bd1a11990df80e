package main

import (
	"github.com/phrasebingo/phrasebingo-go/internal/cli"
)

func main() {
	cli.Execute()
}
