package main

import (
	"github.com/sidra-games/splendid/internal/cli"
)

func main() {
	cli.Execute()
}
