package main

import (
	"github.com/MrEthical07/goDigest/cmd/godigest/cli"
)

func main() {
	// Subcommands live in the cli package; for example
	// $ godigest hash --stdin < password.txt
	// runs the hash command defined in cli/hash.go.
	cli.Execute()
}
