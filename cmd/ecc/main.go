package main

import (
	"crypto/rand"
	"os"

	"github.com/smartcontractkit/weierstrass/internal/console"
)

func main() {
	// On failure cobra prints the error, so we only need to exit with a non-zero status.
	if console.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, rand.Reader).Execute() != nil {
		os.Exit(1)
	}
}
