// Package main is the didtool command line: key generation, method
// resolution, and proof signing and verification for DID documents.
package main

import (
	"os"

	"github.com/pilacorp/go-diddoc/cmd/didtool/command"
)

func main() {
	if err := command.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
