// Package main is the entry point for the bluegem CLI.
package main

import (
	"github.com/donaldgifford/csbluegem-go/cmd/bluegem/cmd"
)

func main() {
	cmd.Execute()
}
