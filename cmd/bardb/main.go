// Package main provides the bardb CLI application.
// bardb manages the lifecycle of the BarDB cocktail database.
package main

import (
	"github.com/barcraft/bardb/cmd"
)

func main() {
	cmd.Execute()
}
