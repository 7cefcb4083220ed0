// Package main is the entry point for the lvextract CLI tool.
package main

import (
	"github.com/hargabyte/lvextract/internal/cmd"
)

func main() {
	cmd.Execute()
}
