// oncolour picks readable text colours for arbitrary background colours.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/oncolour/internal/cli"

func main() {
	cli.Execute()
}
