package main

import "github.com/emilyand-i/AgileWebGroup82/internal/cli"

func main() {
	cli.Execute()
}
