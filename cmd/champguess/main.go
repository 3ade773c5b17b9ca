package main

import "github.com/mcoot/champguess/internal/cli"

func main() {
	cli.Execute()
}
