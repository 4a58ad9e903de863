package main

import "github.com/sanixdarker/gqlg/internal/cli"

func main() {
	cli.Execute()
}
