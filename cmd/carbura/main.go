package main

import "github.com/blackdede/carbura/internal/cli"

func main() {
	cli.Execute()
}
