package main

import "github.com/keshon/fvc/internal/cli"

func main() {
	cli.Execute()
}
