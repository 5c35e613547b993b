package main

import "pap/internal/cli"

func main() {
	cli.Execute()
}
