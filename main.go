package main

import "bcbp_trmnl/internal/cli"

func main() {
	cli.Execute()
}
