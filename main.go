package main

import "ioc-usage/internal/cli"

func main() {
	cli.Execute()
}
