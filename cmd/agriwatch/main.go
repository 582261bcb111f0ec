package main

import (
	"agriwatch/internal/cli"
)

func main() {
	cli.Execute()
}
