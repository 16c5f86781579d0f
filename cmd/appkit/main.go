package main

import "github.com/appkit-go/appkit/internal/cli"

func main() {
	cli.Execute()
}
