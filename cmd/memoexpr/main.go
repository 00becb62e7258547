package main

import (
	"github.com/on-the-ground/memoexpr/cmd/memoexpr/cli"
)

func main() {
	cli.Execute()
}
