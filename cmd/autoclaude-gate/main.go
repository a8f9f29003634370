package main

import (
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/cli"
)

func main() {
	cli.Execute()
}
