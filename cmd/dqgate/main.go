package main

import "github.com/NVIDIA/dqgate/pkg/cli"

func main() {
	cli.Execute()
}
