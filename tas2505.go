package main

import "github.com/handegar/tas2505/cli"

func main() {
	cli.Execute()
}
