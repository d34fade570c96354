package main

import "github.com/randrctl/randrctl/cmd"

func main() {
	cmd.Execute()
}
