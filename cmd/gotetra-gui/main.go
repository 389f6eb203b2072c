package main

import "github.com/philipparndt/gotetra/cmd"

func main() {
	cmd.Execute()
}
