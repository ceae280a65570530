package main

import "github.com/tranvictor/suiprofile/cmd"

func main() {
	cmd.Execute()
}
