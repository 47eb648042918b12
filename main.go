package main

import "github.com/gaurav-prasanna/grimoire/cmd"

func main() {
	cmd.Execute()
}
