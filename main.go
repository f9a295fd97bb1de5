package main

import "github.com/Matteo842/SaveState-sub003/cmd"

func main() {
	cmd.Execute()
}
