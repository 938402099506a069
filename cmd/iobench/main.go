package main

import "iobench/cmd/iobench/commands"

func main() {
	commands.Execute()
}
