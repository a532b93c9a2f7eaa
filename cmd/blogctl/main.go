package main

import "github.com/anonto42/quillpost/cmd/blogctl/commands"

func main() {
	commands.Execute()
}
