package main

import "github.com/HenryVilani/directory-lint/cmd"

func main() {
	cmd.Execute()
}
