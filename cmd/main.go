package main

import cmd "github.com/kerbaras/mangastats/cmd/mangastats"

func main() {
	cmd.Execute()
}
